package store

import (
	"fmt"
	"strings"

	"github.com/vibeshot/core/internal/domain/entities"
)

var (
	seedNames  = []string{"Alice", "CyberX", "DesignGod", "NeonVibe"}
	seedTopics = []string{"Neon", "Minimal", "Cyberpunk", "Nature", "Gaming"}
)

const seedPostCount = 16

// seed fills an empty dataset with the fixed demo accounts and sixteen demo
// posts with decreasing timestamps. Callers hold the lock and persist the
// result.
func (s *Store) seed() {
	for _, name := range seedNames {
		exists := false
		for _, u := range s.users {
			if u.Name == name {
				exists = true
				break
			}
		}
		if !exists {
			s.users = append(s.users, &entities.User{
				Name:      name,
				Email:     fmt.Sprintf("%s@vibe.com", strings.ToLower(name)),
				Password:  "123",
				Following: []string{},
			})
		}
	}

	now := s.now()
	for i := 0; i < seedPostCount; i++ {
		height := 400 + (i*53)%300
		s.posts = append(s.posts, &entities.Post{
			ID:        now + int64(i),
			Author:    seedNames[i%len(seedNames)],
			Caption:   fmt.Sprintf("%s vibe #%d", seedTopics[i%len(seedTopics)], i),
			Image:     fmt.Sprintf("https://picsum.photos/600/%d?random=%d", height, i),
			LikedBy:   []string{},
			Comments:  []entities.Comment{},
			CreatedAt: now - int64(i)*1000000,
		})
	}
}
