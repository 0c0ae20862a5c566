package entities

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthRequired       = errors.New("login required")
	ErrStorageFull        = errors.New("storage full")
	ErrImageDecode        = errors.New("image cannot be decoded")
	ErrEmptyCaption       = errors.New("caption is required")
	ErrEmptyComment       = errors.New("comment text is required")
	ErrPostNotFound       = errors.New("post not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyLoading     = errors.New("feed load already in progress")
)

// FeedFilter selects which view of the feed is derived.
type FeedFilter string

const (
	FilterAll       FeedFilter = "all"
	FilterTrending  FeedFilter = "trending"
	FilterFollowing FeedFilter = "following"
)

func (f FeedFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterTrending, FilterFollowing:
		return true
	default:
		return false
	}
}

// User represents an account. Email is the identity key; Name is the display
// handle other records reference. The JSON field names match the persisted
// format of the original dataset, so existing data files load unchanged.
type User struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"pass"`
	Following []string `json:"following"`
	Avatar    string   `json:"avatar,omitempty"`
}

// IsFollowing reports whether the user follows the given display name.
func (u *User) IsFollowing(name string) bool {
	for _, n := range u.Following {
		if n == name {
			return true
		}
	}
	return false
}

// ToggleFollow adds name to the following set, or removes it if present.
// Each target occurs at most once.
func (u *User) ToggleFollow(name string) (following bool) {
	for i, n := range u.Following {
		if n == name {
			u.Following = append(u.Following[:i], u.Following[i+1:]...)
			return false
		}
	}
	u.Following = append(u.Following, name)
	return true
}

// Post represents a published image. ID is the creation timestamp in unix
// milliseconds and doubles as the default recency order. Author is a
// denormalized User.Name reference, not an ownership relation.
type Post struct {
	ID        int64     `json:"id"`
	Author    string    `json:"user"`
	Caption   string    `json:"caption"`
	Image     string    `json:"img"`
	LikedBy   []string  `json:"likesBy"`
	Comments  []Comment `json:"comments"`
	CreatedAt int64     `json:"createdAt"`
}

// LikedByEmail reports whether the given email has liked the post.
func (p *Post) LikedByEmail(email string) bool {
	for _, e := range p.LikedBy {
		if e == email {
			return true
		}
	}
	return false
}

// ToggleLike toggles membership of email in LikedBy. The sequence keeps set
// semantics: each email occurs at most once.
func (p *Post) ToggleLike(email string) (liked bool) {
	for i, e := range p.LikedBy {
		if e == email {
			p.LikedBy = append(p.LikedBy[:i], p.LikedBy[i+1:]...)
			return false
		}
	}
	p.LikedBy = append(p.LikedBy, email)
	return true
}

// LikeCount returns the number of distinct likes.
func (p *Post) LikeCount() int {
	return len(p.LikedBy)
}

// MatchesCaption reports whether the caption contains the query,
// case-insensitively. An empty query matches everything.
func (p *Post) MatchesCaption(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Caption), strings.ToLower(query))
}

// AddComment appends an immutable comment authored by name at ts.
func (p *Post) AddComment(name, text string, ts int64) Comment {
	c := Comment{Author: name, Text: text, CreatedAt: ts}
	p.Comments = append(p.Comments, c)
	return c
}

// Comment is append-only; once created it is never mutated.
type Comment struct {
	Author    string `json:"user"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"date"`
}
