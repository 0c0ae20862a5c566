package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/vibeshot/core/internal/application/store"
	"github.com/vibeshot/core/internal/domain/entities"
	"github.com/vibeshot/core/internal/infrastructure/config"
	"github.com/vibeshot/core/internal/infrastructure/logger"
	"github.com/vibeshot/core/internal/ports"
)

// FeedService derives filtered, sorted, paginated post views. The derivation
// itself never mutates anything: calling it twice against an unmutated store
// returns the same elements.
type FeedService struct {
	store  *store.Store
	cfg    config.FeedConfig
	logger *logger.Logger

	// limiter paces page loads so each one takes the configured artificial
	// delay, the way the original feed simulated latency.
	limiter *rate.Limiter

	mu      sync.Mutex
	loading bool
}

// NewFeedService creates a new feed service
func NewFeedService(st *store.Store, cfg config.FeedConfig, log *logger.Logger) *FeedService {
	limit := rate.Inf
	if cfg.LoadDelay > 0 {
		limit = rate.Every(cfg.LoadDelay)
	}
	limiter := rate.NewLimiter(limit, 1)
	// Drain the initial burst token so the first load is paced too.
	limiter.Allow()

	return &FeedService{
		store:   st,
		cfg:     cfg,
		logger:  log.WithComponent("feed"),
		limiter: limiter,
	}
}

// FilteredPosts applies search, then the filter's sort, to the current
// dataset:
//
//   - all: descending by createdAt, ties stable in source order.
//   - trending: descending by like count; no secondary key, ties stay in
//     prior order.
//   - following: empty without a session; otherwise the session's followed
//     authors in source order, unsorted.
func (s *FeedService) FilteredPosts(state ports.FeedState) []*entities.Post {
	posts := s.store.Posts()

	if state.Search != "" {
		matched := posts[:0]
		for _, p := range posts {
			if p.MatchesCaption(state.Search) {
				matched = append(matched, p)
			}
		}
		posts = matched
	}

	switch state.Filter {
	case entities.FilterTrending:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].LikeCount() > posts[j].LikeCount()
		})
	case entities.FilterFollowing:
		session := s.store.Session()
		if session == nil {
			return []*entities.Post{}
		}
		followed := posts[:0]
		for _, p := range posts {
			if session.IsFollowing(p.Author) {
				followed = append(followed, p)
			}
		}
		posts = followed
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt > posts[j].CreatedAt
		})
	}

	return posts
}

// PaginatedPosts returns the first page*pageSize items of the filtered
// sequence. Requesting the same page twice returns the same prefix.
func (s *FeedService) PaginatedPosts(state ports.FeedState) *ports.FeedPage {
	all := s.FilteredPosts(state)

	pageSize := state.PageSize
	if pageSize <= 0 {
		pageSize = s.cfg.PageSize
	}
	page := state.Page
	if page < 1 {
		page = 1
	}

	end := page * pageSize
	hasMore := end < len(all)
	if end > len(all) {
		end = len(all)
	}

	return &ports.FeedPage{
		Posts:   all[:end],
		Total:   len(all),
		HasMore: hasMore,
	}
}

// LoadPage returns a page after the fixed artificial delay. A load entered
// while another is pending is rejected with entities.ErrAlreadyLoading
// rather than queued; callers treat that as a no-op.
func (s *FeedService) LoadPage(ctx context.Context, state ports.FeedState) (*ports.FeedPage, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, entities.ErrAlreadyLoading
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("feed load: %w", err)
	}

	page := s.PaginatedPosts(state)
	s.logger.Debugw("Feed page loaded",
		"filter", state.Filter,
		"page", state.Page,
		"posts", len(page.Posts),
		"has_more", page.HasMore,
	)
	return page, nil
}

// SearchUsers returns users whose name contains the query,
// case-insensitively. An empty query returns no results.
func (s *FeedService) SearchUsers(query string) []*entities.User {
	if query == "" {
		return nil
	}
	query = strings.ToLower(query)

	var found []*entities.User
	for _, u := range s.store.Users() {
		if strings.Contains(strings.ToLower(u.Name), query) {
			found = append(found, u)
		}
	}
	return found
}

// Profile aggregates a user's authored posts and liked posts.
func (s *FeedService) Profile(name string) (*ports.ProfileView, error) {
	user, ok := s.store.UserByName(name)
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", name, entities.ErrUserNotFound)
	}

	view := &ports.ProfileView{User: user}
	for _, p := range s.store.Posts() {
		if p.Author == name {
			view.Posts = append(view.Posts, p)
		}
		if p.LikedByEmail(user.Email) {
			view.LikedPosts = append(view.LikedPosts, p)
		}
	}
	return view, nil
}
