package ports

import (
	"context"

	"github.com/vibeshot/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*entities.User, error)
	Login(ctx context.Context, req LoginRequest) (*entities.User, error)
	Logout(ctx context.Context) error
}

// PostService interface for publishing and social actions
type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*entities.Post, error)
	ToggleLike(ctx context.Context, postID int64) (*entities.Post, error)
	ToggleFollow(ctx context.Context, targetName string) (following bool, err error)
	PostComment(ctx context.Context, req CommentRequest) (*entities.Comment, error)
	UpdateAvatar(ctx context.Context, image []byte) (*entities.User, error)
}

// FeedService interface for feed derivation and lookups
type FeedService interface {
	FilteredPosts(state FeedState) []*entities.Post
	PaginatedPosts(state FeedState) *FeedPage
	LoadPage(ctx context.Context, state FeedState) (*FeedPage, error)
	SearchUsers(query string) []*entities.User
	Profile(name string) (*ProfileView, error)
}

// Compressor produces a bounded-width JPEG data URI from raw image bytes.
type Compressor interface {
	Compress(ctx context.Context, data []byte) (string, error)
}

// Request/Response Types

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreatePostRequest struct {
	Caption string `json:"caption" validate:"required,max=500"`
	Image   []byte `json:"-" validate:"required"`
}

type CommentRequest struct {
	PostID int64  `json:"post_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// FeedState is the transient UI state a feed view is derived from. The
// derivation is a pure function of (dataset, FeedState): the same state
// against an unmutated dataset yields the same page.
type FeedState struct {
	Filter   entities.FeedFilter
	Search   string
	Page     int
	PageSize int
}

// FeedPage is the prefix of the filtered feed up to Page*PageSize items.
type FeedPage struct {
	Posts   []*entities.Post `json:"posts"`
	Total   int              `json:"total"`
	HasMore bool             `json:"has_more"`
}

// ProfileView aggregates a user's profile tabs and stats.
type ProfileView struct {
	User       *entities.User   `json:"user"`
	Posts      []*entities.Post `json:"posts"`
	LikedPosts []*entities.Post `json:"liked_posts"`
}

// PostCount returns the number of posts authored by the profile's user.
func (p *ProfileView) PostCount() int { return len(p.Posts) }

// LikeCount returns the number of posts the profile's user has liked.
func (p *ProfileView) LikeCount() int { return len(p.LikedPosts) }
