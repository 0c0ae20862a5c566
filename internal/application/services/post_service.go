package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vibeshot/core/internal/application/store"
	"github.com/vibeshot/core/internal/domain/entities"
	"github.com/vibeshot/core/internal/infrastructure/logger"
	"github.com/vibeshot/core/internal/ports"
)

// PostService handles publishing and the social actions layered on the
// store. Every mutation saves synchronously; there is no batching.
type PostService struct {
	store      *store.Store
	compressor ports.Compressor
	validate   *validator.Validate
	logger     *logger.Logger
}

// NewPostService creates a new post service
func NewPostService(st *store.Store, compressor ports.Compressor, log *logger.Logger) *PostService {
	return &PostService{
		store:      st,
		compressor: compressor,
		validate:   validator.New(),
		logger:     log.WithComponent("posts"),
	}
}

// session returns the authenticated actor or entities.ErrAuthRequired.
func (s *PostService) session() (*entities.User, error) {
	actor := s.store.Session()
	if actor == nil {
		return nil, entities.ErrAuthRequired
	}
	return actor, nil
}

// CreatePost compresses the image, builds the post and prepends it so it
// heads the default feed. The id and createdAt are the current clock in
// unix milliseconds.
func (s *PostService) CreatePost(ctx context.Context, req ports.CreatePostRequest) (*entities.Post, error) {
	actor, err := s.session()
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if strings.TrimSpace(req.Caption) == "" {
		return nil, fmt.Errorf("create post: %w", entities.ErrEmptyCaption)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid post request: %w", err)
	}

	image, err := s.compressor.Compress(ctx, req.Image)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	now := s.store.Now()
	post := &entities.Post{
		ID:        now,
		Author:    actor.Name,
		Caption:   req.Caption,
		Image:     image,
		LikedBy:   []string{},
		Comments:  []entities.Comment{},
		CreatedAt: now,
	}

	s.store.PrependPost(post)
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}

	s.logger.LogUserAction(actor.Email, "create_post", map[string]interface{}{
		"post_id": post.ID,
	})
	return post, nil
}

// ToggleLike toggles the session's membership in the post's like set and
// persists. Unauthenticated calls leave the post unchanged.
func (s *PostService) ToggleLike(ctx context.Context, postID int64) (*entities.Post, error) {
	actor, err := s.session()
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	post, ok := s.store.PostByID(postID)
	if !ok {
		return nil, fmt.Errorf("toggle like %d: %w", postID, entities.ErrPostNotFound)
	}

	liked := post.ToggleLike(actor.Email)
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}

	s.logger.LogUserAction(actor.Email, "toggle_like", map[string]interface{}{
		"post_id": postID,
		"liked":   liked,
	})
	return post, nil
}

// ToggleFollow toggles the target handle in the session's following set.
// Following oneself is not prevented; the original allowed it.
func (s *PostService) ToggleFollow(ctx context.Context, targetName string) (bool, error) {
	actor, err := s.session()
	if err != nil {
		return false, fmt.Errorf("toggle follow: %w", err)
	}

	following := actor.ToggleFollow(targetName)
	if err := s.store.UpdateSession(ctx, actor); err != nil {
		return false, err
	}

	s.logger.LogUserAction(actor.Email, "toggle_follow", map[string]interface{}{
		"target":    targetName,
		"following": following,
	})
	return following, nil
}

// PostComment appends an immutable comment to the post. Empty or
// whitespace-only text is rejected.
func (s *PostService) PostComment(ctx context.Context, req ports.CommentRequest) (*entities.Comment, error) {
	actor, err := s.session()
	if err != nil {
		return nil, fmt.Errorf("post comment: %w", err)
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("post comment: %w", entities.ErrEmptyComment)
	}

	post, ok := s.store.PostByID(req.PostID)
	if !ok {
		return nil, fmt.Errorf("post comment %d: %w", req.PostID, entities.ErrPostNotFound)
	}

	comment := post.AddComment(actor.Name, text, s.store.Now())
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}

	s.logger.LogUserAction(actor.Email, "post_comment", map[string]interface{}{
		"post_id": req.PostID,
	})
	return &comment, nil
}

// UpdateAvatar compresses the image and stores it as the session's avatar,
// re-syncing the user list entry.
func (s *PostService) UpdateAvatar(ctx context.Context, image []byte) (*entities.User, error) {
	actor, err := s.session()
	if err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}

	avatar, err := s.compressor.Compress(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}

	actor.Avatar = avatar
	if err := s.store.UpdateSession(ctx, actor); err != nil {
		return nil, err
	}

	s.logger.LogUserAction(actor.Email, "update_avatar", nil)
	return actor, nil
}
