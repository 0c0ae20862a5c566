package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeshot/core/internal/domain/entities"
	"github.com/vibeshot/core/internal/infrastructure/logger"
	"github.com/vibeshot/core/internal/ports"
)

func TestCreatePostHeadsFeed(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	login(t, st, "alice@vibe.com")

	posts := NewPostService(st, stubCompressor{}, logger.NewNop())
	feed := NewFeedService(st, testFeedConfig(), logger.NewNop())

	post, err := posts.CreatePost(ctx, ports.CreatePostRequest{Caption: "fresh drop", Image: []byte("img")})
	require.NoError(t, err)

	assert.Equal(t, "Alice", post.Author)
	assert.Equal(t, testNow, post.ID)
	assert.Equal(t, "data:image/jpeg;base64,stub", post.Image)

	all := feed.FilteredPosts(ports.FeedState{Filter: entities.FilterAll})
	require.NotEmpty(t, all)
	assert.Same(t, post, all[0])
}

func TestCreatePostRequiresAuth(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	_, err := posts.CreatePost(ctx, ports.CreatePostRequest{Caption: "nope", Image: []byte("img")})
	assert.ErrorIs(t, err, entities.ErrAuthRequired)
	assert.Len(t, st.Posts(), 16)
}

func TestCreatePostRejectsEmptyCaption(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	login(t, st, "alice@vibe.com")
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	_, err := posts.CreatePost(ctx, ports.CreatePostRequest{Caption: "   ", Image: []byte("img")})
	assert.ErrorIs(t, err, entities.ErrEmptyCaption)
	assert.Len(t, st.Posts(), 16)
}

func TestCreatePostImageDecodeFailure(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	login(t, st, "alice@vibe.com")
	posts := NewPostService(st, stubCompressor{err: entities.ErrImageDecode}, logger.NewNop())

	_, err := posts.CreatePost(ctx, ports.CreatePostRequest{Caption: "broken", Image: []byte("img")})
	assert.ErrorIs(t, err, entities.ErrImageDecode)

	// prior state untouched
	assert.Len(t, st.Posts(), 16)
}

func TestToggleLikePairIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	login(t, st, "alice@vibe.com")
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	target := st.Posts()[5]
	original := append([]string(nil), target.LikedBy...)

	liked, err := posts.ToggleLike(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, liked.LikedByEmail("alice@vibe.com"))

	unliked, err := posts.ToggleLike(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, original, unliked.LikedBy)
}

func TestToggleLikeRequiresAuth(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	target := st.Posts()[0]
	_, err := posts.ToggleLike(ctx, target.ID)
	assert.ErrorIs(t, err, entities.ErrAuthRequired)
	assert.Empty(t, target.LikedBy)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	login(t, st, "alice@vibe.com")
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	_, err := posts.ToggleLike(ctx, -5)
	assert.ErrorIs(t, err, entities.ErrPostNotFound)
}

func TestToggleFollow(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	login(t, st, "alice@vibe.com")
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	following, err := posts.ToggleFollow(ctx, "CyberX")
	require.NoError(t, err)
	assert.True(t, following)
	assert.True(t, st.Session().IsFollowing("CyberX"))

	following, err = posts.ToggleFollow(ctx, "CyberX")
	require.NoError(t, err)
	assert.False(t, following)
	assert.False(t, st.Session().IsFollowing("CyberX"))
}

func TestToggleFollowRequiresAuth(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	_, err := posts.ToggleFollow(ctx, "CyberX")
	assert.ErrorIs(t, err, entities.ErrAuthRequired)
}

func TestPostComment(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	login(t, st, "alice@vibe.com")
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	target := st.Posts()[2]
	comment, err := posts.PostComment(ctx, ports.CommentRequest{PostID: target.ID, Text: "  so clean  "})
	require.NoError(t, err)

	assert.Equal(t, "Alice", comment.Author)
	assert.Equal(t, "so clean", comment.Text)
	assert.Equal(t, testNow, comment.CreatedAt)
	require.Len(t, target.Comments, 1)
}

func TestPostCommentRejectsBlankText(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	login(t, st, "alice@vibe.com")
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	target := st.Posts()[2]
	_, err := posts.PostComment(ctx, ports.CommentRequest{PostID: target.ID, Text: "   \n\t"})
	assert.ErrorIs(t, err, entities.ErrEmptyComment)
	assert.Empty(t, target.Comments)
}

func TestUpdateAvatarResyncsUserList(t *testing.T) {
	ctx := context.Background()
	st := newSeededStore(t)
	login(t, st, "alice@vibe.com")
	posts := NewPostService(st, stubCompressor{}, logger.NewNop())

	user, err := posts.UpdateAvatar(ctx, []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,stub", user.Avatar)

	listed, ok := st.UserByEmail("alice@vibe.com")
	require.True(t, ok)
	assert.Same(t, user, listed)
	assert.Same(t, user, st.Session())
}
