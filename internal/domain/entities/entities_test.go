package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostToggleLike(t *testing.T) {
	p := &Post{LikedBy: []string{}}

	liked := p.ToggleLike("a@vibe.com")
	assert.True(t, liked)
	assert.Equal(t, []string{"a@vibe.com"}, p.LikedBy)
	assert.True(t, p.LikedByEmail("a@vibe.com"))

	// second toggle restores the original content
	liked = p.ToggleLike("a@vibe.com")
	assert.False(t, liked)
	assert.Equal(t, []string{}, p.LikedBy)
}

func TestPostToggleLikeKeepsSetSemantics(t *testing.T) {
	p := &Post{LikedBy: []string{"a@vibe.com", "b@vibe.com"}}

	p.ToggleLike("c@vibe.com")
	assert.Equal(t, []string{"a@vibe.com", "b@vibe.com", "c@vibe.com"}, p.LikedBy)

	p.ToggleLike("b@vibe.com")
	assert.Equal(t, []string{"a@vibe.com", "c@vibe.com"}, p.LikedBy)
	assert.Equal(t, 2, p.LikeCount())
}

func TestUserToggleFollow(t *testing.T) {
	u := &User{Following: []string{}}

	assert.True(t, u.ToggleFollow("Alice"))
	assert.True(t, u.IsFollowing("Alice"))

	assert.False(t, u.ToggleFollow("Alice"))
	assert.False(t, u.IsFollowing("Alice"))
	assert.Empty(t, u.Following)
}

func TestPostMatchesCaption(t *testing.T) {
	p := &Post{Caption: "Neon vibe #3"}

	assert.True(t, p.MatchesCaption("neon"))
	assert.True(t, p.MatchesCaption("NEON"))
	assert.True(t, p.MatchesCaption(""))
	assert.False(t, p.MatchesCaption("minimal"))
}

func TestPostAddComment(t *testing.T) {
	p := &Post{}

	c := p.AddComment("Alice", "nice shot", 1700000000000)
	assert.Len(t, p.Comments, 1)
	assert.Equal(t, Comment{Author: "Alice", Text: "nice shot", CreatedAt: 1700000000000}, c)
}

func TestFeedFilterIsValid(t *testing.T) {
	assert.True(t, FilterAll.IsValid())
	assert.True(t, FilterTrending.IsValid())
	assert.True(t, FilterFollowing.IsValid())
	assert.False(t, FeedFilter("newest").IsValid())
}
