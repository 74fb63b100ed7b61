package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/stretchr/testify/require"
)

func newPost(t *testing.T, e *testEnv) *models.Post {
	t.Helper()
	p, err := e.posts.CreatePost(context.Background(), PostRequest{Content: "GBP weak", Impact: models.ImpactBearish})
	require.NoError(t, err)
	return p
}

func TestToggleLike(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := newPost(t, e)

	count, liked, err := e.engage.ToggleLike(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.True(t, liked)

	count, liked, err = e.engage.ToggleLike(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.False(t, liked)

	stored, _ := e.feed.Get(p.ID)
	require.Equal(t, models.LikeState{}, stored.Likes)
}

func TestToggleLike_FloorsAtZero(t *testing.T) {
	e := newTestEnv(t)
	p := newPost(t, e)
	_, err := e.feed.Update(p.ID, func(p *models.Post) error {
		p.Likes = models.LikeState{Count: 0, Liked: true}
		return nil
	})
	require.NoError(t, err)

	count, liked, err := e.engage.ToggleLike(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.False(t, liked)
}

func TestToggleLike_UnknownPost(t *testing.T) {
	e := newTestEnv(t)
	_, _, err := e.engage.ToggleLike(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestAddComment(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signup(t, "Ann", "ann@x.com", "pw")
	p := newPost(t, e)

	c, err := e.engage.AddComment(ctx, p.ID, "  agreed  ")
	require.NoError(t, err)
	require.Equal(t, "agreed", c.Text)
	require.Equal(t, "ann@x.com", c.AuthorEmail)
	require.NotEmpty(t, c.ID)

	stored, _ := e.feed.Get(p.ID)
	require.Equal(t, 1, stored.CommentCount())
	require.Equal(t, *c, stored.Comments[0])
}

func TestAddComment_Rejects(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := newPost(t, e)

	_, err := e.engage.AddComment(ctx, p.ID, " \t ")
	require.ErrorIs(t, err, common.ErrEmptyComment)

	_, err = e.engage.AddComment(ctx, "nope", "hi")
	require.ErrorIs(t, err, common.ErrPostNotFound)

	stored, _ := e.feed.Get(p.ID)
	require.Zero(t, stored.CommentCount())
}
