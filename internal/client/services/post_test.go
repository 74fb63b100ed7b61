package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_Validation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.posts.CreatePost(ctx, PostRequest{Content: "EUR up"})
	require.ErrorIs(t, err, common.ErrNoImpactSelected)

	_, err = e.posts.CreatePost(ctx, PostRequest{Content: "   ", Impact: models.ImpactBullish})
	require.ErrorIs(t, err, common.ErrEmptyPost)

	require.Equal(t, 0, e.feed.Len())
}

func TestCreatePost_MediaOnly(t *testing.T) {
	e := newTestEnv(t)
	m := &models.Media{Kind: models.MediaImage, MIME: "image/png", Name: "c.png", Data: []byte{1, 2, 3}}

	p, err := e.posts.CreatePost(context.Background(), PostRequest{Media: m, Impact: models.ImpactNeutral})
	require.NoError(t, err)
	require.Empty(t, p.Content)
	require.Equal(t, m.Data, p.Media.Data)
}

func TestCreatePost_AuthorAndOrder(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	anon, err := e.posts.CreatePost(ctx, PostRequest{Content: "first", Impact: models.ImpactBearish})
	require.NoError(t, err)
	require.Empty(t, anon.AuthorEmail)

	e.signup(t, "Ann", "ann@x.com", "pw")
	p, err := e.posts.CreatePost(ctx, PostRequest{
		Content: " second ", Impact: models.ImpactVeryBullish, CurrencyPair: " eur/usd",
	})
	require.NoError(t, err)
	require.Equal(t, "ann@x.com", p.AuthorEmail)
	require.Equal(t, "second", p.Content)
	require.Equal(t, "EUR/USD", p.CurrencyPair)
	require.NotEmpty(t, p.ID)
	require.NotEqual(t, anon.ID, p.ID)
	require.Zero(t, p.Likes.Count)
	require.Empty(t, p.Comments)

	items, err := e.posts.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, p.ID, items[0].Post.ID)
	require.Equal(t, anon.ID, items[1].Post.ID)
}

func TestCreatePost_ReturnsCopy(t *testing.T) {
	e := newTestEnv(t)

	p, err := e.posts.CreatePost(context.Background(), PostRequest{Content: "x", Impact: models.ImpactNeutral})
	require.NoError(t, err)
	p.Content = "changed"

	stored, ok := e.feed.Get(p.ID)
	require.True(t, ok)
	require.Equal(t, "x", stored.Content)
}

func TestCreatePost_UsesClock(t *testing.T) {
	e := newTestEnv(t)
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	e.posts.(*postService).now = func() time.Time { return at }

	p, err := e.posts.CreatePost(context.Background(), PostRequest{Content: "x", Impact: models.ImpactNeutral})
	require.NoError(t, err)
	require.Equal(t, at, p.CreatedAt)
}

func TestFeed_ResolvesAuthors(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.posts.CreatePost(ctx, PostRequest{Content: "anon", Impact: models.ImpactNeutral})
	require.NoError(t, err)

	e.signup(t, "Ann Smith", "ann@x.com", "pw")
	_, err = e.profile.SetAvatar(ctx, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	_, err = e.posts.CreatePost(ctx, PostRequest{Content: "named", Impact: models.ImpactBullish})
	require.NoError(t, err)

	e.signup(t, "Gone", "gone.user@x.com", "pw")
	_, err = e.posts.CreatePost(ctx, PostRequest{Content: "orphan", Impact: models.ImpactBearish})
	require.NoError(t, err)
	require.NoError(t, e.users.Delete(ctx, "gone.user@x.com"))

	items, err := e.posts.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	orphan, named, anon := items[0], items[1], items[2]

	require.Equal(t, "gone.user", orphan.AuthorName)
	require.Equal(t, "G", orphan.AuthorInitials)
	require.Empty(t, orphan.AuthorAvatar)

	require.Equal(t, "Ann Smith", named.AuthorName)
	require.Equal(t, "AS", named.AuthorInitials)
	require.Equal(t, "data:image/png;base64,AAAA", named.AuthorAvatar)

	require.Empty(t, anon.AuthorName)
	require.Equal(t, "U", anon.AuthorInitials)
}

func TestFeed_AuthorRenameIsVisible(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signup(t, "Ann", "ann@x.com", "pw")
	_, err := e.posts.CreatePost(ctx, PostRequest{Content: "x", Impact: models.ImpactNeutral})
	require.NoError(t, err)

	_, err = e.profile.UpdateProfile(ctx, ProfileUpdate{Name: "Annie"})
	require.NoError(t, err)

	items, err := e.posts.Feed(ctx)
	require.NoError(t, err)
	require.Equal(t, "Annie", items[0].AuthorName)
}
