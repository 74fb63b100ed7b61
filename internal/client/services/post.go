package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/marketfeed/internal/client/feed"
	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/client/repositories/users"
	"github.com/dmitrijs2005/marketfeed/internal/client/session"
	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/dmitrijs2005/marketfeed/internal/logging"
	"github.com/oklog/ulid/v2"
)

// PostRequest carries the fields of the compose form.
type PostRequest struct {
	Content      string
	Media        *models.Media
	Impact       models.Impact
	CurrencyPair string
}

// FeedItem is a post together with how its author is shown.
type FeedItem struct {
	Post           *models.Post
	AuthorName     string
	AuthorInitials string
	AuthorAvatar   string
}

// PostService creates posts and renders the feed.
type PostService interface {
	CreatePost(ctx context.Context, req PostRequest) (*models.Post, error)
	Feed(ctx context.Context) ([]FeedItem, error)
}

type postService struct {
	feed    *feed.Feed
	users   users.Repository
	session *session.Manager
	now     func() time.Time
	log     logging.Logger
}

func NewPostService(f *feed.Feed, repo users.Repository, sess *session.Manager, log logging.Logger) PostService {
	return &postService{feed: f, users: repo, session: sess, now: time.Now, log: log.With("service", "post")}
}

// CreatePost validates req and puts the new post at the top of the feed.
// Posts made without a session have an empty author.
func (s *postService) CreatePost(ctx context.Context, req PostRequest) (*models.Post, error) {
	if !req.Impact.Valid() {
		return nil, common.ErrNoImpactSelected
	}
	content := strings.TrimSpace(req.Content)
	if content == "" && req.Media == nil {
		return nil, common.ErrEmptyPost
	}

	author, _ := s.session.Current()
	p := &models.Post{
		ID:           ulid.Make().String(),
		AuthorEmail:  author,
		Content:      content,
		Impact:       req.Impact,
		CurrencyPair: strings.ToUpper(strings.TrimSpace(req.CurrencyPair)),
		CreatedAt:    s.now(),
	}
	if req.Media != nil {
		m := *req.Media
		p.Media = &m
	}

	s.feed.Prepend(p)
	s.log.Info(ctx, "post created", "id", p.ID, "author", author, "impact", req.Impact.Slug(), "feed_size", s.feed.Len())
	return p.Clone(), nil
}

// Feed returns the posts newest first, with authors resolved against the
// user store at call time.
func (s *postService) Feed(ctx context.Context) ([]FeedItem, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	byEmail := make(map[string]*models.User, len(all))
	for _, u := range all {
		byEmail[u.Email] = u
	}

	posts := s.feed.List()
	items := make([]FeedItem, 0, len(posts))
	for _, p := range posts {
		author, ok := byEmail[users.Normalize(p.AuthorEmail)]
		if !ok {
			author = &models.User{Email: p.AuthorEmail}
		}
		items = append(items, FeedItem{
			Post:           p,
			AuthorName:     author.DisplayName(),
			AuthorInitials: author.Initials(),
			AuthorAvatar:   author.Avatar,
		})
	}
	return items, nil
}
