package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/marketfeed/internal/client/feed"
	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/client/session"
	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/dmitrijs2005/marketfeed/internal/logging"
	"github.com/google/uuid"
)

// EngagementService handles likes and comments on feed posts.
type EngagementService interface {
	ToggleLike(ctx context.Context, postID string) (count int, liked bool, err error)
	AddComment(ctx context.Context, postID, text string) (*models.Comment, error)
}

type engagementService struct {
	feed    *feed.Feed
	session *session.Manager
	now     func() time.Time
	log     logging.Logger
}

func NewEngagementService(f *feed.Feed, sess *session.Manager, log logging.Logger) EngagementService {
	return &engagementService{feed: f, session: sess, now: time.Now, log: log.With("service", "engagement")}
}

// ToggleLike flips the liked flag of a post. The count never drops below
// zero.
func (s *engagementService) ToggleLike(ctx context.Context, postID string) (int, bool, error) {
	p, err := s.feed.Update(postID, func(p *models.Post) error {
		if p.Likes.Liked {
			p.Likes.Liked = false
			p.Likes.Count = max(p.Likes.Count-1, 0)
		} else {
			p.Likes.Liked = true
			p.Likes.Count++
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	s.log.Debug(ctx, "like toggled", "post", postID, "liked", p.Likes.Liked, "count", p.Likes.Count)
	return p.Likes.Count, p.Likes.Liked, nil
}

// AddComment appends a comment by the current user, or an anonymous one
// when there is no session.
func (s *engagementService) AddComment(ctx context.Context, postID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if _, ok := s.feed.Get(postID); !ok {
		return nil, common.ErrPostNotFound
	}
	if text == "" {
		return nil, common.ErrEmptyComment
	}

	author, _ := s.session.Current()
	c := models.Comment{
		ID:          uuid.NewString(),
		Text:        text,
		AuthorEmail: author,
		CreatedAt:   s.now(),
	}
	if _, err := s.feed.Update(postID, func(p *models.Post) error {
		p.Comments = append(p.Comments, c)
		return nil
	}); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "comment added", "post", postID, "comment", c.ID)
	return &c, nil
}
