// Package feed is the in-memory post collection. It is not persisted:
// a restart starts with an empty feed.
//
// Feed owns its posts. Everything handed out is a copy, and changes go
// through Update.
package feed

import (
	"sync"

	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/common"
)

type Feed struct {
	mu    sync.RWMutex
	posts []*models.Post // most recent first
	byID  map[string]*models.Post
}

func New() *Feed {
	return &Feed{byID: make(map[string]*models.Post)}
}

// Prepend puts a copy of p at the top of the feed.
func (f *Feed) Prepend(p *models.Post) {
	c := p.Clone()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append([]*models.Post{c}, f.posts...)
	f.byID[c.ID] = c
}

func (f *Feed) Get(id string) (*models.Post, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// List returns copies of all posts, most recent first.
func (f *Feed) List() []*models.Post {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*models.Post, len(f.posts))
	for i, p := range f.posts {
		out[i] = p.Clone()
	}
	return out
}

func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.posts)
}

// Update runs fn on the stored post under the feed lock and returns a copy
// of the result. If fn fails the post is left as it was.
func (f *Feed) Update(id string, fn func(p *models.Post) error) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrPostNotFound
	}
	work := p.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	*p = *work
	return p.Clone(), nil
}
