package models

import (
	"bytes"
	"encoding/base64"
	"time"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media is a binary attachment of a post.
type Media struct {
	Kind MediaKind
	MIME string
	Name string
	Data []byte
}

// DataURL renders the payload as an inline data: URL.
func (m *Media) DataURL() string {
	return "data:" + m.MIME + ";base64," + base64.StdEncoding.EncodeToString(m.Data)
}

type LikeState struct {
	Count int
	Liked bool
}

type Comment struct {
	ID          string
	Text        string
	AuthorEmail string
	CreatedAt   time.Time
}

// Post is a feed entry. AuthorEmail is a weak reference: the user record
// may be gone, in which case the raw email is displayed.
type Post struct {
	ID           string
	AuthorEmail  string
	Content      string
	Media        *Media
	Impact       Impact
	CurrencyPair string
	CreatedAt    time.Time
	Likes        LikeState
	Comments     []Comment
}

// CommentCount is derived from the comment list, never stored.
func (p *Post) CommentCount() int {
	return len(p.Comments)
}

// TimeLabel formats CreatedAt the way the feed shows it.
func (p *Post) TimeLabel() string {
	return p.CreatedAt.Local().Format("15:04 02.01.2006")
}

// Clone returns a deep copy of p.
func (p *Post) Clone() *Post {
	c := *p
	if p.Media != nil {
		m := *p.Media
		m.Data = bytes.Clone(p.Media.Data)
		c.Media = &m
	}
	if p.Comments != nil {
		c.Comments = append([]Comment(nil), p.Comments...)
	}
	return &c
}
