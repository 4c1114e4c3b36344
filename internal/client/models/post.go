package models

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/content"
)

// Body is a post body in editor HTML. On decode it accepts a plain HTML
// string, a JSON envelope encoded as a string, or an envelope object.
type Body string

func (b *Body) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Body(content.ExtractHTML(s))
		return nil
	}
	var env content.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*b = Body(env.Content)
	return nil
}

func (b Body) String() string { return string(b) }

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   Body      `json:"content"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostListItem is the list/search projection of a Post, without body.
type PostListItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostsPage is one page of the posts listing.
type PostsPage struct {
	Data     []PostListItem `json:"data"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	LastPage int            `json:"last_page"`
	PerPage  int            `json:"per_page"`
}

// ListPostsParams filters the posts listing. Zero values are not sent.
type ListPostsParams struct {
	Page     int
	PerPage  int
	Title    string
	AuthorID int64
}

type CreatePostData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostData is a partial update; nil fields are left untouched by the
// server.
type UpdatePostData struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// IsAuthor reports whether u wrote the post. It is the gate for showing
// edit and delete actions; the API enforces the real permission.
func (p *Post) IsAuthor(u *User) bool {
	return p != nil && u != nil && p.Author.ID == u.ID
}

func (p *PostListItem) IsAuthor(u *User) bool {
	return p != nil && u != nil && p.Author.ID == u.ID
}
