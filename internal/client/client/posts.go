package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// PostsResource implements PostsAPI over HTTP.
type PostsResource struct {
	c *HTTPClient
}

func NewPostsResource(c *HTTPClient) *PostsResource {
	return &PostsResource{c: c}
}

var _ PostsAPI = (*PostsResource)(nil)

func postPath(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10)
}

func listQuery(p models.ListPostsParams) url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if title := strings.TrimSpace(p.Title); title != "" {
		q.Set("title", title)
	}
	if p.AuthorID > 0 {
		q.Set("author_id", strconv.FormatInt(p.AuthorID, 10))
	}
	return q
}

func (r *PostsResource) ListPosts(ctx context.Context, params models.ListPostsParams) (*models.PostsPage, error) {
	var out models.PostsPage
	if err := r.c.do(ctx, http.MethodGet, "/posts", listQuery(params), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostsResource) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var out models.Post
	if err := r.c.do(ctx, http.MethodGet, postPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostsResource) CreatePost(ctx context.Context, data models.CreatePostData) (*models.Post, error) {
	var out models.Post
	if err := r.c.do(ctx, http.MethodPost, "/posts", nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostsResource) UpdatePost(ctx context.Context, id int64, data models.UpdatePostData) (*models.Post, error) {
	var out models.Post
	if err := r.c.do(ctx, http.MethodPut, postPath(id), nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostsResource) DeletePost(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, postPath(id), nil, nil, nil)
}
