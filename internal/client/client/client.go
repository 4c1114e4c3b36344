package client

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// Session is the part of session.Store the transport needs.
type Session interface {
	Token(ctx context.Context) string
	SetToken(ctx context.Context, token string)
	Logout(ctx context.Context)
}

// AuthAPI covers the /auth endpoints.
type AuthAPI interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error)
	Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)
	GetProfile(ctx context.Context) (*models.User, error)
	// Logout is local: it drops the stored token and makes no request.
	Logout(ctx context.Context)
}

// PostsAPI covers the /posts endpoints.
type PostsAPI interface {
	ListPosts(ctx context.Context, params models.ListPostsParams) (*models.PostsPage, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, data models.CreatePostData) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, data models.UpdatePostData) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}
