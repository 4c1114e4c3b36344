package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// AuthResource implements AuthAPI over HTTP.
type AuthResource struct {
	c *HTTPClient
}

func NewAuthResource(c *HTTPClient) *AuthResource {
	return &AuthResource{c: c}
}

var _ AuthAPI = (*AuthResource)(nil)

// Login posts the credentials. The transport stores the returned token.
func (a *AuthResource) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthResource) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/register", nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthResource) GetProfile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, errors.New("profile response has no user id")
	}
	return &out, nil
}

func (a *AuthResource) Logout(ctx context.Context) {
	if a.c.session != nil {
		a.c.session.SetToken(ctx, "")
	}
}
