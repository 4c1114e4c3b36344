// Package services contains application services for the blog client.
// This file defines the authentication service: login, register, session
// restore on start-up, logout, and wiping the local session database.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophblog/internal/client/session"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
)

// ErrNoToken is returned by Restore when there is no session to restore.
var ErrNoToken = errors.New("no stored token")

// AuthService defines authentication operations for the views and the CLI.
//
// Contract:
//   - Login/Register: authenticate, store the token, fetch and store the
//     profile, and mark the session authenticated.
//   - Restore: fetch the profile for a stored token.
//   - Logout: forget user and token locally. No request is made.
//   - ClearLocalData: Logout plus wipe every key of the local database;
//     returns the number of keys removed.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.User, error)
	Register(ctx context.Context, data models.RegisterData) (*models.User, error)
	Restore(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context)
	ClearLocalData(ctx context.Context) (int, error)
}

// authService is the concrete AuthService backed by the auth API and the
// session store. db may be nil when the session is not persisted.
type authService struct {
	api     client.AuthAPI
	session *session.Store
	db      *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API, session
// and local DB.
func NewAuthService(api client.AuthAPI, sess *session.Store, db *sql.DB) AuthService {
	return &authService{api: api, session: sess, db: db}
}

func (a *authService) Login(ctx context.Context, creds models.LoginCredentials) (*models.User, error) {
	resp, err := a.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return a.establish(ctx, resp.AccessToken)
}

func (a *authService) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	resp, err := a.api.Register(ctx, data)
	if err != nil {
		return nil, err
	}
	return a.establish(ctx, resp.AccessToken)
}

// establish stores token, then loads the profile it belongs to.
func (a *authService) establish(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, errors.New("auth response has no access token")
	}
	a.session.SetToken(ctx, token)

	user, err := a.api.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	a.session.SetUser(ctx, user)
	a.session.Resolve(true)
	return user, nil
}

// Restore fetches the profile for the stored token and stores it. A
// failure leaves the token in place; a 401 has already cleared it in the
// transport.
func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	token := a.session.Token(ctx)
	if token == "" {
		return nil, ErrNoToken
	}
	user, err := a.api.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	a.session.SetUser(ctx, user)
	a.session.SetToken(ctx, token)
	return user, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.api.Logout(ctx)
	a.session.Logout(ctx)
}

// ClearLocalData wipes every key of the local database in one transaction
// and returns how many keys were removed.
func (a *authService) ClearLocalData(ctx context.Context) (int, error) {
	defer a.Logout(ctx)
	if a.db == nil {
		return 0, nil
	}
	var removed int
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		keys, err := repo.List(ctx)
		if err != nil {
			return err
		}
		removed = len(keys)
		return repo.Clear(ctx)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
