// Package session holds who is logged in: the current user, the bearer
// token and the start-up state. One Store is shared by the HTTP
// transport, which reads the token from it, and by every view.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// Storage is the durable side of the store. metadata.Repository
// satisfies it.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store is safe for concurrent use.
//
// Every mutation writes memory and durable storage in the same call.
// Storage failures are logged and swallowed; the in-memory state is
// updated regardless.
type Store struct {
	mu      sync.RWMutex
	user    *models.User
	token   string
	state   State
	storage Storage
	log     logging.Logger
}

func NewStore(storage Storage, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	return &Store{storage: storage, log: log.With("component", "session")}
}

// Hydrate loads the token and user persisted by a previous run. It does
// not change State; the layout guard decides what the loaded data means.
func (s *Store) Hydrate(ctx context.Context) {
	token := s.readToken(ctx)
	user := s.readUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != "" {
		s.token = token
	}
	if user != nil {
		s.user = user
	}
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the bearer token, falling back to durable storage when
// memory is empty (e.g. before Hydrate).
func (s *Store) Token(ctx context.Context) string {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" {
		return token
	}
	return s.readToken(ctx)
}

// SetUser replaces the user; nil clears it.
func (s *Store) SetUser(ctx context.Context, user *models.User) {
	s.mu.Lock()
	if user == nil {
		s.user = nil
	} else {
		u := *user
		s.user = &u
	}
	s.mu.Unlock()

	if user == nil {
		s.deleteKey(ctx, common.UserStorageKey)
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		s.log.Warn(ctx, "user record not persisted", "error", err)
		return
	}
	s.setKey(ctx, common.UserStorageKey, data)
}

// SetToken replaces the token; "" clears it. Clearing the token of an
// authenticated session makes it anonymous.
func (s *Store) SetToken(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	if token == "" && s.state == StateAuthenticated {
		s.state = StateAnonymous
	}
	s.mu.Unlock()

	if token == "" {
		s.deleteKey(ctx, common.TokenStorageKey)
		return
	}
	s.setKey(ctx, common.TokenStorageKey, []byte(token))
}

// Logout drops user and token from memory and durable storage.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.state = StateAnonymous
	s.mu.Unlock()

	s.deleteKey(ctx, common.TokenStorageKey)
	s.deleteKey(ctx, common.UserStorageKey)
}

// IsAuthenticated is true only if a token is present, in memory or in
// durable storage, and a user is loaded.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	s.mu.RLock()
	hasUser := s.user != nil
	s.mu.RUnlock()
	if !hasUser {
		return false
	}
	return s.Token(ctx) != ""
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Begin enters StateChecking. It returns false if a check is already in
// progress, so concurrent guards do not run the check twice.
func (s *Store) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateChecking {
		return false
	}
	s.state = StateChecking
	return true
}

// Resolve ends a check started by Begin.
func (s *Store) Resolve(authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if authenticated {
		s.state = StateAuthenticated
	} else {
		s.state = StateAnonymous
	}
}

func (s *Store) readToken(ctx context.Context) string {
	if s.storage == nil {
		return ""
	}
	v, err := s.storage.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.log.Warn(ctx, "token not read from storage", "error", err)
		return ""
	}
	return string(v)
}

func (s *Store) readUser(ctx context.Context) *models.User {
	if s.storage == nil {
		return nil
	}
	v, err := s.storage.Get(ctx, common.UserStorageKey)
	if err != nil {
		s.log.Warn(ctx, "user not read from storage", "error", err)
		return nil
	}
	if len(v) == 0 {
		return nil
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		s.log.Warn(ctx, "stored user record is corrupt", "error", err)
		return nil
	}
	return &u
}

func (s *Store) setKey(ctx context.Context, key string, value []byte) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Set(ctx, key, value); err != nil {
		s.log.Warn(ctx, "storage write failed", "key", key, "error", err)
	}
}

func (s *Store) deleteKey(ctx context.Context, key string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "storage delete failed", "key", key, "error", err)
	}
}
