package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophblog/internal/client/router"
)

type fakeSession struct {
	mu        sync.Mutex
	token     string
	loggedOut int
}

func (s *fakeSession) Token(context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeSession) SetToken(_ context.Context, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *fakeSession) Logout(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.loggedOut++
}

func inline(fn func()) { fn() }

func newTestClient(t *testing.T, h http.HandlerFunc, sess *fakeSession, opts ...Option) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithScheduler(inline)}, opts...)
	c, err := NewHTTPClient(srv.URL+"/api", sess, opts...)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "  ", "localhost", "://bad"} {
		_, err := NewHTTPClient(raw, nil)
		assert.Error(t, err, raw)
	}
}

func TestDo_RequestInterceptor(t *testing.T) {
	sess := &fakeSession{token: "tok-1"}
	var got *http.Request
	var body []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}, sess)

	err := c.do(context.Background(), http.MethodPost, "/posts", nil, map[string]string{"title": "x"}, nil)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/api/posts", got.URL.Path)
	assert.Equal(t, "Bearer tok-1", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
	assert.JSONEq(t, `{"title":"x"}`, string(body))
}

func TestDo_NoTokenNoAuthorizationHeader(t *testing.T) {
	var auth string
	var hasAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}, &fakeSession{})

	require.NoError(t, c.do(context.Background(), http.MethodGet, "/posts", nil, nil, nil))
	assert.Empty(t, auth)
	assert.False(t, hasAuth)
}

func TestDo_CapturesAccessToken(t *testing.T) {
	sess := &fakeSession{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"bearer"}`))
	}, sess)

	require.NoError(t, c.do(context.Background(), http.MethodPost, "/auth/login", nil, nil, nil))
	assert.Equal(t, "fresh", sess.Token(context.Background()))
}

func TestDo_UnauthorizedRedirectsToLogin(t *testing.T) {
	sess := &fakeSession{token: "stale"}
	nav := router.New(router.ViewPosts)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	}, sess, WithNavigator(nav))

	err := c.do(context.Background(), http.MethodGet, "/posts", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Empty(t, sess.Token(context.Background()))
	assert.Equal(t, 1, sess.loggedOut)
	assert.Equal(t, router.ViewLogin, nav.Current())
}

func TestDo_UnauthorizedOnAuthViewStays(t *testing.T) {
	for _, view := range []string{router.ViewLogin, router.ViewRegister} {
		t.Run(view, func(t *testing.T) {
			sess := &fakeSession{token: "stale"}
			nav := router.New(view)
			moves := 0
			nav.OnChange(func(string, string) { moves++ })
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}, sess, WithNavigator(nav))

			err := c.do(context.Background(), http.MethodPost, "/auth/login", nil, nil, nil)
			require.Error(t, err)
			assert.Empty(t, sess.Token(context.Background()))
			assert.Equal(t, view, nav.Current())
			assert.Zero(t, moves)
		})
	}
}

func TestDo_UnauthorizedNavigationIsDeferred(t *testing.T) {
	nav := router.New(router.ViewPosts)
	var pending []func()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, &fakeSession{token: "t"}, WithNavigator(nav), WithScheduler(func(fn func()) {
		pending = append(pending, fn)
	}))

	_ = c.do(context.Background(), http.MethodGet, "/posts", nil, nil, nil)
	assert.Equal(t, router.ViewPosts, nav.Current())
	require.Len(t, pending, 1)

	pending[0]()
	assert.Equal(t, router.ViewLogin, nav.Current())
}

func TestDo_APIErrorDecoded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":{"title":["The title field is required."],"content":"too short"}}`))
	}, &fakeSession{})

	err := c.do(context.Background(), http.MethodPost, "/posts", nil, struct{}{}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "The title field is required.", ErrorMessage(err))
	assert.Equal(t, "too short", apiErr.Errors.Get("content"))
}

func TestDo_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}, &fakeSession{})

	err := c.do(context.Background(), http.MethodGet, "/posts", nil, nil, nil)
	assert.True(t, errors.Is(err, ErrServer))
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, &fakeSession{})
	require.NoError(t, err)

	err = c.do(context.Background(), http.MethodGet, "/posts", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, MsgServer, ErrorMessage(err))
}

func TestDo_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, &fakeSession{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.do(ctx, http.MethodGet, "/posts", nil, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_DecodeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, &fakeSession{})

	var out map[string]any
	err := c.do(context.Background(), http.MethodGet, "/posts", nil, nil, &out)
	require.Error(t, err)
	var syn *json.SyntaxError
	assert.True(t, errors.As(err, &syn))
}
