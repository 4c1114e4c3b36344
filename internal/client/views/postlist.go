package views

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/debounce"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

const (
	DefaultPerPage     = 10
	DefaultSearchDelay = 500 * time.Millisecond
)

// PostListOptions configures a PostList. Zero values take defaults.
type PostListOptions struct {
	// AuthorID restricts the list to one author ("my posts").
	AuthorID    int64
	PerPage     int
	SearchDelay time.Duration
	Toaster     Toaster
	Logger      logging.Logger
	// OnChange is called after every state change, outside the lock.
	OnChange func(PostListState)
	// OnResults is called after a response has been applied.
	OnResults func(PostListState)
}

// PostListState is a snapshot of the list.
type PostListState struct {
	Loading     bool
	Posts       []models.PostListItem
	Page        int
	TotalPages  int
	SearchTitle string
}

// HasPrev reports whether the previous-page control is enabled.
func (s PostListState) HasPrev() bool { return s.Page > 1 }

// HasNext reports whether the next-page control is enabled.
func (s PostListState) HasNext() bool { return s.Page < s.TotalPages }

// ShowPagination is false when everything fits on one page.
func (s PostListState) ShowPagination() bool { return s.TotalPages > 1 }

// PostList is the posts listing with title search and pagination.
//
// Only the response to the most recent request is applied; slower
// responses to earlier requests are dropped. After Close nothing is
// applied and pending searches never fire.
type PostList struct {
	api  client.PostsAPI
	opts PostListOptions
	log  logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	search *debounce.Debouncer

	mu       sync.Mutex
	state    PostListState
	seq      uint64
	inflight int
}

// NewPostList builds the controller. ctx bounds every request it makes,
// including debounced searches.
func NewPostList(ctx context.Context, api client.PostsAPI, opts PostListOptions) *PostList {
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	if opts.SearchDelay <= 0 {
		opts.SearchDelay = DefaultSearchDelay
	}
	opts.Toaster = orNop(opts.Toaster)
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	return &PostList{
		api:    api,
		opts:   opts,
		log:    log.With("component", "post_list"),
		ctx:    ctx,
		cancel: cancel,
		search: debounce.New(opts.SearchDelay),
		state:  PostListState{Page: 1, TotalPages: 1},
	}
}

func (l *PostList) State() PostListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *PostList) snapshotLocked() PostListState {
	s := l.state
	s.Posts = append([]models.PostListItem(nil), l.state.Posts...)
	return s
}

// Load fetches the current page with the current search title. It
// blocks until the response is applied. Errors are toasted; the posts
// already shown are kept.
func (l *PostList) Load() {
	l.mu.Lock()
	page, title := l.state.Page, l.state.SearchTitle
	l.mu.Unlock()
	l.fetch(page, title, false)
}

// SearchChanged records the new search input, resets the page to 1 and
// schedules a search. Calls within SearchDelay of each other collapse
// into one request for the last value.
func (l *PostList) SearchChanged(value string) {
	l.mu.Lock()
	l.state.SearchTitle = value
	l.state.Page = 1
	l.mu.Unlock()
	l.notify()

	l.search.Trigger(func() { l.fetch(1, value, true) })
}

// SetPage clamps n to the known page range and loads it right away. A
// pending search is dropped; the load already uses the typed title.
func (l *PostList) SetPage(n int) {
	l.search.Cancel()
	l.mu.Lock()
	if n > l.state.TotalPages {
		n = l.state.TotalPages
	}
	if n < 1 {
		n = 1
	}
	l.state.Page = n
	l.mu.Unlock()
	l.Load()
}

func (l *PostList) NextPage() {
	l.SetPage(l.State().Page + 1)
}

func (l *PostList) PrevPage() {
	l.SetPage(l.State().Page - 1)
}

// Close cancels in-flight requests and pending searches.
func (l *PostList) Close() {
	l.search.Stop()
	l.cancel()
}

func (l *PostList) fetch(page int, title string, isSearch bool) {
	l.mu.Lock()
	if l.ctx.Err() != nil {
		l.mu.Unlock()
		return
	}
	l.seq++
	seq := l.seq
	if !isSearch {
		l.inflight++
		l.state.Loading = true
	}
	l.mu.Unlock()
	if !isSearch {
		l.notify()
	}

	params := models.ListPostsParams{
		Page:     page,
		PerPage:  l.opts.PerPage,
		Title:    strings.TrimSpace(title),
		AuthorID: l.opts.AuthorID,
	}
	resp, err := l.api.ListPosts(l.ctx, params)

	l.mu.Lock()
	if !isSearch {
		l.inflight--
		l.state.Loading = l.inflight > 0
	}
	if l.ctx.Err() != nil {
		l.mu.Unlock()
		return
	}
	if seq != l.seq {
		l.mu.Unlock()
		l.log.Debug(l.ctx, "stale posts response dropped", "page", page, "title", title)
		l.notify()
		return
	}
	if err != nil {
		l.mu.Unlock()
		l.log.Warn(l.ctx, "posts request failed", "page", page, "error", err)
		if isSearch {
			toastError(l.opts.Toaster, "Search failed", err)
		} else {
			toastError(l.opts.Toaster, "Failed to load posts", err)
		}
		l.notify()
		return
	}

	l.state.Posts = resp.Data
	l.state.TotalPages = resp.LastPage
	if l.state.TotalPages < 1 {
		l.state.TotalPages = 1
	}
	if isSearch {
		l.state.Page = 1
	}
	l.mu.Unlock()
	l.notify()
	if l.opts.OnResults != nil {
		l.opts.OnResults(l.State())
	}
}

func (l *PostList) notify() {
	if l.opts.OnChange == nil {
		return
	}
	l.opts.OnChange(l.State())
}
