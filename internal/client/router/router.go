// Package router tracks which view the user is on and moves between views.
package router

import "sync"

// View names. Auth views are reachable without a session.
const (
	ViewLogin    = "login"
	ViewRegister = "register"
	ViewPosts    = "posts"
	ViewMyPosts  = "my-posts"
	ViewPost     = "post"
	ViewNewPost  = "new-post"
	ViewEditPost = "edit-post"
)

// Navigator is what components need to read and change the current view.
type Navigator interface {
	Current() string
	Navigate(view string)
}

// IsAuthView reports whether view is the login or register view.
func IsAuthView(view string) bool {
	return view == ViewLogin || view == ViewRegister
}

// Router is a Navigator that remembers the current view and notifies an
// optional listener on every change. Safe for concurrent use.
type Router struct {
	mu       sync.Mutex
	current  string
	onChange func(from, to string)
}

func New(initial string) *Router {
	return &Router{current: initial}
}

// OnChange registers fn to run after each navigation. fn runs on the
// navigating goroutine, outside the router lock.
func (r *Router) OnChange(fn func(from, to string)) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) Navigate(view string) {
	r.mu.Lock()
	from := r.current
	r.current = view
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil && from != view {
		fn(from, view)
	}
}
