package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/router"
)

// DeleteConfirmation is the question asked before a post is deleted.
const DeleteConfirmation = "Are you sure you want to delete this post?"

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// UserSource yields the logged-in user, or nil. session.Store satisfies it.
type UserSource interface {
	User() *models.User
}

type PostDetailOptions struct {
	Session   UserSource
	Navigator router.Navigator
	Confirmer Confirmer
	Toaster   Toaster
}

// PostDetail shows one post and offers edit and delete to its author.
type PostDetail struct {
	api  client.PostsAPI
	id   int64
	opts PostDetailOptions

	mu       sync.Mutex
	post     *models.Post
	loading  bool
	deleting bool
	err      string
}

func NewPostDetail(api client.PostsAPI, id int64, opts PostDetailOptions) *PostDetail {
	opts.Toaster = orNop(opts.Toaster)
	return &PostDetail{api: api, id: id, opts: opts}
}

func (d *PostDetail) ID() int64 { return d.id }

// Post returns the loaded post, or nil.
func (d *PostDetail) Post() *models.Post {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.post
}

// Err is the inline error of the last failed operation.
func (d *PostDetail) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Load fetches the post. On failure the inline error is set.
func (d *PostDetail) Load(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.err = ""
	d.mu.Unlock()

	post, err := d.api.GetPost(ctx, d.id)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.err = client.ErrorMessage(err)
		return err
	}
	d.post = post
	return nil
}

// CanMutate reports whether edit and delete may be offered: the session
// user wrote the post.
func (d *PostDetail) CanMutate() bool {
	var user *models.User
	if d.opts.Session != nil {
		user = d.opts.Session.User()
	}
	return d.Post().IsAuthor(user)
}

// Delete asks for confirmation, deletes the post and goes back to the
// list. It returns true only if the post was deleted.
func (d *PostDetail) Delete(ctx context.Context) bool {
	post := d.Post()
	if post == nil {
		return false
	}
	if d.opts.Confirmer != nil && !d.opts.Confirmer.Confirm(DeleteConfirmation) {
		return false
	}

	d.mu.Lock()
	d.deleting = true
	d.err = ""
	d.mu.Unlock()

	err := d.api.DeletePost(ctx, post.ID)

	d.mu.Lock()
	d.deleting = false
	if err != nil {
		d.err = client.ErrorMessage(err)
	}
	d.mu.Unlock()

	if err != nil {
		toastError(d.opts.Toaster, "Failed to delete post", err)
		return false
	}
	d.opts.Toaster.Toast(Toast{Title: "Post deleted", Description: "The post was deleted."})
	if d.opts.Navigator != nil {
		d.opts.Navigator.Navigate(router.ViewPosts)
	}
	return true
}
