package views

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/content"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// ErrCannotSubmit is returned by Submit while saving or with blank fields.
var ErrCannotSubmit = errors.New("post form is not ready to submit")

type PostDialogOptions struct {
	Toaster Toaster
	// OnSuccess runs after a successful save with the saved post.
	OnSuccess func(*models.Post)
	// Envelope sends the body as a {"version","content"} JSON string
	// instead of raw HTML.
	Envelope bool
}

type postForm struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// PostDialog is the single form used to create a post or edit one.
type PostDialog struct {
	api  client.PostsAPI
	opts PostDialogOptions

	mu      sync.Mutex
	open    bool
	post    *models.Post
	title   string
	content string
	saving  bool
}

func NewPostDialog(api client.PostsAPI, opts PostDialogOptions) *PostDialog {
	opts.Toaster = orNop(opts.Toaster)
	return &PostDialog{api: api, opts: opts}
}

// Open shows the dialog. With a post it edits that post and starts from
// its title and body; with nil it creates and starts blank.
func (d *PostDialog) Open(post *models.Post) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.post = post
	d.saving = false
	if post != nil {
		d.title = post.Title
		d.content = post.Content.String()
	} else {
		d.title = ""
		d.content = ""
	}
}

func (d *PostDialog) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

func (d *PostDialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// IsEditing reports whether the dialog was opened on an existing post.
func (d *PostDialog) IsEditing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.post != nil
}

func (d *PostDialog) SetTitle(v string) {
	d.mu.Lock()
	d.title = v
	d.mu.Unlock()
}

func (d *PostDialog) SetContent(v string) {
	d.mu.Lock()
	d.content = v
	d.mu.Unlock()
}

func (d *PostDialog) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

func (d *PostDialog) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

// CanSubmit is false while saving or when title or body is blank.
func (d *PostDialog) CanSubmit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canSubmitLocked()
}

func (d *PostDialog) canSubmitLocked() bool {
	return !d.saving && strings.TrimSpace(d.title) != "" && strings.TrimSpace(d.content) != ""
}

// Submit saves the form: an update of the edited post, or a new post.
// On success the dialog closes, OnSuccess runs and a toast is shown. On
// failure the error is toasted and the dialog stays open with its fields
// intact.
func (d *PostDialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	if !d.open || !d.canSubmitLocked() {
		d.mu.Unlock()
		return ErrCannotSubmit
	}
	form := postForm{Title: strings.TrimSpace(d.title), Content: d.content}
	editing := d.post
	d.saving = true
	d.mu.Unlock()

	saved, err := d.save(ctx, editing, form)

	d.mu.Lock()
	d.saving = false
	if err == nil {
		d.open = false
	}
	d.mu.Unlock()

	if err != nil {
		title := "Failed to create post"
		if editing != nil {
			title = "Failed to update post"
		}
		toastError(d.opts.Toaster, title, err)
		return err
	}

	if d.opts.OnSuccess != nil {
		d.opts.OnSuccess(saved)
	}
	if editing != nil {
		d.opts.Toaster.Toast(Toast{Title: "Post updated", Description: "The post was updated."})
	} else {
		d.opts.Toaster.Toast(Toast{Title: "Post created", Description: "The post was created."})
	}
	return nil
}

func (d *PostDialog) save(ctx context.Context, editing *models.Post, form postForm) (*models.Post, error) {
	if fe := validateForm(form); fe != nil {
		return nil, &ValidationError{Fields: fe}
	}

	body, err := d.encodeBody(form.Content)
	if err != nil {
		return nil, err
	}

	if editing != nil {
		return d.api.UpdatePost(ctx, editing.ID, models.UpdatePostData{Title: &form.Title, Content: &body})
	}
	return d.api.CreatePost(ctx, models.CreatePostData{Title: form.Title, Content: body})
}

func (d *PostDialog) encodeBody(html string) (string, error) {
	if !d.opts.Envelope {
		return html, nil
	}
	b, err := json.Marshal(content.ToEnvelope(html))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
