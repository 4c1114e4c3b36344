package views

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/content"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

func TestPostDialog_CanSubmit(t *testing.T) {
	d := NewPostDialog(newFakePostsAPI(), PostDialogOptions{})
	d.Open(nil)

	cases := []struct {
		title, content string
		want           bool
	}{
		{"", "", false},
		{"   ", "<p>x</p>", false},
		{"Title", "  ", false},
		{"Title", "<p>x</p>", true},
	}
	for _, tc := range cases {
		d.SetTitle(tc.title)
		d.SetContent(tc.content)
		assert.Equal(t, tc.want, d.CanSubmit(), "%q/%q", tc.title, tc.content)
	}
}

func TestPostDialog_EmptyTitleDoesNotSubmit(t *testing.T) {
	api := newFakePostsAPI()
	d := NewPostDialog(api, PostDialogOptions{})
	d.Open(nil)
	d.SetContent("<p>body</p>")

	err := d.Submit(context.Background())
	assert.ErrorIs(t, err, ErrCannotSubmit)
	assert.Empty(t, api.created)
	assert.True(t, d.IsOpen())
}

func TestPostDialog_CreateSuccess(t *testing.T) {
	api := newFakePostsAPI()
	toasts := &toastRecorder{}
	var saved *models.Post
	d := NewPostDialog(api, PostDialogOptions{Toaster: toasts, OnSuccess: func(p *models.Post) { saved = p }})

	d.Open(nil)
	assert.False(t, d.IsEditing())
	d.SetTitle("  Hello ")
	d.SetContent("<p>world</p>")

	require.NoError(t, d.Submit(context.Background()))
	assert.Equal(t, []models.CreatePostData{{Title: "Hello", Content: "<p>world</p>"}}, api.created)
	assert.Empty(t, api.updated)
	assert.False(t, d.IsOpen())
	require.NotNil(t, saved)
	assert.Equal(t, "Post created", toasts.all()[0].Title)
}

func TestPostDialog_EditUpdatesThatPost(t *testing.T) {
	api := newFakePostsAPI()
	d := NewPostDialog(api, PostDialogOptions{})

	post := &models.Post{ID: 42, Title: "Old", Content: "<p>old</p>"}
	d.Open(post)
	assert.True(t, d.IsEditing())
	assert.Equal(t, "Old", d.Title())
	assert.Equal(t, "<p>old</p>", d.Content())

	d.SetTitle("New")
	require.NoError(t, d.Submit(context.Background()))

	assert.Empty(t, api.created)
	require.Contains(t, api.updated, int64(42))
	upd := api.updated[42]
	assert.Equal(t, "New", *upd.Title)
	assert.Equal(t, "<p>old</p>", *upd.Content)
}

func TestPostDialog_FailureKeepsDataAndOpen(t *testing.T) {
	api := newFakePostsAPI()
	api.createErr = &client.APIError{Status: 422, Errors: client.FieldErrors{{Field: "title", Messages: []string{"title taken"}}}}
	toasts := &toastRecorder{}
	d := NewPostDialog(api, PostDialogOptions{Toaster: toasts})

	d.Open(nil)
	d.SetTitle("T")
	d.SetContent("<p>c</p>")

	err := d.Submit(context.Background())
	require.ErrorIs(t, err, client.ErrValidation)
	assert.True(t, d.IsOpen())
	assert.False(t, d.saving)
	assert.True(t, d.CanSubmit())
	assert.Equal(t, "T", d.Title())
	assert.Equal(t, "<p>c</p>", d.Content())

	got := toasts.all()
	require.Len(t, got, 1)
	assert.Equal(t, "Failed to create post", got[0].Title)
	assert.Equal(t, "title taken", got[0].Description)
}

func TestPostDialog_TitleTooLong(t *testing.T) {
	api := newFakePostsAPI()
	d := NewPostDialog(api, PostDialogOptions{})
	d.Open(nil)
	d.SetTitle(strings.Repeat("a", 256))
	d.SetContent("<p>c</p>")

	err := d.Submit(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Fields[0].Field)
	assert.Empty(t, api.created)
}

func TestPostDialog_OpenResetsFields(t *testing.T) {
	d := NewPostDialog(newFakePostsAPI(), PostDialogOptions{})
	d.Open(&models.Post{ID: 1, Title: "A", Content: "B"})
	d.Open(nil)
	assert.Equal(t, "", d.Title())
	assert.Equal(t, "", d.Content())
}

func TestPostDialog_Envelope(t *testing.T) {
	api := newFakePostsAPI()
	d := NewPostDialog(api, PostDialogOptions{Envelope: true})
	d.Open(nil)
	d.SetTitle("T")
	d.SetContent("<p>c</p>")
	require.NoError(t, d.Submit(context.Background()))

	var env content.Envelope
	require.NoError(t, json.Unmarshal([]byte(api.created[0].Content), &env))
	assert.Equal(t, content.ToEnvelope("<p>c</p>"), env)
}
