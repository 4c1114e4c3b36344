package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/router"
)

func detailAPI() *fakePostsAPI {
	api := newFakePostsAPI()
	api.post = &models.Post{Title: "T", Author: models.User{ID: 1, Name: "Ann"}}
	return api
}

func TestPostDetail_NonAuthorSeesNoControls(t *testing.T) {
	cases := []struct {
		name string
		user *models.User
		want bool
	}{
		{"author", &models.User{ID: 1}, true},
		{"other user", &models.User{ID: 2}, false},
		{"anonymous", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewPostDetail(detailAPI(), 5, PostDetailOptions{Session: userOnly{tc.user}})
			require.NoError(t, d.Load(context.Background()))
			assert.Equal(t, tc.want, d.CanMutate())
		})
	}
}

func TestPostDetail_NotLoadedCannotMutate(t *testing.T) {
	d := NewPostDetail(detailAPI(), 5, PostDetailOptions{Session: userOnly{&models.User{ID: 1}}})
	assert.False(t, d.CanMutate())
	assert.False(t, d.Delete(context.Background()))
}

func TestPostDetail_LoadError(t *testing.T) {
	api := detailAPI()
	api.getErr = &client.APIError{Status: 404}
	d := NewPostDetail(api, 5, PostDetailOptions{})

	err := d.Load(context.Background())
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, client.MsgNotFound, d.Err())
	assert.False(t, d.loading)
	assert.Nil(t, d.Post())
}

func TestPostDetail_Delete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		api := detailAPI()
		d := NewPostDetail(api, 5, PostDetailOptions{Confirmer: ConfirmFunc(func(string) bool { return false })})
		require.NoError(t, d.Load(context.Background()))

		assert.False(t, d.Delete(context.Background()))
		assert.Empty(t, api.deleted)
	})

	t.Run("confirmed", func(t *testing.T) {
		api := detailAPI()
		nav := router.New(router.ViewPost)
		var asked string
		d := NewPostDetail(api, 5, PostDetailOptions{
			Navigator: nav,
			Confirmer: ConfirmFunc(func(m string) bool { asked = m; return true }),
		})
		require.NoError(t, d.Load(context.Background()))

		assert.True(t, d.Delete(context.Background()))
		assert.Equal(t, DeleteConfirmation, asked)
		assert.Equal(t, []int64{5}, api.deleted)
		assert.Equal(t, router.ViewPosts, nav.Current())
		assert.False(t, d.deleting)
	})

	t.Run("forbidden", func(t *testing.T) {
		api := detailAPI()
		api.deleteErr = &client.APIError{Status: 403}
		toasts := &toastRecorder{}
		nav := router.New(router.ViewPost)
		d := NewPostDetail(api, 5, PostDetailOptions{Navigator: nav, Toaster: toasts})
		require.NoError(t, d.Load(context.Background()))

		assert.False(t, d.Delete(context.Background()))
		assert.Equal(t, client.MsgForbidden, d.Err())
		assert.Equal(t, router.ViewPost, nav.Current())
		require.Len(t, toasts.all(), 1)
	})
}
