package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_NavigateNotifiesChanges(t *testing.T) {
	r := New(ViewLogin)
	var changes [][2]string
	r.OnChange(func(from, to string) { changes = append(changes, [2]string{from, to}) })

	r.Navigate(ViewPosts)
	r.Navigate(ViewPosts)
	r.Navigate(ViewPost)

	assert.Equal(t, ViewPost, r.Current())
	assert.Equal(t, [][2]string{{ViewLogin, ViewPosts}, {ViewPosts, ViewPost}}, changes)
}

func TestIsAuthView(t *testing.T) {
	assert.True(t, IsAuthView(ViewLogin))
	assert.True(t, IsAuthView(ViewRegister))
	assert.False(t, IsAuthView(ViewPosts))
	assert.False(t, IsAuthView(""))
}
