package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// fakePostsAPI records calls and answers from its fields.
type fakePostsAPI struct {
	mu sync.Mutex

	listCalls []models.ListPostsParams
	listFn    func(models.ListPostsParams) (*models.PostsPage, error)

	post      *models.Post
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	created []models.CreatePostData
	updated map[int64]models.UpdatePostData
	deleted []int64
}

func newFakePostsAPI() *fakePostsAPI {
	return &fakePostsAPI{updated: map[int64]models.UpdatePostData{}}
}

func (f *fakePostsAPI) ListPosts(_ context.Context, p models.ListPostsParams) (*models.PostsPage, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, p)
	fn := f.listFn
	f.mu.Unlock()
	if fn != nil {
		return fn(p)
	}
	return &models.PostsPage{Page: p.Page, LastPage: 1}, nil
}

func (f *fakePostsAPI) calls() []models.ListPostsParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ListPostsParams(nil), f.listCalls...)
}

func (f *fakePostsAPI) GetPost(_ context.Context, id int64) (*models.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p := *f.post
	p.ID = id
	return &p, nil
}

func (f *fakePostsAPI) CreatePost(_ context.Context, data models.CreatePostData) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, data)
	return &models.Post{ID: 100, Title: data.Title, Content: models.Body(data.Content)}, nil
}

func (f *fakePostsAPI) UpdatePost(_ context.Context, id int64, data models.UpdatePostData) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated[id] = data
	return &models.Post{ID: id, Title: *data.Title}, nil
}

func (f *fakePostsAPI) DeletePost(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

var _ client.PostsAPI = (*fakePostsAPI)(nil)

// toastRecorder collects toasts.
type toastRecorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *toastRecorder) Toast(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *toastRecorder) all() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// fakeAuthAPI implements client.AuthAPI.
type fakeAuthAPI struct {
	loginResp  *models.AuthResponse
	loginErr   error
	regErr     error
	profile    *models.User
	profileErr error
	profileN   int
}

func (f *fakeAuthAPI) Login(context.Context, models.LoginCredentials) (*models.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) Register(context.Context, models.RegisterData) (*models.AuthResponse, error) {
	if f.regErr != nil {
		return nil, f.regErr
	}
	return f.loginResp, nil
}

func (f *fakeAuthAPI) GetProfile(context.Context) (*models.User, error) {
	f.profileN++
	return f.profile, f.profileErr
}

func (f *fakeAuthAPI) Logout(context.Context) {}

type userOnly struct{ u *models.User }

func (s userOnly) User() *models.User { return s.u }
