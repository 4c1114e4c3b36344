package views

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/router"
	"github.com/dmitrijs2005/gophblog/internal/client/services"
)

const (
	MsgLoginFailed    = "Login failed. Check your credentials."
	MsgRegisterFailed = "Could not create the account. Please try again."
)

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerInput struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// authForm is the state both auth forms share.
type authForm struct {
	auth services.AuthService
	nav  router.Navigator

	mu      sync.Mutex
	loading bool
	err     string
}

// Err is the inline alert text of the last failed submit.
func (f *authForm) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *authForm) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loading {
		return false
	}
	f.loading = true
	f.err = ""
	return true
}

func (f *authForm) finish(errText string) {
	f.mu.Lock()
	f.loading = false
	f.err = errText
	f.mu.Unlock()
}

func (f *authForm) done() {
	f.finish("")
	if f.nav != nil {
		f.nav.Navigate(router.ViewPosts)
	}
}

// LoginForm signs an existing user in.
type LoginForm struct {
	authForm
	Email    string
	Password string
}

func NewLoginForm(auth services.AuthService, nav router.Navigator) *LoginForm {
	return &LoginForm{authForm: authForm{auth: auth, nav: nav}}
}

// Submit logs in and opens the post list. On failure it returns false and
// sets Err: the server message, else the first email error, else
// MsgLoginFailed.
func (f *LoginForm) Submit(ctx context.Context) bool {
	in := loginInput{Email: strings.TrimSpace(f.Email), Password: f.Password}
	if fe := validateForm(in); fe != nil {
		f.finish(firstFieldMessage(fe))
		return false
	}
	if !f.begin() {
		return false
	}

	_, err := f.auth.Login(ctx, models.LoginCredentials{Email: in.Email, Password: in.Password})
	if err != nil {
		f.finish(client.FormError(err, MsgLoginFailed, "email"))
		return false
	}
	f.done()
	return true
}

// RegisterForm creates an account and signs it in.
type RegisterForm struct {
	authForm
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

func NewRegisterForm(auth services.AuthService, nav router.Navigator) *RegisterForm {
	return &RegisterForm{authForm: authForm{auth: auth, nav: nav}}
}

// Submit registers and opens the post list. On failure it returns false
// and sets Err: the server message, else the first email error, else the
// first password error, else MsgRegisterFailed.
func (f *RegisterForm) Submit(ctx context.Context) bool {
	in := registerInput{
		Name:                 strings.TrimSpace(f.Name),
		Email:                strings.TrimSpace(f.Email),
		Password:             f.Password,
		PasswordConfirmation: f.PasswordConfirmation,
	}
	if fe := validateForm(in); fe != nil {
		f.finish(firstFieldMessage(fe))
		return false
	}
	if !f.begin() {
		return false
	}

	_, err := f.auth.Register(ctx, models.RegisterData{Name: in.Name, Email: in.Email, Password: in.Password})
	if err != nil {
		f.finish(client.FormError(err, MsgRegisterFailed, "email", "password"))
		return false
	}
	f.done()
	return true
}
