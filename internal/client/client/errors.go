package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrServer       = errors.New("server error")
)

// User-facing fallbacks used by ErrorMessage.
const (
	MsgUnauthorized = "Not authorized. Please log in again."
	MsgForbidden    = "You do not have permission to perform this action."
	MsgNotFound     = "Resource not found."
	MsgServer       = "Internal server error. Please try again later."
	MsgUnexpected   = "An unexpected error occurred. Please try again."
)

// FieldError holds the validation messages of one input field.
type FieldError struct {
	Field    string
	Messages []string
}

// FieldErrors keeps the server's field order, so "the first invalid field"
// is the one the server listed first. Each field may carry a list of
// messages or a single string.
type FieldErrors []FieldError

func (f *FieldErrors) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		// null, [] or a scalar carry no field errors
		*f = nil
		return nil
	}

	var out FieldErrors
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		fe := FieldError{Field: key}
		var many []string
		var one string
		switch {
		case json.Unmarshal(raw, &many) == nil:
			fe.Messages = many
		case json.Unmarshal(raw, &one) == nil:
			fe.Messages = []string{one}
		}
		out = append(out, fe)
	}
	*f = out
	return nil
}

// Get returns the first message for field, or "".
func (f FieldErrors) Get(field string) string {
	for _, fe := range f {
		if fe.Field == field && len(fe.Messages) > 0 {
			return fe.Messages[0]
		}
	}
	return ""
}

// First returns the first message of the first field that has one.
func (f FieldErrors) First() string {
	for _, fe := range f {
		if len(fe.Messages) > 0 {
			return fe.Messages[0]
		}
	}
	return ""
}

// APIError is a non-2xx API response.
type APIError struct {
	Status  int         `json:"-"`
	Message string      `json:"message,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
	Detail  string      `json:"error,omitempty"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	if len(bytes.TrimSpace(body)) > 0 {
		// a body that is not the documented error shape still yields the status
		_ = json.Unmarshal(body, e)
	}
	return e
}

func (e *APIError) Error() string {
	text := e.Message
	if text == "" {
		text = e.Errors.First()
	}
	if text == "" {
		text = e.Detail
	}
	if text == "" {
		text = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, text)
}

// Unwrap maps the status to a sentinel, so errors.Is(err, ErrNotFound)
// works on an *APIError.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		return ErrValidation
	case e.Status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return nil
	}
}

// ErrorMessage converts err into text for a toast or an inline alert.
//
// For API errors the order is: server message, first error of the first
// invalid field, the "error" field, then a status-specific fallback.
// Network failures read like server errors.
func ErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if first := apiErr.Errors.First(); first != "" {
			return first
		}
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return MsgUnauthorized
		case http.StatusForbidden:
			return MsgForbidden
		case http.StatusNotFound:
			return MsgNotFound
		}
		if errors.Is(apiErr, ErrServer) {
			return MsgServer
		}
		return apiErr.Error()
	}

	if errors.Is(err, ErrUnavailable) {
		return MsgServer
	}
	return err.Error()
}

// FormError picks the inline message for a form: the server message, else
// the first error of the given fields in order, else fallback.
func FormError(err error, fallback string, fields ...string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	for _, f := range fields {
		if msg := apiErr.Errors.Get(f); msg != "" {
			return msg
		}
	}
	return fallback
}
