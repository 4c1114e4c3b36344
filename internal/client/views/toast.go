package views

import "github.com/dmitrijs2005/gophblog/internal/client/client"

type Variant int

const (
	VariantDefault Variant = iota
	VariantDestructive
)

func (v Variant) String() string {
	if v == VariantDestructive {
		return "destructive"
	}
	return "default"
}

// Toast is a transient notification.
type Toast struct {
	Title       string
	Description string
	Variant     Variant
}

type Toaster interface {
	Toast(t Toast)
}

// ToasterFunc adapts a function to Toaster.
type ToasterFunc func(Toast)

func (f ToasterFunc) Toast(t Toast) { f(t) }

type nopToaster struct{}

func (nopToaster) Toast(Toast) {}

func orNop(t Toaster) Toaster {
	if t == nil {
		return nopToaster{}
	}
	return t
}

// toastError shows err as a destructive toast under title.
func toastError(t Toaster, title string, err error) {
	t.Toast(Toast{Title: title, Description: client.ErrorMessage(err), Variant: VariantDestructive})
}
