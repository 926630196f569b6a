package subscriptions

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/bissquit/newsletter/internal/domain"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the maximum number of characters allowed in a subscriber name.
const MaxNameLength = 256

// forbiddenNameChars lists characters rejected anywhere in a name.
const forbiddenNameChars = `/()"<>\{}`

// placeholderDomain stands in for a dotless domain when checking the local part alone.
const placeholderDomain = "example.com"

// SubscribeForm holds the raw fields of a subscription request.
type SubscribeForm struct {
	Name  string
	Email string
}

// ParseSubscribeForm extracts the form fields from decoded body values.
// Both keys must be present; an empty value is left for Validate to reject.
func ParseSubscribeForm(values url.Values) (SubscribeForm, error) {
	name, hasName := values["name"]
	email, hasEmail := values["email"]
	if !hasName || !hasEmail || len(name) == 0 || len(email) == 0 {
		return SubscribeForm{}, ErrMalformedInput
	}

	return SubscribeForm{Name: name[0], Email: email[0]}, nil
}

// FormValidator checks subscription forms. It is safe for concurrent use.
type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator creates a new form validator.
func NewFormValidator() *FormValidator {
	return &FormValidator{validate: validator.New()}
}

// Validate checks the name first, then the email, and returns the first failure.
func (v *FormValidator) Validate(form SubscribeForm) (domain.NewSubscriber, error) {
	if !validName(form.Name) {
		return domain.NewSubscriber{}, ErrInvalidName
	}

	if !v.validEmail(form.Email) {
		return domain.NewSubscriber{}, ErrInvalidEmail
	}

	return domain.NewSubscriber{Name: form.Name, Email: form.Email}, nil
}

func validName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}

	// Count characters on the composed form so "é" written as e + U+0301 counts once.
	if utf8.RuneCountInString(norm.NFC.String(trimmed)) > MaxNameLength {
		return false
	}

	return !strings.ContainsAny(name, forbiddenNameChars)
}

// validEmail accepts local@domain where the domain may be a single label such as localhost.
// The validator's email rule demands a dotted domain, so a dotless address is split on its
// last "@": the local part is checked against a placeholder domain, the domain as a hostname.
func (v *FormValidator) validEmail(email string) bool {
	if v.validate.Var(email, "required,email") == nil {
		return true
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, host := email[:at], email[at+1:]

	if v.validate.Var(host, "hostname_rfc1123") != nil {
		return false
	}
	return v.validate.Var(local+"@"+placeholderDomain, "email") == nil
}
