package subscriptions

import "errors"

// Validation errors.
var (
	ErrMalformedInput = errors.New("malformed form data: name and email are required")
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidEmail   = errors.New("invalid email")
)

// Store errors.
var (
	ErrStoreFault = errors.New("store fault")
)
