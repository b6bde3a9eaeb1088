package domain

import (
	"errors"
	"unicode/utf8"
)

// Sentinel errors shared by repositories, services, and handlers.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("token is not valid")
)

// ValidationError reports malformed or missing client input. Message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError returns a *ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// MinPasswordLength is the shortest password accepted at sign-up, in characters.
const MinPasswordLength = 6

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

// Client-facing validation messages.
const (
	MsgMissingFields      = "Please enter all fields"
	MsgPasswordTooShort   = "Password must be at least 6 characters long"
	MsgPasswordTooLong    = "Password must be at most 72 bytes long"
	MsgInvalidEmail       = "Please enter a valid email"
	MsgMissingEventFields = "Please provide title, event date, event time, and location"
)

// ValidatePassword applies the sign-up password rules. Length is counted in
// characters; the upper bound is in bytes.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return NewValidationError(MsgPasswordTooShort)
	}
	if len(password) > MaxPasswordBytes {
		return NewValidationError(MsgPasswordTooLong)
	}
	return nil
}
