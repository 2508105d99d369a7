package service

import (
	"errors"

	"echargefinder/backend/services/finder/internal/storage"
)

var (
	// ErrDuplicateEmail is returned when registering an email that already has an account.
	ErrDuplicateEmail = errors.New("auth: email already registered")
	// ErrWeakPassword is returned for passwords shorter than MinPasswordLength.
	ErrWeakPassword = errors.New("auth: password must be at least 6 characters")
	// ErrPasswordTooLong is returned for passwords longer than MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("auth: password must be at most 72 bytes")
	// ErrInvalidEmail is returned for a blank email.
	ErrInvalidEmail = errors.New("auth: email required")
	// ErrInvalidCredentials represents login failure. It never tells which part was wrong.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrNotAuthenticated is returned by operations that need a session when there is none.
	ErrNotAuthenticated = errors.New("auth: not authenticated")
	// ErrUnknownStation is returned for station ids missing from the catalog.
	ErrUnknownStation = errors.New("stations: unknown station")
)

// outcome maps an operation result to a metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrWeakPassword):
		return "weak_password"
	case errors.Is(err, ErrPasswordTooLong):
		return "password_too_long"
	case errors.Is(err, ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrNotAuthenticated):
		return "not_authenticated"
	case errors.Is(err, storage.ErrUnavailable):
		return "storage_unavailable"
	default:
		return "error"
	}
}
