package auth

import "errors"

// Authentication failure taxonomy. Handlers map these to HTTP statuses; the
// messages are intentionally coarse so callers cannot probe which check failed.
var (
	// ErrInvalidCredentials covers both unknown username and wrong password to
	// avoid username enumeration.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrAccountInactive is surfaced only after the credentials or token checked out.
	ErrAccountInactive = errors.New("inactive user")

	// ErrInvalidToken covers malformed, expired, mis-signed and wrong-kind tokens.
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrForbidden means a valid identity lacks the required role.
	ErrForbidden = errors.New("forbidden")
)
