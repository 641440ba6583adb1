package services

import "errors"

// Sentinel errors returned by the services. Handlers map them onto HTTP
// status codes with errors.Is.
var (
	// ErrEmailRegistered and ErrUsernameTaken are registration conflicts.
	ErrEmailRegistered = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; the two cases are deliberately not distinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotConfirmed rejects a login before the confirmation flow ran.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrInvalidToken covers malformed, tampered and expired tokens alike.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUserNotFound means the token or email resolved to no known user.
	ErrUserNotFound = errors.New("user not found")
)
