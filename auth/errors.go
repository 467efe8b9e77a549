package auth

import "errors"

var (
	// ErrSigning means token issuance cannot proceed (missing secret or
	// signing failure). This is a configuration problem, not a client one.
	ErrSigning = errors.New("token signing failed")

	// ErrInvalidToken covers malformed, unsigned and tampered credentials.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken covers well-formed credentials past their expiry.
	ErrExpiredToken = errors.New("token expired")

	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")

	ErrUserNotFound   = errors.New("user not found")
	ErrNoResetPending = errors.New("no password reset pending")
	ErrTokenMismatch  = errors.New("reset token mismatch")
	ErrTokenExpired   = errors.New("reset token expired")
)
