package auth

import "errors"

var (
	// ErrSessionExpired means the token was once valid but has expired.
	// Callers surface this distinctly so the user is told to re-authenticate.
	ErrSessionExpired = errors.New("auth: session expired")
	// ErrInvalidToken covers malformed or tampered tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrInvalidCredentials covers failed email/password login attempts.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)
