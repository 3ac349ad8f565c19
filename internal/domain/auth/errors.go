package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingDefaultRole = errors.New("default User role not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrRoleNotFound       = errors.New("role not found")
	ErrSessionsDisabled   = errors.New("session secret not configured")
)
