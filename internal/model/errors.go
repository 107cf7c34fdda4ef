package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors. Malformed, forged, expired and subject-less
	// tokens all collapse into ErrInvalidToken so callers cannot tell
	// them apart.
	ErrInvalidToken = errors.New("invalid token")

	// Blog related errors
	ErrBlogNotFound = errors.New("blog not found")
	ErrForbidden    = errors.New("forbidden")

	// Generic errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidInput    = errors.New("invalid input")
)
