package service

import "errors"

// Sentinel errors surfaced to the HTTP boundary, where they are translated
// into status codes. Messages are user-safe.
var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrInvalidRole      = errors.New("role must be either Imam or Parent")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")

	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
)
