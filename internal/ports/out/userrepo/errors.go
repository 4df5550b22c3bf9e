package userrepo

import "errors"

var (
	// ErrNotFound indicates the requested identity does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates an identity already exists with the provided username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrAlreadyExists indicates an identity already exists with the provided ID.
	ErrAlreadyExists = errors.New("user already exists")
)
