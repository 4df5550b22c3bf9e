package clubrepo

import "errors"

var (
	// ErrNotFound indicates the requested club does not exist.
	ErrNotFound = errors.New("club not found")

	// ErrAlreadyExists indicates a club already exists with the provided ID.
	ErrAlreadyExists = errors.New("club already exists")
)
