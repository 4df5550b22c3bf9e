package membershiprepo

import "errors"

var (
	// ErrAlreadyMember indicates the (user, club) pair already exists.
	ErrAlreadyMember = errors.New("already a member")

	// ErrNotMember indicates the (user, club) pair does not exist.
	ErrNotMember = errors.New("not a member")
)
