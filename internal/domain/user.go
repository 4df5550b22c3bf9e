package domain

import "time"

// LoginRecord is one append-only login-history entry.
type LoginRecord struct {
	At        time.Time
	UserAgent string
}

// Identity is the domain representation of a registered user (student or admin).
// The password hash is a persistence concern and deliberately does not appear here.
type Identity struct {
	ID       UserID
	Username string
	Role     Role

	// Photo is the stored path of the profile photo; nil means none was uploaded.
	Photo *string

	CreatedAt    time.Time
	LoginHistory []LoginRecord
}
