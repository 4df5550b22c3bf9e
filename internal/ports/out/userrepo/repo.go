package userrepo

import (
	"context"
	"time"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

// User is the persistence shape of an identity record.
//
// An empty PasswordHash marks a partially provisioned record: the username was
// reserved (for example by a roster import) but registration has not completed.
type User struct {
	ID       domain.UserID
	Username string
	// PasswordHash is the opaque digest produced by the hashing primitive.
	PasswordHash string
	Role         domain.Role
	// Photo is the stored upload path; nil means unset.
	Photo *string

	CreatedAt    time.Time
	LoginHistory []domain.LoginRecord
}

// Repository provides access to persisted identities.
type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error

	GetByID(ctx context.Context, id domain.UserID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)

	// AppendLoginRecord appends one entry to the identity's login history.
	// The history is append-only; entries are never rewritten.
	AppendLoginRecord(ctx context.Context, id domain.UserID, rec domain.LoginRecord) error
}
