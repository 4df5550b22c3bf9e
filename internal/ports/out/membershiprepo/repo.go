package membershiprepo

import (
	"context"
	"time"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

// Membership is one (user, club) pair. The relation is single-sourced: this
// store is the only place the user↔club link exists, and both directions
// (a club's members, a user's joined clubs) are queries over it. Symmetry
// therefore holds by construction; there is no second copy to drift.
type Membership struct {
	UserID   domain.UserID
	ClubID   domain.ClubID
	JoinedAt time.Time
}

// Repository provides access to the membership relation.
//
// List results are ordered deterministically: club IDs ascending, user IDs
// ascending.
type Repository interface {
	// Add inserts the pair. Returns ErrAlreadyMember when it already exists.
	Add(ctx context.Context, m Membership) error

	// Remove deletes the pair. Returns ErrNotMember when it does not exist.
	Remove(ctx context.Context, userID domain.UserID, clubID domain.ClubID) error

	ListClubIDsByUser(ctx context.Context, userID domain.UserID) ([]domain.ClubID, error)
	ListUserIDsByClub(ctx context.Context, clubID domain.ClubID) ([]domain.UserID, error)

	// CountByClub is the club's member count, derived from the relation.
	CountByClub(ctx context.Context, clubID domain.ClubID) (int, error)
}
