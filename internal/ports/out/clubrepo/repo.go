package clubrepo

import (
	"context"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

// Club is the persistence shape of a club record. The member set is not
// embedded here; it lives solely in the membership relation.
type Club struct {
	ID          domain.ClubID
	Name        string
	Category    string
	Description string
	Photo       string
}

// Repository provides access to persisted clubs.
//
// Search results are ordered by name in the requested order (case-insensitive),
// with ID as the tiebreaker, to keep behavior deterministic across backends.
type Repository interface {
	Create(ctx context.Context, c Club) error
	Update(ctx context.Context, c Club) error

	GetByID(ctx context.Context, id domain.ClubID) (Club, error)

	// Search returns clubs whose name contains the query, case-insensitively.
	// An empty query matches every club.
	Search(ctx context.Context, query string, order domain.SortOrder) ([]Club, error)
}
