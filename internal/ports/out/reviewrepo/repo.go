package reviewrepo

import (
	"context"
	"time"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

// Review is the persistence shape of a review record.
type Review struct {
	ID           domain.ReviewID
	ReviewerName string
	Rating       int
	Text         string
	ClubName     string
	CreatedAt    time.Time
}

// Repository provides access to persisted reviews.
type Repository interface {
	Create(ctx context.Context, r Review) error

	// List returns all reviews, newest first (CreatedAt descending, ID ascending
	// as tiebreaker).
	List(ctx context.Context) ([]Review, error)
}
