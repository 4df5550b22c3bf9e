package eventrepo

import (
	"context"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

// Event is the persistence shape of an event record.
type Event struct {
	ID          domain.EventID
	Name        string
	Date        string
	Time        string
	Location    string
	Description string
	ClubID      domain.ClubID
}

// Repository provides access to persisted events.
//
// Search results are ordered by event ID ascending.
type Repository interface {
	Create(ctx context.Context, e Event) error
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, id domain.EventID) error

	GetByID(ctx context.Context, id domain.EventID) (Event, error)

	// Search returns events whose name contains the query, case-insensitively,
	// optionally restricted to one owning club. An empty query matches all.
	Search(ctx context.Context, query string, clubID *domain.ClubID) ([]Event, error)
}
