package reviewrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/reviewrepo"
)

// Repo is a Postgres implementation of reviewrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, rev reviewrepo.Review) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reviews (id, reviewer_name, rating, text, club_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		string(rev.ID),
		rev.ReviewerName,
		rev.Rating,
		rev.Text,
		rev.ClubName,
		rev.CreatedAt.UTC(),
	)
	return err
}

func (r *Repo) List(ctx context.Context) ([]reviewrepo.Review, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, reviewer_name, rating, text, club_name, created_at
		FROM reviews
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reviewrepo.Review, 0)
	for rows.Next() {
		var (
			id, reviewerName, text, clubName string
			rating                           int
			createdAt                        time.Time
		)
		if err := rows.Scan(&id, &reviewerName, &rating, &text, &clubName, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, reviewrepo.Review{
			ID:           domain.ReviewID(id),
			ReviewerName: reviewerName,
			Rating:       rating,
			Text:         text,
			ClubName:     clubName,
			CreatedAt:    createdAt.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
