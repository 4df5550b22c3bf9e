package clubrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/clubrepo"
)

// Repo is a Postgres implementation of clubrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, c clubrepo.Club) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clubs (id, name, category, description, photo)
		VALUES ($1, $2, $3, $4, $5)
	`, int64(c.ID), c.Name, c.Category, c.Description, c.Photo)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return clubrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, c clubrepo.Club) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE clubs
		SET name = $2, category = $3, description = $4, photo = $5
		WHERE id = $1
	`, int64(c.ID), c.Name, c.Category, c.Description, c.Photo)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return clubrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ClubID) (clubrepo.Club, error) {
	if r.pool == nil {
		return clubrepo.Club{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, category, description, photo
		FROM clubs
		WHERE id = $1
	`, int64(id))
	return scanClub(row)
}

func (r *Repo) Search(ctx context.Context, query string, order domain.SortOrder) ([]clubrepo.Club, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	dir := "ASC"
	if order == domain.SortDesc {
		dir = "DESC"
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, description, photo
		FROM clubs
		WHERE $1 = '' OR position(lower($1) in lower(name)) > 0
		ORDER BY lower(name) `+dir+`, id ASC
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clubrepo.Club, 0)
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanClub(row pgx.Row) (clubrepo.Club, error) {
	var (
		id                           int64
		name, category, descr, photo string
	)
	if err := row.Scan(&id, &name, &category, &descr, &photo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return clubrepo.Club{}, clubrepo.ErrNotFound
		}
		return clubrepo.Club{}, err
	}
	return clubrepo.Club{
		ID:          domain.ClubID(id),
		Name:        name,
		Category:    category,
		Description: descr,
		Photo:       photo,
	}, nil
}
