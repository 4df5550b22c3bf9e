package eventrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/eventrepo"
)

// Repo is a Postgres implementation of eventrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, e eventrepo.Event) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO events (id, name, date, time, location, description, club_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, int64(e.ID), e.Name, e.Date, e.Time, e.Location, e.Description, int64(e.ClubID))
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return eventrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, e eventrepo.Event) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE events
		SET name = $2, date = $3, time = $4, location = $5, description = $6, club_id = $7
		WHERE id = $1
	`, int64(e.ID), e.Name, e.Date, e.Time, e.Location, e.Description, int64(e.ClubID))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return eventrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.EventID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return eventrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.EventID) (eventrepo.Event, error) {
	if r.pool == nil {
		return eventrepo.Event{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, date, time, location, description, club_id
		FROM events
		WHERE id = $1
	`, int64(id))
	return scanEvent(row)
}

func (r *Repo) Search(ctx context.Context, query string, clubID *domain.ClubID) ([]eventrepo.Event, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	var clubFilter *int64
	if clubID != nil {
		v := int64(*clubID)
		clubFilter = &v
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, date, time, location, description, club_id
		FROM events
		WHERE ($1 = '' OR position(lower($1) in lower(name)) > 0)
		  AND ($2::bigint IS NULL OR club_id = $2)
		ORDER BY id ASC
	`, query, clubFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]eventrepo.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanEvent(row pgx.Row) (eventrepo.Event, error) {
	var (
		id, clubID                            int64
		name, date, tm, location, description string
	)
	if err := row.Scan(&id, &name, &date, &tm, &location, &description, &clubID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return eventrepo.Event{}, eventrepo.ErrNotFound
		}
		return eventrepo.Event{}, err
	}
	return eventrepo.Event{
		ID:          domain.EventID(id),
		Name:        name,
		Date:        date,
		Time:        tm,
		Location:    location,
		Description: description,
		ClubID:      domain.ClubID(clubID),
	}, nil
}
