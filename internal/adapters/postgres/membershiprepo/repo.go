package membershiprepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/membershiprepo"
)

// Repo is a Postgres implementation of membershiprepo.Repository. Add and
// Remove are single statements, so the relation never needs a dual write.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Add(ctx context.Context, m membershiprepo.Membership) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(m.UserID))
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO memberships (user_id, club_id, joined_at)
		VALUES ($1, $2, $3)
	`, uid, int64(m.ClubID), m.JoinedAt.UTC())
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return membershiprepo.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, userID domain.UserID, clubID domain.ClubID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(userID))
	if err != nil {
		return membershiprepo.ErrNotMember
	}

	ct, err := r.pool.Exec(ctx, `
		DELETE FROM memberships
		WHERE user_id = $1 AND club_id = $2
	`, uid, int64(clubID))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return membershiprepo.ErrNotMember
	}
	return nil
}

func (r *Repo) ListClubIDsByUser(ctx context.Context, userID domain.UserID) ([]domain.ClubID, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(userID))
	if err != nil {
		return []domain.ClubID{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT club_id
		FROM memberships
		WHERE user_id = $1
		ORDER BY club_id ASC
	`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ClubID, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, domain.ClubID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListUserIDsByClub(ctx context.Context, clubID domain.ClubID) ([]domain.UserID, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT user_id
		FROM memberships
		WHERE club_id = $1
		ORDER BY user_id ASC
	`, int64(clubID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.UserID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, domain.UserID(id.String()))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) CountByClub(ctx context.Context, clubID domain.ClubID) (int, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM memberships WHERE club_id = $1
	`, int64(clubID)).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
