package userrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/userrepo"
)

// Repo is a Postgres implementation of userrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, u userrepo.User) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(u.ID))
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, role, photo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		id,
		u.Username,
		u.PasswordHash,
		u.Role.Discriminator(),
		u.Photo,
		u.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			switch pe.ConstraintName {
			case "users_username_unique":
				return userrepo.ErrUsernameTaken
			case "users_pkey":
				return userrepo.ErrAlreadyExists
			default:
				return err
			}
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, u userrepo.User) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(u.ID))
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $2,
		    password_hash = $3,
		    role = $4,
		    photo = $5
		WHERE id = $1
	`,
		id,
		u.Username,
		u.PasswordHash,
		u.Role.Discriminator(),
		u.Photo,
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return userrepo.ErrUsernameTaken
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return userrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (userrepo.User, error) {
	if r.pool == nil {
		return userrepo.User{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	return r.getUser(ctx, `WHERE id = $1`, uid)
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (userrepo.User, error) {
	if r.pool == nil {
		return userrepo.User{}, errors.New("nil postgres pool")
	}
	return r.getUser(ctx, `WHERE username = $1`, username)
}

func (r *Repo) AppendLoginRecord(ctx context.Context, id domain.UserID, rec domain.LoginRecord) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return userrepo.ErrNotFound
	}

	ct, err := r.pool.Exec(ctx, `
		INSERT INTO user_login_history (user_id, at, user_agent)
		SELECT id, $2, $3 FROM users WHERE id = $1
	`, uid, rec.At.UTC(), rec.UserAgent)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return userrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) getUser(ctx context.Context, where string, arg any) (userrepo.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, role, photo, created_at
		FROM users
		`+where, arg)

	var (
		id           uuid.UUID
		username     string
		passwordHash string
		roleDisc     int
		photo        *string
		createdAt    time.Time
	)
	if err := row.Scan(&id, &username, &passwordHash, &roleDisc, &photo, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return userrepo.User{}, userrepo.ErrNotFound
		}
		return userrepo.User{}, err
	}
	role, ok := domain.RoleFromDiscriminator(roleDisc)
	if !ok {
		return userrepo.User{}, fmt.Errorf("unknown role discriminator %d for user %s", roleDisc, id)
	}

	u := userrepo.User{
		ID:           domain.UserID(id.String()),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Photo:        photo,
		CreatedAt:    createdAt.UTC(),
	}

	rows, err := r.pool.Query(ctx, `
		SELECT at, user_agent
		FROM user_login_history
		WHERE user_id = $1
		ORDER BY id ASC
	`, id)
	if err != nil {
		return userrepo.User{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.LoginRecord
		if err := rows.Scan(&rec.At, &rec.UserAgent); err != nil {
			return userrepo.User{}, err
		}
		rec.At = rec.At.UTC()
		u.LoginHistory = append(u.LoginHistory, rec)
	}
	if err := rows.Err(); err != nil {
		return userrepo.User{}, err
	}
	return u, nil
}
