package userrepo

import (
	"context"
	"sync"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/userrepo"
)

// Repo is an in-memory implementation of userrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID         map[domain.UserID]userrepo.User
	idByUsername map[string]domain.UserID
}

func NewRepo() *Repo {
	return &Repo{
		byID:         make(map[domain.UserID]userrepo.User),
		idByUsername: make(map[string]domain.UserID),
	}
}

func (r *Repo) Create(ctx context.Context, u userrepo.User) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.ID]; ok {
		return userrepo.ErrAlreadyExists
	}
	if _, ok := r.idByUsername[u.Username]; ok {
		return userrepo.ErrUsernameTaken
	}

	r.byID[u.ID] = cloneUser(u)
	r.idByUsername[u.Username] = u.ID
	return nil
}

func (r *Repo) Update(ctx context.Context, u userrepo.User) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[u.ID]
	if !ok {
		return userrepo.ErrNotFound
	}
	if existing.Username != u.Username {
		if _, taken := r.idByUsername[u.Username]; taken {
			return userrepo.ErrUsernameTaken
		}
		delete(r.idByUsername, existing.Username)
		r.idByUsername[u.Username] = u.ID
	}

	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (userrepo.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (userrepo.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idByUsername[username]
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	u, ok := r.byID[id]
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *Repo) AppendLoginRecord(ctx context.Context, id domain.UserID, rec domain.LoginRecord) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return userrepo.ErrNotFound
	}
	u.LoginHistory = append(u.LoginHistory, rec)
	r.byID[id] = u
	return nil
}

func cloneUser(u userrepo.User) userrepo.User {
	out := u
	if u.Photo != nil {
		v := *u.Photo
		out.Photo = &v
	}
	out.LoginHistory = make([]domain.LoginRecord, len(u.LoginHistory))
	copy(out.LoginHistory, u.LoginHistory)
	return out
}
