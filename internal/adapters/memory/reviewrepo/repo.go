package reviewrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/reviewrepo"
)

// Repo is an in-memory implementation of reviewrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu  sync.RWMutex
	all []reviewrepo.Review
}

func NewRepo() *Repo {
	return &Repo{}
}

func (r *Repo) Create(ctx context.Context, rev reviewrepo.Review) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, rev)
	return nil
}

func (r *Repo) List(ctx context.Context) ([]reviewrepo.Review, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reviewrepo.Review, len(r.all))
	copy(out, r.all)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
