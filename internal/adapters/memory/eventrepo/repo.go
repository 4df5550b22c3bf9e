package eventrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/eventrepo"
)

// Repo is an in-memory implementation of eventrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.EventID]eventrepo.Event
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.EventID]eventrepo.Event)}
}

func (r *Repo) Create(ctx context.Context, e eventrepo.Event) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.ID]; ok {
		return eventrepo.ErrAlreadyExists
	}
	r.byID[e.ID] = e
	return nil
}

func (r *Repo) Update(ctx context.Context, e eventrepo.Event) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.ID]; !ok {
		return eventrepo.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.EventID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return eventrepo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.EventID) (eventrepo.Event, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	if !ok {
		return eventrepo.Event{}, eventrepo.ErrNotFound
	}
	return e, nil
}

func (r *Repo) Search(ctx context.Context, query string, clubID *domain.ClubID) ([]eventrepo.Event, error) {
	_ = ctx
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]eventrepo.Event, 0, len(r.byID))
	for _, e := range r.byID {
		if clubID != nil && e.ClubID != *clubID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
