package clubrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/clubrepo"
)

// Repo is an in-memory implementation of clubrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.ClubID]clubrepo.Club
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.ClubID]clubrepo.Club)}
}

func (r *Repo) Create(ctx context.Context, c clubrepo.Club) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; ok {
		return clubrepo.ErrAlreadyExists
	}
	r.byID[c.ID] = c
	return nil
}

func (r *Repo) Update(ctx context.Context, c clubrepo.Club) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return clubrepo.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ClubID) (clubrepo.Club, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return clubrepo.Club{}, clubrepo.ErrNotFound
	}
	return c, nil
}

func (r *Repo) Search(ctx context.Context, query string, order domain.SortOrder) ([]clubrepo.Club, error) {
	_ = ctx
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clubrepo.Club, 0, len(r.byID))
	for _, c := range r.byID {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	sortClubsByName(out, order)
	return out, nil
}

func sortClubsByName(cs []clubrepo.Club, order domain.SortOrder) {
	sort.Slice(cs, func(i, j int) bool {
		ni := strings.ToLower(cs[i].Name)
		nj := strings.ToLower(cs[j].Name)
		if ni == nj {
			return cs[i].ID < cs[j].ID
		}
		if order == domain.SortDesc {
			return ni > nj
		}
		return ni < nj
	})
}
