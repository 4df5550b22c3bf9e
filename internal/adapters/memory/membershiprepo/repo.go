package membershiprepo

import (
	"context"
	"sort"
	"sync"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/membershiprepo"
)

type pair struct {
	userID domain.UserID
	clubID domain.ClubID
}

// Repo is an in-memory implementation of membershiprepo.Repository.
// It keeps one map keyed by (user, club); both list directions are scans
// over it. It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	byPair map[pair]membershiprepo.Membership
}

func NewRepo() *Repo {
	return &Repo{byPair: make(map[pair]membershiprepo.Membership)}
}

func (r *Repo) Add(ctx context.Context, m membershiprepo.Membership) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{userID: m.UserID, clubID: m.ClubID}
	if _, ok := r.byPair[k]; ok {
		return membershiprepo.ErrAlreadyMember
	}
	r.byPair[k] = m
	return nil
}

func (r *Repo) Remove(ctx context.Context, userID domain.UserID, clubID domain.ClubID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{userID: userID, clubID: clubID}
	if _, ok := r.byPair[k]; !ok {
		return membershiprepo.ErrNotMember
	}
	delete(r.byPair, k)
	return nil
}

func (r *Repo) ListClubIDsByUser(ctx context.Context, userID domain.UserID) ([]domain.ClubID, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ClubID, 0)
	for k := range r.byPair {
		if k.userID == userID {
			out = append(out, k.clubID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *Repo) ListUserIDsByClub(ctx context.Context, clubID domain.ClubID) ([]domain.UserID, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.UserID, 0)
	for k := range r.byPair {
		if k.clubID == clubID {
			out = append(out, k.userID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *Repo) CountByClub(ctx context.Context, clubID domain.ClubID) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for k := range r.byPair {
		if k.clubID == clubID {
			n++
		}
	}
	return n, nil
}
