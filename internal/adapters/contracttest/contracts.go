// Package contracttest holds behavioral contracts every repository
// implementation must satisfy, regardless of backend.
package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	clubrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/clubrepo"
	eventrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/eventrepo"
	membershiprepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/membershiprepo"
	reviewrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/reviewrepo"
	userrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/userrepo"
)

type CleanupFunc = func()

type UserRepoFactory func(t *testing.T) (userrepoport.Repository, CleanupFunc)
type ClubRepoFactory func(t *testing.T) (clubrepoport.Repository, CleanupFunc)
type MembershipRepoFactory func(t *testing.T) (membershiprepoport.Repository, CleanupFunc)
type EventRepoFactory func(t *testing.T) (eventrepoport.Repository, CleanupFunc)
type ReviewRepoFactory func(t *testing.T) (reviewrepoport.Repository, CleanupFunc)

func RunUserRepo(t *testing.T, newRepo UserRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	aID := domain.UserID(uuid.NewString())
	if err := repo.Create(ctx, userrepoport.User{
		ID:           aID,
		Username:     "alice",
		PasswordHash: "digest-a",
		Role:         domain.RoleStudent,
		CreatedAt:    now,
	}); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	got, err := repo.GetByID(ctx, aID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Username != "alice" || got.Role != domain.RoleStudent {
		t.Fatalf("unexpected record: %+v", got)
	}
	if _, err := repo.GetByUsername(ctx, "alice"); err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}

	// Username uniqueness.
	err = repo.Create(ctx, userrepoport.User{
		ID:           domain.UserID(uuid.NewString()),
		Username:     "alice",
		PasswordHash: "digest-b",
		Role:         domain.RoleStudent,
		CreatedAt:    now,
	})
	if !errors.Is(err, userrepoport.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// Update persists the new state.
	got.PasswordHash = "digest-a2"
	photo := "/uploads/1.png"
	got.Photo = &photo
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername after update: %v", err)
	}
	if got.PasswordHash != "digest-a2" || got.Photo == nil || *got.Photo != photo {
		t.Fatalf("update not persisted: %+v", got)
	}

	// Login history is append-only and ordered.
	r1 := domain.LoginRecord{At: now, UserAgent: "ua-1"}
	r2 := domain.LoginRecord{At: now.Add(time.Minute), UserAgent: "ua-2"}
	if err := repo.AppendLoginRecord(ctx, aID, r1); err != nil {
		t.Fatalf("AppendLoginRecord 1: %v", err)
	}
	if err := repo.AppendLoginRecord(ctx, aID, r2); err != nil {
		t.Fatalf("AppendLoginRecord 2: %v", err)
	}
	got, err = repo.GetByID(ctx, aID)
	if err != nil {
		t.Fatalf("GetByID after history: %v", err)
	}
	if len(got.LoginHistory) != 2 ||
		!got.LoginHistory[0].At.Equal(r1.At) || got.LoginHistory[0].UserAgent != "ua-1" ||
		!got.LoginHistory[1].At.Equal(r2.At) || got.LoginHistory[1].UserAgent != "ua-2" {
		t.Fatalf("unexpected history: %+v", got.LoginHistory)
	}

	// Misses map to ErrNotFound.
	if _, err := repo.GetByID(ctx, domain.UserID(uuid.NewString())); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound by ID, got %v", err)
	}
	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound by username, got %v", err)
	}
	if err := repo.Update(ctx, userrepoport.User{ID: domain.UserID(uuid.NewString()), Username: "ghost"}); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := repo.AppendLoginRecord(ctx, domain.UserID(uuid.NewString()), r1); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on history append, got %v", err)
	}
}

func RunClubRepo(t *testing.T, newRepo ClubRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	seed := []clubrepoport.Club{
		{ID: 1, Name: "Chess Club", Category: "Games", Description: "Openings and endgames"},
		{ID: 2, Name: "Art Society", Category: "Arts", Description: "Weekly studio sessions"},
		{ID: 3, Name: "chess boxing", Category: "Sport", Description: "Rounds alternate"},
	}
	for _, c := range seed {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create %d: %v", c.ID, err)
		}
	}

	// ID uniqueness.
	err := repo.Create(ctx, clubrepoport.Club{ID: 1, Name: "Other", Category: "x", Description: "y"})
	if !errors.Is(err, clubrepoport.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Art Society" {
		t.Fatalf("unexpected club: %+v", got)
	}

	// Case-insensitive substring search, ascending name order.
	cs, err := repo.Search(ctx, "chess", domain.SortAsc)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(cs) != 2 || cs[0].Name != "chess boxing" || cs[1].Name != "Chess Club" {
		t.Fatalf("unexpected asc search result: %+v", cs)
	}
	cs, err = repo.Search(ctx, "chess", domain.SortDesc)
	if err != nil {
		t.Fatalf("Search desc: %v", err)
	}
	if len(cs) != 2 || cs[0].Name != "Chess Club" || cs[1].Name != "chess boxing" {
		t.Fatalf("unexpected desc search result: %+v", cs)
	}

	// Empty query matches everything.
	cs, err = repo.Search(ctx, "", domain.SortAsc)
	if err != nil {
		t.Fatalf("Search empty: %v", err)
	}
	if len(cs) != 3 {
		t.Fatalf("expected 3 clubs, got %d", len(cs))
	}

	// Pattern metacharacters in the query are literal text.
	if err := repo.Create(ctx, clubrepoport.Club{ID: 4, Name: "100% Hiking", Category: "Outdoors", Description: "Trails"}); err != nil {
		t.Fatalf("Create 4: %v", err)
	}
	cs, err = repo.Search(ctx, "0%", domain.SortAsc)
	if err != nil {
		t.Fatalf("Search metacharacter: %v", err)
	}
	if len(cs) != 1 || cs[0].Name != "100% Hiking" {
		t.Fatalf("unexpected metacharacter search result: %+v", cs)
	}
	cs, err = repo.Search(ctx, "_", domain.SortAsc)
	if err != nil {
		t.Fatalf("Search underscore: %v", err)
	}
	if len(cs) != 0 {
		t.Fatalf("underscore should match nothing, got: %+v", cs)
	}

	// Update persists.
	got.Description = "Studio plus gallery visits"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByID(ctx, 2)
	if err != nil || got.Description != "Studio plus gallery visits" {
		t.Fatalf("update not persisted: %+v err=%v", got, err)
	}

	// Misses map to ErrNotFound.
	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, clubrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, clubrepoport.Club{ID: 99, Name: "x", Category: "y", Description: "z"}); !errors.Is(err, clubrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func RunMembershipRepo(t *testing.T, newRepo MembershipRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(2000, 0).UTC()
	u1 := domain.UserID("00000000-0000-0000-0000-00000000000a")
	u2 := domain.UserID("00000000-0000-0000-0000-00000000000b")

	add := func(u domain.UserID, c domain.ClubID, at time.Time) {
		t.Helper()
		if err := repo.Add(ctx, membershiprepoport.Membership{UserID: u, ClubID: c, JoinedAt: at}); err != nil {
			t.Fatalf("Add (%s, %d): %v", u, c, err)
		}
	}
	add(u1, 1, now)
	add(u1, 2, now.Add(time.Minute))
	add(u2, 1, now.Add(2*time.Minute))

	// Duplicate pairs are rejected.
	err := repo.Add(ctx, membershiprepoport.Membership{UserID: u1, ClubID: 1, JoinedAt: now})
	if !errors.Is(err, membershiprepoport.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}

	// Both directions read the same relation.
	clubIDs, err := repo.ListClubIDsByUser(ctx, u1)
	if err != nil {
		t.Fatalf("ListClubIDsByUser: %v", err)
	}
	if len(clubIDs) != 2 || clubIDs[0] != 1 || clubIDs[1] != 2 {
		t.Fatalf("unexpected club IDs: %v", clubIDs)
	}
	userIDs, err := repo.ListUserIDsByClub(ctx, 1)
	if err != nil {
		t.Fatalf("ListUserIDsByClub: %v", err)
	}
	if len(userIDs) != 2 || userIDs[0] != u1 || userIDs[1] != u2 {
		t.Fatalf("unexpected user IDs: %v", userIDs)
	}
	n, err := repo.CountByClub(ctx, 1)
	if err != nil || n != 2 {
		t.Fatalf("CountByClub: n=%d err=%v", n, err)
	}

	// Remove deletes the pair from both directions at once.
	if err := repo.Remove(ctx, u1, 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := repo.Remove(ctx, u1, 1); !errors.Is(err, membershiprepoport.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
	clubIDs, err = repo.ListClubIDsByUser(ctx, u1)
	if err != nil || len(clubIDs) != 1 || clubIDs[0] != 2 {
		t.Fatalf("unexpected club IDs after remove: %v err=%v", clubIDs, err)
	}
	userIDs, err = repo.ListUserIDsByClub(ctx, 1)
	if err != nil || len(userIDs) != 1 || userIDs[0] != u2 {
		t.Fatalf("unexpected user IDs after remove: %v err=%v", userIDs, err)
	}
	n, err = repo.CountByClub(ctx, 1)
	if err != nil || n != 1 {
		t.Fatalf("CountByClub after remove: n=%d err=%v", n, err)
	}

	// Re-joining after leaving works.
	add(u1, 1, now.Add(3*time.Minute))
	n, err = repo.CountByClub(ctx, 1)
	if err != nil || n != 2 {
		t.Fatalf("CountByClub after rejoin: n=%d err=%v", n, err)
	}

	// Empty reads are empty, not errors.
	clubIDs, err = repo.ListClubIDsByUser(ctx, domain.UserID("00000000-0000-0000-0000-00000000000c"))
	if err != nil || len(clubIDs) != 0 {
		t.Fatalf("expected no clubs, got %v err=%v", clubIDs, err)
	}
	n, err = repo.CountByClub(ctx, 42)
	if err != nil || n != 0 {
		t.Fatalf("expected zero count, got n=%d err=%v", n, err)
	}
}

func RunEventRepo(t *testing.T, newRepo EventRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	seed := []eventrepoport.Event{
		{ID: 1, Name: "Spring Fair", Date: "2026-04-10", Time: "14:00", Location: "Main Hall", Description: "Stalls and demos", ClubID: 1},
		{ID: 2, Name: "Blitz Night", Date: "2026-04-12", Time: "18:30", Location: "Room 201", Description: "5+0 tournament", ClubID: 2},
		{ID: 3, Name: "spring cleanup", Date: "2026-04-20", Time: "09:00", Location: "Campus green", Description: "Volunteer morning", ClubID: 1},
	}
	for _, e := range seed {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create %d: %v", e.ID, err)
		}
	}

	err := repo.Create(ctx, eventrepoport.Event{ID: 1, Name: "Dup", Date: "d", Time: "t", Location: "l", Description: "x", ClubID: 1})
	if !errors.Is(err, eventrepoport.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := repo.GetByID(ctx, 2)
	if err != nil || got.Name != "Blitz Night" {
		t.Fatalf("GetByID: %+v err=%v", got, err)
	}

	// Case-insensitive substring search, ID ascending.
	es, err := repo.Search(ctx, "spring", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(es) != 2 || es[0].ID != 1 || es[1].ID != 3 {
		t.Fatalf("unexpected search result: %+v", es)
	}

	// Club filter composes with the query.
	club := domain.ClubID(1)
	es, err = repo.Search(ctx, "", &club)
	if err != nil {
		t.Fatalf("Search by club: %v", err)
	}
	if len(es) != 2 || es[0].ID != 1 || es[1].ID != 3 {
		t.Fatalf("unexpected club filter result: %+v", es)
	}

	got.Location = "Room 305"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByID(ctx, 2)
	if err != nil || got.Location != "Room 305" {
		t.Fatalf("update not persisted: %+v err=%v", got, err)
	}

	if err := repo.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, 2); !errors.Is(err, eventrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := repo.GetByID(ctx, 2); !errors.Is(err, eventrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Update(ctx, eventrepoport.Event{ID: 99, Name: "x", Date: "d", Time: "t", Location: "l", Description: "y", ClubID: 1}); !errors.Is(err, eventrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func RunReviewRepo(t *testing.T, newRepo ReviewRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(3000, 0).UTC()
	seed := []reviewrepoport.Review{
		{ID: "r-b", ReviewerName: "Bea", Rating: 4, Text: "Good sessions", ClubName: "Chess Club", CreatedAt: now.Add(time.Hour)},
		{ID: "r-a", ReviewerName: "Avi", Rating: 5, Text: "Great community", ClubName: "Art Society", CreatedAt: now},
		{ID: "r-c", ReviewerName: "Cat", Rating: 3, Text: "Crowded room", ClubName: "Chess Club", CreatedAt: now.Add(time.Hour)},
	}
	for _, r := range seed {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create %s: %v", r.ID, err)
		}
	}

	// Newest first; ID ascending breaks the tie.
	rs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rs) != 3 || rs[0].ID != "r-b" || rs[1].ID != "r-c" || rs[2].ID != "r-a" {
		t.Fatalf("unexpected order: %+v", rs)
	}
	if rs[0].Rating != 4 || rs[0].ReviewerName != "Bea" {
		t.Fatalf("unexpected record: %+v", rs[0])
	}
}
