package clubs

import (
	"context"
	"errors"
	"strings"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	clockport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/clock"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/clubrepo"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/membershiprepo"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/userrepo"
)

type Service struct {
	clubs       clubrepo.Repository
	users       userrepo.Repository
	memberships membershiprepo.Repository
	clk         clockport.Clock
}

func NewService(clubs clubrepo.Repository, users userrepo.Repository, memberships membershiprepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		clubs:       clubs,
		users:       users,
		memberships: memberships,
		clk:         clk,
	}
}

func (s *Service) CreateClub(ctx context.Context, in CreateClubInput) (domain.Club, error) {
	if in.ID <= 0 {
		return domain.Club{}, validationErr("clubID", "must be a positive integer")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Description) == "" {
		return domain.Club{}, validationErr("club", "name, category and description are required")
	}

	c := clubrepo.Club{
		ID:          domain.ClubID(in.ID),
		Name:        name,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Photo:       in.Photo,
	}
	if err := s.clubs.Create(ctx, c); err != nil {
		if errors.Is(err, clubrepo.ErrAlreadyExists) {
			return domain.Club{}, &Error{
				Status:  409,
				Code:    "ALREADY_EXISTS",
				Message: "club already exists",
			}
		}
		return domain.Club{}, err
	}
	return toDomain(c), nil
}

func (s *Service) UpdateClub(ctx context.Context, id domain.ClubID, in UpdateClubInput) (domain.ClubSummary, error) {
	c, err := s.clubs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clubrepo.ErrNotFound) {
			return domain.ClubSummary{}, clubNotFound()
		}
		return domain.ClubSummary{}, err
	}

	if in.Name.IsSpecified() {
		if in.Name.IsNull() || strings.TrimSpace(in.Name.Value()) == "" {
			return domain.ClubSummary{}, validationErr("clubName", "must be non-empty")
		}
		c.Name = strings.TrimSpace(in.Name.Value())
	}
	if in.Category.IsSpecified() {
		if in.Category.IsNull() || strings.TrimSpace(in.Category.Value()) == "" {
			return domain.ClubSummary{}, validationErr("category", "must be non-empty")
		}
		c.Category = strings.TrimSpace(in.Category.Value())
	}
	if in.Description.IsSpecified() {
		if in.Description.IsNull() || strings.TrimSpace(in.Description.Value()) == "" {
			return domain.ClubSummary{}, validationErr("description", "must be non-empty")
		}
		c.Description = strings.TrimSpace(in.Description.Value())
	}
	if in.Photo.IsSpecified() {
		if in.Photo.IsNull() {
			c.Photo = ""
		} else {
			c.Photo = in.Photo.Value()
		}
	}

	if err := s.clubs.Update(ctx, c); err != nil {
		if errors.Is(err, clubrepo.ErrNotFound) {
			return domain.ClubSummary{}, clubNotFound()
		}
		return domain.ClubSummary{}, err
	}

	n, err := s.memberships.CountByClub(ctx, id)
	if err != nil {
		return domain.ClubSummary{}, err
	}
	return domain.ClubSummary{Club: toDomain(c), MemberCount: n}, nil
}

// GetClub returns the club with its member usernames populated.
func (s *Service) GetClub(ctx context.Context, id domain.ClubID) (domain.ClubDetails, error) {
	c, err := s.clubs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clubrepo.ErrNotFound) {
			return domain.ClubDetails{}, clubNotFound()
		}
		return domain.ClubDetails{}, err
	}

	userIDs, err := s.memberships.ListUserIDsByClub(ctx, id)
	if err != nil {
		return domain.ClubDetails{}, err
	}
	members := make([]domain.MemberRef, 0, len(userIDs))
	for _, uid := range userIDs {
		u, err := s.users.GetByID(ctx, uid)
		if err != nil {
			if errors.Is(err, userrepo.ErrNotFound) {
				// Identity deleted out of band; skip rather than fail the read.
				continue
			}
			return domain.ClubDetails{}, err
		}
		members = append(members, domain.MemberRef{UserID: u.ID, Username: u.Username})
	}

	return domain.ClubDetails{
		Club:        toDomain(c),
		Members:     members,
		MemberCount: len(members),
	}, nil
}

// SearchClubs is the directory read: case-insensitive substring match on name
// plus ascending/descending name sort, each entry carrying its member count.
func (s *Service) SearchClubs(ctx context.Context, query string, order domain.SortOrder) ([]domain.ClubSummary, error) {
	if order != domain.SortDesc {
		order = domain.SortAsc
	}
	cs, err := s.clubs.Search(ctx, strings.TrimSpace(query), order)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ClubSummary, 0, len(cs))
	for _, c := range cs {
		n, err := s.memberships.CountByClub(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ClubSummary{Club: toDomain(c), MemberCount: n})
	}
	return out, nil
}

// Join adds the user to the club. It is deliberately not idempotent: joining
// twice fails with ALREADY_MEMBER so callers see the state transition.
func (s *Service) Join(ctx context.Context, userID domain.UserID, clubID domain.ClubID) error {
	if err := s.checkPair(ctx, userID, clubID); err != nil {
		return err
	}
	err := s.memberships.Add(ctx, membershiprepo.Membership{
		UserID:   userID,
		ClubID:   clubID,
		JoinedAt: s.clk.Now(),
	})
	if err != nil {
		if errors.Is(err, membershiprepo.ErrAlreadyMember) {
			return &Error{
				Status:  409,
				Code:    "ALREADY_MEMBER",
				Message: "already a member of this club",
			}
		}
		return err
	}
	return nil
}

// Leave removes the user from the club.
func (s *Service) Leave(ctx context.Context, userID domain.UserID, clubID domain.ClubID) error {
	if err := s.checkPair(ctx, userID, clubID); err != nil {
		return err
	}
	if err := s.memberships.Remove(ctx, userID, clubID); err != nil {
		if errors.Is(err, membershiprepo.ErrNotMember) {
			return &Error{
				Status:  409,
				Code:    "NOT_MEMBER",
				Message: "not a member of this club",
			}
		}
		return err
	}
	return nil
}

// MemberCount is derived from the relation; there is no stored counter to drift.
func (s *Service) MemberCount(ctx context.Context, clubID domain.ClubID) (int, error) {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, clubrepo.ErrNotFound) {
			return 0, clubNotFound()
		}
		return 0, err
	}
	return s.memberships.CountByClub(ctx, clubID)
}

// JoinedClubs returns the clubs a user has joined, the inverse direction of
// the same single-sourced relation.
func (s *Service) JoinedClubs(ctx context.Context, userID domain.UserID) ([]domain.Club, error) {
	ids, err := s.memberships.ListClubIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Club, 0, len(ids))
	for _, id := range ids {
		c, err := s.clubs.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, clubrepo.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, toDomain(c))
	}
	return out, nil
}

func (s *Service) checkPair(ctx context.Context, userID domain.UserID, clubID domain.ClubID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return &Error{Status: 404, Code: "NOT_FOUND", Message: "user not found"}
		}
		return err
	}
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, clubrepo.ErrNotFound) {
			return clubNotFound()
		}
		return err
	}
	return nil
}

func clubNotFound() *Error {
	return &Error{Status: 404, Code: "NOT_FOUND", Message: "club not found"}
}

func validationErr(field, msg string) *Error {
	return &Error{
		Status:  422,
		Code:    "VALIDATION_ERROR",
		Message: "invalid " + field,
		Details: map[string]any{field: msg},
	}
}

func toDomain(c clubrepo.Club) domain.Club {
	return domain.Club{
		ID:          c.ID,
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		Photo:       c.Photo,
	}
}
