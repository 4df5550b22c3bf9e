package reviews

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	clockport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/clock"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/reviewrepo"
)

type Service struct {
	repo reviewrepo.Repository
	clk  clockport.Clock

	newReviewID func() domain.ReviewID
}

func NewService(repo reviewrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newReviewID: func() domain.ReviewID {
			return domain.ReviewID(uuid.NewString())
		},
	}
}

// SetNewReviewIDForTest overrides ID generation for deterministic tests.
func (s *Service) SetNewReviewIDForTest(fn func() domain.ReviewID) { s.newReviewID = fn }

type CreateReviewInput struct {
	ReviewerName string
	Rating       int
	Text         string
	ClubName     string
}

func (s *Service) CreateReview(ctx context.Context, in CreateReviewInput) (domain.Review, error) {
	name := domain.NormalizeHumanName(in.ReviewerName)
	text := strings.TrimSpace(in.Text)
	clubName := strings.TrimSpace(in.ClubName)
	if name == "" || text == "" || clubName == "" {
		return domain.Review{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "name, review and club are required",
		}
	}
	if in.Rating < 1 || in.Rating > 5 {
		return domain.Review{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "rating must be between 1 and 5",
			Details: map[string]any{"rating": in.Rating},
		}
	}

	r := reviewrepo.Review{
		ID:           s.newReviewID(),
		ReviewerName: name,
		Rating:       in.Rating,
		Text:         text,
		ClubName:     clubName,
		CreatedAt:    s.clk.Now(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return domain.Review{}, err
	}
	return toDomain(r), nil
}

// ListReviews returns all reviews, newest first.
func (s *Service) ListReviews(ctx context.Context) ([]domain.Review, error) {
	rs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rs))
	for _, r := range rs {
		out = append(out, toDomain(r))
	}
	return out, nil
}

func toDomain(r reviewrepo.Review) domain.Review {
	return domain.Review{
		ID:           r.ID,
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Text:         r.Text,
		ClubName:     r.ClubName,
		CreatedAt:    r.CreatedAt,
	}
}
