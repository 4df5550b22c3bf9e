package reviews_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	memreviewrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/reviewrepo"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/reviews"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	platclock "github.com/Campus-Club-Council/club-portal-api/internal/platform/clock"
)

func newTestService() (*reviews.Service, *platclock.ManualClock) {
	clk := platclock.NewManualClock(time.Unix(7000, 0).UTC())
	svc := reviews.NewService(memreviewrepo.NewRepo(), clk)
	n := 0
	svc.SetNewReviewIDForTest(func() domain.ReviewID {
		n++
		return domain.ReviewID(fmt.Sprintf("r-%d", n))
	})
	return svc, clk
}

func TestService_CreateReview(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	got, err := svc.CreateReview(context.Background(), reviews.CreateReviewInput{
		ReviewerName: "  Avi   Katz ",
		Rating:       5,
		Text:         " Great community ",
		ClubName:     "Art Society",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if got.ID != "r-1" || got.ReviewerName != "Avi Katz" || got.Text != "Great community" {
		t.Fatalf("got=%+v", got)
	}
	if !got.CreatedAt.Equal(time.Unix(7000, 0).UTC()) {
		t.Fatalf("createdAt=%v", got.CreatedAt)
	}
}

func TestService_CreateReview_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	cases := []struct {
		name string
		in   reviews.CreateReviewInput
	}{
		{"missing name", reviews.CreateReviewInput{Rating: 3, Text: "x", ClubName: "c"}},
		{"missing text", reviews.CreateReviewInput{ReviewerName: "A", Rating: 3, ClubName: "c"}},
		{"missing club", reviews.CreateReviewInput{ReviewerName: "A", Rating: 3, Text: "x"}},
		{"rating too low", reviews.CreateReviewInput{ReviewerName: "A", Rating: 0, Text: "x", ClubName: "c"}},
		{"rating too high", reviews.CreateReviewInput{ReviewerName: "A", Rating: 6, Text: "x", ClubName: "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateReview(context.Background(), tc.in)
			var ae *reviews.Error
			if !errors.As(err, &ae) || ae.Status != 422 || ae.Code != "VALIDATION_ERROR" {
				t.Fatalf("err=%v", err)
			}
		})
	}
}

func TestService_ListReviews_NewestFirst(t *testing.T) {
	t.Parallel()
	svc, clk := newTestService()

	for i, name := range []string{"Avi", "Bea", "Cat"} {
		_, err := svc.CreateReview(context.Background(), reviews.CreateReviewInput{
			ReviewerName: name,
			Rating:       i + 1,
			Text:         "review " + name,
			ClubName:     "Chess Club",
		})
		if err != nil {
			t.Fatalf("CreateReview %s: %v", name, err)
		}
		clk.Advance(time.Minute)
	}

	out, err := svc.ListReviews(context.Background())
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(out) != 3 || out[0].ReviewerName != "Cat" || out[2].ReviewerName != "Avi" {
		t.Fatalf("out=%+v", out)
	}
}
