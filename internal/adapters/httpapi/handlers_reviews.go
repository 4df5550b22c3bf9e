package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Campus-Club-Council/club-portal-api/internal/app/reviews"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

type reviewResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	Club      string    `json:"club"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewResponse(r domain.Review) reviewResponse {
	return reviewResponse{
		ID:        string(r.ID),
		Name:      r.ReviewerName,
		Rating:    r.Rating,
		Review:    r.Text,
		Club:      r.ClubName,
		CreatedAt: r.CreatedAt,
	}
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	out, err := s.reviews.ListReviews(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	resp := make([]reviewResponse, 0, len(out))
	for _, rv := range out {
		resp = append(resp, toReviewResponse(rv))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createReviewRequest struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
	Club   string `json:"club"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var body createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}

	// The route requires authentication, so a session is always present.
	name := body.Name
	if strings.TrimSpace(name) == "" {
		name = SessionFromContext(r.Context()).Username
	}

	rv, err := s.reviews.CreateReview(r.Context(), reviews.CreateReviewInput{
		ReviewerName: name,
		Rating:       body.Rating,
		Text:         body.Review,
		ClubName:     body.Club,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewResponse(rv))
}
