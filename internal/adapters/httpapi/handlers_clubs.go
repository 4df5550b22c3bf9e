package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/nullable"

	"github.com/Campus-Club-Council/club-portal-api/internal/app/clubs"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

type clubResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Photo       string `json:"photo,omitempty"`
}

type clubSummaryResponse struct {
	clubResponse
	MemberCount int `json:"memberCount"`
}

type memberResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type clubDetailsResponse struct {
	clubResponse
	Members     []memberResponse `json:"members"`
	MemberCount int              `json:"memberCount"`
}

func toClubResponse(c domain.Club) clubResponse {
	return clubResponse{
		ID:          int64(c.ID),
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		Photo:       c.Photo,
	}
}

func (s *Server) handleSearchClubs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := s.clubs.SearchClubs(r.Context(), q.Get("search"), domain.SortOrder(q.Get("sort")))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	resp := make([]clubSummaryResponse, 0, len(out))
	for _, c := range out {
		resp = append(resp, clubSummaryResponse{
			clubResponse: toClubResponse(c.Club),
			MemberCount:  c.MemberCount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetClub(w http.ResponseWriter, r *http.Request) {
	id, ok := clubIDParam(w, r)
	if !ok {
		return
	}
	d, err := s.clubs.GetClub(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	resp := clubDetailsResponse{
		clubResponse: toClubResponse(d.Club),
		Members:      make([]memberResponse, 0, len(d.Members)),
		MemberCount:  d.MemberCount,
	}
	for _, m := range d.Members {
		resp.Members = append(resp.Members, memberResponse{ID: string(m.UserID), Username: m.Username})
	}
	writeJSON(w, http.StatusOK, resp)
}

type createClubRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
}

func (s *Server) handleCreateClub(w http.ResponseWriter, r *http.Request) {
	var body createClubRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}

	c, err := s.clubs.CreateClub(r.Context(), clubs.CreateClubInput{
		ID:          body.ID,
		Name:        body.Name,
		Category:    body.Category,
		Description: body.Description,
		Photo:       body.Photo,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toClubResponse(c))
}

// updateClubRequest distinguishes omitted fields from explicit nulls, so a
// PUT can clear the photo without touching anything else.
type updateClubRequest struct {
	Name        nullable.Nullable[string] `json:"name"`
	Category    nullable.Nullable[string] `json:"category"`
	Description nullable.Nullable[string] `json:"description"`
	Photo       nullable.Nullable[string] `json:"photo"`
}

func toOptional(n nullable.Nullable[string]) clubs.Optional[string] {
	switch {
	case !n.IsSpecified():
		return clubs.Unspecified[string]()
	case n.IsNull():
		return clubs.Null[string]()
	default:
		return clubs.Some(n.MustGet())
	}
}

func (s *Server) handleUpdateClub(w http.ResponseWriter, r *http.Request) {
	id, ok := clubIDParam(w, r)
	if !ok {
		return
	}
	var body updateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}

	c, err := s.clubs.UpdateClub(r.Context(), id, clubs.UpdateClubInput{
		Name:        toOptional(body.Name),
		Category:    toOptional(body.Category),
		Description: toOptional(body.Description),
		Photo:       toOptional(body.Photo),
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clubSummaryResponse{
		clubResponse: toClubResponse(c.Club),
		MemberCount:  c.MemberCount,
	})
}

func (s *Server) handleJoinClub(w http.ResponseWriter, r *http.Request) {
	s.membershipChange(w, r, s.clubs.Join)
}

func (s *Server) handleLeaveClub(w http.ResponseWriter, r *http.Request) {
	s.membershipChange(w, r, s.clubs.Leave)
}

func (s *Server) membershipChange(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID domain.UserID, clubID domain.ClubID) error,
) {
	id, ok := clubIDParam(w, r)
	if !ok {
		return
	}
	sess := SessionFromContext(r.Context())

	if err := op(r.Context(), sess.UserID, id); err != nil {
		writeAppError(w, r, err)
		return
	}
	n, err := s.clubs.MemberCount(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"memberCount": n})
}

func clubIDParam(w http.ResponseWriter, r *http.Request) (domain.ClubID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "clubID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "club not found", nil)
		return 0, false
	}
	return domain.ClubID(id), true
}
