package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/nullable"

	"github.com/Campus-Club-Council/club-portal-api/internal/app/events"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

type eventResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ClubID      int64  `json:"clubId"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:          int64(e.ID),
		Name:        e.Name,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
		ClubID:      int64(e.ClubID),
	}
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var clubFilter *domain.ClubID
	if raw := q.Get("club"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "club must be an integer", nil)
			return
		}
		c := domain.ClubID(id)
		clubFilter = &c
	}

	out, err := s.events.ListEvents(r.Context(), q.Get("search"), clubFilter)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	resp := make([]eventResponse, 0, len(out))
	for _, e := range out {
		resp = append(resp, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	e, err := s.events.GetEvent(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(e))
}

type createEventRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ClubID      int64  `json:"clubId"`
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var body createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}

	e, err := s.events.CreateEvent(r.Context(), events.CreateEventInput{
		ID:          body.ID,
		Name:        body.Name,
		Date:        body.Date,
		Time:        body.Time,
		Location:    body.Location,
		Description: body.Description,
		ClubID:      body.ClubID,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(e))
}

type updateEventRequest struct {
	Name        nullable.Nullable[string] `json:"name"`
	Date        nullable.Nullable[string] `json:"date"`
	Time        nullable.Nullable[string] `json:"time"`
	Location    nullable.Nullable[string] `json:"location"`
	Description nullable.Nullable[string] `json:"description"`
}

func toEventOptional(n nullable.Nullable[string]) events.Optional[string] {
	switch {
	case !n.IsSpecified():
		return events.Unspecified[string]()
	case n.IsNull():
		return events.Null[string]()
	default:
		return events.Some(n.MustGet())
	}
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	var body updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}

	e, err := s.events.UpdateEvent(r.Context(), id, events.UpdateEventInput{
		Name:        toEventOptional(body.Name),
		Date:        toEventOptional(body.Date),
		Time:        toEventOptional(body.Time),
		Location:    toEventOptional(body.Location),
		Description: toEventOptional(body.Description),
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(e))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	if err := s.events.DeleteEvent(r.Context(), id); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func eventIDParam(w http.ResponseWriter, r *http.Request) (domain.EventID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "event not found", nil)
		return 0, false
	}
	return domain.EventID(id), true
}
