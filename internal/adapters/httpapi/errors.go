package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Campus-Club-Council/club-portal-api/internal/app/accounts"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/clubs"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/events"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/reviews"
)

// ErrorResponse is the wire envelope for every API error.
type ErrorResponse struct {
	Error struct {
		Code      string         `json:"code"`
		Message   string         `json:"message"`
		Details   map[string]any `json:"details,omitempty"`
		RequestID string         `json:"requestId,omitempty"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, message string, details map[string]any) {
	var er ErrorResponse
	er.Error.Code = code
	er.Error.Message = message
	er.Error.Details = details
	er.Error.RequestID = middleware.GetReqID(r.Context())

	writeJSON(w, status, er)
}

// writeAppError maps an application-layer error onto the envelope. Anything
// that is not a typed app error becomes an opaque 500.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		accErr    *accounts.Error
		clubErr   *clubs.Error
		eventErr  *events.Error
		reviewErr *reviews.Error
	)
	switch {
	case errors.As(err, &accErr):
		writeError(w, r, accErr.Status, accErr.Code, accErr.Message, accErr.Details)
	case errors.As(err, &clubErr):
		writeError(w, r, clubErr.Status, clubErr.Code, clubErr.Message, clubErr.Details)
	case errors.As(err, &eventErr):
		writeError(w, r, eventErr.Status, eventErr.Code, eventErr.Message, eventErr.Details)
	case errors.As(err, &reviewErr):
		writeError(w, r, reviewErr.Status, reviewErr.Code, reviewErr.Message, reviewErr.Details)
	default:
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
