package httpapi

import (
	"net/http"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

// loadSession decodes the session cookie once per request and stashes the
// result in the context. Downstream gates never touch the cookie themselves.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Current(r)
		if err != nil {
			sess = nil
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// requireAPI gates an API route on the authorization decision: 401 when
// signed out, 403 when signed in with the wrong role.
func requireAPI(required domain.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch domain.Authorize(SessionFromContext(r.Context()), required) {
			case domain.Allow:
				next.ServeHTTP(w, r)
			case domain.Unauthenticated:
				writeError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "sign in required", nil)
			default:
				writeError(w, r, http.StatusForbidden, "FORBIDDEN", "insufficient role", nil)
			}
		})
	}
}

// requirePage gates a page route; any non-Allow decision redirects to the
// sign-in page instead of rendering an error body.
func requirePage(required domain.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if domain.Authorize(SessionFromContext(r.Context()), required) != domain.Allow {
				http.Redirect(w, r, "/signInPage", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
