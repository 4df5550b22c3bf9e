package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

// NewRouter wires the full HTTP surface: pages, form flows, the JSON API and
// the static file mounts. Route decoding stays here; semantics live in the
// application services.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.loadSession)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages.
	r.Get("/", s.servePage("home.html"))
	r.Get("/home", s.servePage("home.html"))
	r.Get("/clubs", s.servePage("clubs.html"))
	r.Get("/events", s.servePage("events.html"))
	r.Get("/clubdetails", s.servePage("clubdetails.html"))
	r.Get("/signInPage", s.servePage("signIn.html"))
	r.Get("/registerPage", s.servePage("register.html"))
	r.With(requirePage(domain.RequireStudent)).Get("/studentHome", s.servePage("studentHome.html"))
	r.With(requirePage(domain.RequireAdmin)).Get("/adminHome", s.servePage("adminHome.html"))

	// Form flows.
	r.Post("/registerPage", s.handleRegister)
	r.Post("/studentSignIn", s.handleStudentSignIn)
	r.Post("/adminSignIn", s.handleAdminSignIn)
	r.Get("/signOut", s.handleSignOut)

	// JSON API.
	r.Route("/api", func(r chi.Router) {
		r.With(requireAPI(domain.RequireAuthenticated)).Get("/user", s.handleCurrentUser)

		r.Route("/clubs", func(r chi.Router) {
			r.Get("/", s.handleSearchClubs)
			r.Get("/{clubID}", s.handleGetClub)
			r.With(requireAPI(domain.RequireAdmin)).Post("/", s.handleCreateClub)
			r.With(requireAPI(domain.RequireAdmin)).Put("/{clubID}", s.handleUpdateClub)
			r.With(requireAPI(domain.RequireAuthenticated)).Post("/{clubID}/join", s.handleJoinClub)
			r.With(requireAPI(domain.RequireAuthenticated)).Post("/{clubID}/leave", s.handleLeaveClub)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", s.handleListEvents)
			r.Get("/{eventID}", s.handleGetEvent)
			r.With(requireAPI(domain.RequireAdmin)).Post("/", s.handleCreateEvent)
			r.With(requireAPI(domain.RequireAdmin)).Put("/{eventID}", s.handleUpdateEvent)
			r.With(requireAPI(domain.RequireAdmin)).Delete("/{eventID}", s.handleDeleteEvent)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.handleListReviews)
			r.With(requireAPI(domain.RequireAuthenticated)).Post("/", s.handleCreateReview)
		})
	})

	// Static mounts.
	if s.publicDir != "" {
		fs := http.StripPrefix("/public/", http.FileServer(http.Dir(s.publicDir)))
		r.Get("/public/*", fs.ServeHTTP)
	}
	if s.uploads != nil {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploads.Dir())))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}

func (s *Server) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(s.viewsDir, name))
	}
}
