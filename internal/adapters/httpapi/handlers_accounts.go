package httpapi

import (
	"net/http"

	"github.com/Campus-Club-Council/club-portal-api/internal/app/accounts"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

const maxUploadBytes = 10 << 20

// handleRegister accepts the multipart registration form: userName, password,
// password2 and an optional photo.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed multipart form", nil)
		return
	}

	var photoPath *string
	if fhs := r.MultipartForm.File["photo"]; len(fhs) > 0 {
		p, err := s.uploads.Save(fhs[0])
		if err != nil {
			s.log.ErrorContext(r.Context(), "photo upload failed", "err", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL", "could not store photo", nil)
			return
		}
		photoPath = &p
	}

	_, err := s.accounts.Register(r.Context(), accounts.RegisterInput{
		Username:        r.FormValue("userName"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("password2"),
		PhotoPath:       photoPath,
	})
	if err != nil {
		if photoPath != nil {
			if rmErr := s.uploads.Remove(*photoPath); rmErr != nil {
				s.log.ErrorContext(r.Context(), "orphaned photo cleanup failed", "err", rmErr)
			}
		}
		writeAppError(w, r, err)
		return
	}
	http.Redirect(w, r, "/signInPage", http.StatusSeeOther)
}

func (s *Server) handleStudentSignIn(w http.ResponseWriter, r *http.Request) {
	s.signIn(w, r, domain.RoleStudent, "/studentHome")
}

func (s *Server) handleAdminSignIn(w http.ResponseWriter, r *http.Request) {
	s.signIn(w, r, domain.RoleAdmin, "/adminHome")
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request, role domain.Role, home string) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed form", nil)
		return
	}

	id, err := s.accounts.Authenticate(
		r.Context(),
		r.FormValue("name"),
		r.FormValue("password"),
		role,
		r.UserAgent(),
	)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if err := s.sessions.SignIn(w, r, id); err != nil {
		s.log.ErrorContext(r.Context(), "session write failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "could not start session", nil)
		return
	}
	http.Redirect(w, r, home, http.StatusSeeOther)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(w, r); err != nil {
		s.log.ErrorContext(r.Context(), "session destroy failed", "err", err)
	}
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

type userResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	UserType int     `json:"userType"`
	Photo    *string `json:"photo"`
}

// handleCurrentUser returns the session snapshot. The role travels as its
// numeric discriminator, which is what the frontend stores.
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	writeJSON(w, http.StatusOK, userResponse{
		ID:       string(sess.UserID),
		Username: sess.Username,
		UserType: sess.Role.Discriminator(),
		Photo:    sess.Photo,
	})
}
