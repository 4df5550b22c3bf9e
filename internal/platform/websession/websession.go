// Package websession stores the signed-in identity in a signed cookie.
package websession

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

const sessionName = "club-portal-session"

// Manager reads and writes the session cookie. Only primitives go into the
// cookie: the user ID, username, role discriminator and photo path.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// SignIn writes the identity snapshot into the response cookie.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, id domain.Identity) error {
	sess, _ := m.store.Get(r, sessionName)
	sess.Values["uid"] = string(id.ID)
	sess.Values["username"] = id.Username
	sess.Values["role"] = id.Role.Discriminator()
	if id.Photo != nil {
		sess.Values["photo"] = *id.Photo
	} else {
		delete(sess.Values, "photo")
	}
	return sess.Save(r, w)
}

// Current decodes the request cookie into a session snapshot. A missing or
// malformed cookie yields (nil, nil); the caller treats that as signed out.
func (m *Manager) Current(r *http.Request) (*domain.Session, error) {
	sess, err := m.store.Get(r, sessionName)
	if err != nil {
		// Undecodable cookies (rotated secret, tampering) mean signed out.
		return nil, nil
	}
	uid, _ := sess.Values["uid"].(string)
	if uid == "" {
		return nil, nil
	}
	username, _ := sess.Values["username"].(string)
	disc, _ := sess.Values["role"].(int)
	role, ok := domain.RoleFromDiscriminator(disc)
	if !ok {
		return nil, nil
	}

	out := &domain.Session{
		UserID:   domain.UserID(uid),
		Username: username,
		Role:     role,
	}
	if photo, ok := sess.Values["photo"].(string); ok && photo != "" {
		out.Photo = &photo
	}
	return out, nil
}

// Destroy expires the session cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, sessionName)
	sess.Options.MaxAge = -1
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	return sess.Save(r, w)
}
