package httpapi

import (
	"context"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
)

type sessionKey struct{}

func WithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the signed-in session, or nil when signed out.
func SessionFromContext(ctx context.Context) *domain.Session {
	v, _ := ctx.Value(sessionKey{}).(*domain.Session)
	return v
}
