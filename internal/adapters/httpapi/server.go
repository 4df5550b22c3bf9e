package httpapi

import (
	"log/slog"

	"github.com/Campus-Club-Council/club-portal-api/internal/app/accounts"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/clubs"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/events"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/reviews"
	"github.com/Campus-Club-Council/club-portal-api/internal/platform/websession"
)

// Server bundles the application services behind the HTTP adapter.
type Server struct {
	accounts *accounts.Service
	clubs    *clubs.Service
	events   *events.Service
	reviews  *reviews.Service

	sessions *websession.Manager
	uploads  *UploadStore

	viewsDir  string
	publicDir string
	log       *slog.Logger
}

type ServerConfig struct {
	Accounts *accounts.Service
	Clubs    *clubs.Service
	Events   *events.Service
	Reviews  *reviews.Service

	Sessions *websession.Manager
	Uploads  *UploadStore

	ViewsDir  string
	PublicDir string
	Log       *slog.Logger
}

func NewServer(cfg ServerConfig) *Server {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		accounts:  cfg.Accounts,
		clubs:     cfg.Clubs,
		events:    cfg.Events,
		reviews:   cfg.Reviews,
		sessions:  cfg.Sessions,
		uploads:   cfg.Uploads,
		viewsDir:  cfg.ViewsDir,
		publicDir: cfg.PublicDir,
		log:       log,
	}
}
