package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/httpapi"
	memclubrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/clubrepo"
	memeventrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/eventrepo"
	memmembershiprepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/membershiprepo"
	memreviewrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/reviewrepo"
	memuserrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/userrepo"
	postgres "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres"
	pgclubrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres/clubrepo"
	pgeventrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres/eventrepo"
	pgmembershiprepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres/membershiprepo"
	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres/migrations"
	pgreviewrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres/reviewrepo"
	pguserrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres/userrepo"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/accounts"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/clubs"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/events"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/reviews"
	platformclock "github.com/Campus-Club-Council/club-portal-api/internal/platform/clock"
	"github.com/Campus-Club-Council/club-portal-api/internal/platform/config"
	"github.com/Campus-Club-Council/club-portal-api/internal/platform/passhash"
	"github.com/Campus-Club-Council/club-portal-api/internal/platform/websession"
	clubrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/clubrepo"
	eventrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/eventrepo"
	membershiprepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/membershiprepo"
	reviewrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/reviewrepo"
	userrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/userrepo"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	clk := platformclock.NewSystemClock()

	var (
		userRepo       userrepoport.Repository
		clubRepo       clubrepoport.Repository
		membershipRepo membershiprepoport.Repository
		eventRepo      eventrepoport.Repository
		reviewRepo     reviewrepoport.Repository
		cleanup        func()
	)

	switch cfg.StorageBackend {
	case "postgres":
		if err := migrate(context.Background(), cfg.DatabaseURL); err != nil {
			log.Error("migrations failed", "err", err)
			os.Exit(1)
		}
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			log.Error("invalid postgres config", "err", err)
			os.Exit(1)
		}
		cleanup = pool.Close

		userRepo = pguserrepo.NewRepo(pool)
		clubRepo = pgclubrepo.NewRepo(pool)
		membershipRepo = pgmembershiprepo.NewRepo(pool)
		eventRepo = pgeventrepo.NewRepo(pool)
		reviewRepo = pgreviewrepo.NewRepo(pool)
	default:
		userRepo = memuserrepo.NewRepo()
		clubRepo = memclubrepo.NewRepo()
		membershipRepo = memmembershiprepo.NewRepo()
		eventRepo = memeventrepo.NewRepo()
		reviewRepo = memreviewrepo.NewRepo()
	}

	if cleanup != nil {
		defer cleanup()
	}

	api := httpapi.NewServer(httpapi.ServerConfig{
		Accounts:  accounts.NewService(userRepo, clk, passhash.NewBcrypt(), log),
		Clubs:     clubs.NewService(clubRepo, userRepo, membershipRepo, clk),
		Events:    events.NewService(eventRepo),
		Reviews:   reviews.NewService(reviewRepo, clk),
		Sessions:  websession.NewManager(cfg.SessionSecret),
		Uploads:   httpapi.NewUploadStore(cfg.UploadDir),
		ViewsDir:  cfg.ViewsDir,
		PublicDir: cfg.PublicDir,
		Log:       log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           httpapi.NewRouter(api),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("api listening", "addr", srv.Addr, "backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	goose.SetBaseFS(migrations.FS)
	return goose.UpContext(ctx, db, ".")
}
