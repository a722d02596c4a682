// cmd/web/main.go
//
// Journal backend – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load config (.env → conf/global.yaml → JOURNAL_ env overlay, with
//     the legacy MONGO_URI/CLIENT_URL/PORT names as fallbacks).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Open the MySQL pool; fail fast if it does not ping.
//
//  4. Open the MaxMind Country database; a missing file degrades country
//     resolution to "Unknown" instead of aborting.
//
//  5. Wire the chi router:
//
//     • /metrics                       – Prometheus exposition
//     • /api/emails                    – capture handler (rate limited)
//     • /api/journal/…                 – journal CRUD + report (CORS)
//
//  6. Serve with hardened timeouts; SIGINT/SIGTERM drains in-flight
//     requests through http.Server.Shutdown.
//
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/webdevx/journal-backend/internal/clientip"
	"github.com/webdevx/journal-backend/internal/config"
	"github.com/webdevx/journal-backend/internal/database"
	"github.com/webdevx/journal-backend/internal/email"
	"github.com/webdevx/journal-backend/internal/geo"
	"github.com/webdevx/journal-backend/internal/journal"
	"github.com/webdevx/journal-backend/internal/logger"
	"github.com/webdevx/journal-backend/internal/middleware"
	"github.com/webdevx/journal-backend/internal/requestinfo"
	"github.com/webdevx/journal-backend/internal/server"
)

const (
	rateLimitRequests = 50
	rateLimitWindow   = 15 * time.Minute
	shutdownGrace     = 10 * time.Second
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	//
	// ── 1.  Database pool ───────────────────────────────────────────────
	//
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalf("connect database: %v", err)
	}
	defer db.Close()
	logOut.Infow("database online")

	//
	// ── 2.  Geo database (optional) ─────────────────────────────────────
	//
	geoPath := cfg.Geo.DBPath
	if geoPath != "" && !filepath.IsAbs(geoPath) {
		geoPath = filepath.Join(cfg.Paths.Root, geoPath)
	}
	geoDB, err := geo.Open(geoPath)
	if err != nil {
		logOut.Warnw("geo database unavailable, locations resolve as Unknown",
			"path", geoPath, "err", err)
	}
	defer geoDB.Close() // nil-safe

	//
	// ── 3.  Handlers and router ─────────────────────────────────────────
	//
	resolver := clientip.New(cfg.Lookup.Endpoint, cfg.Lookup.Timeout)
	captures := email.NewHandler(email.NewStore(db), resolver, geoDB, cfg.HTTP.ClientURL)
	entries := journal.NewHandler(journal.NewStore(db))

	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)

	r.Handle("/metrics", promhttp.Handler())
	r.With(middleware.RateLimit(rateLimitRequests, rateLimitWindow)).
		Handle("/api/emails", captures)
	r.Route("/api/journal", func(jr chi.Router) {
		jr.Use(middleware.CORS(cfg.HTTP.ClientURL))
		entries.Routes(jr)
	})

	//
	// ── 4.  Serve until signalled ───────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		drain, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(drain)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
	logOut.Infow("shutdown complete")
}
