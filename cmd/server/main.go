// Command server runs the linkboard HTTP service: a guest-facing board for
// sharing annotated links, with an HTML form surface and a JSON API.
//
// Startup order:
//  1. Load .env (optional) and environment configuration
//  2. Configure structured logging
//  3. Open SQLite and apply embedded migrations; a storage failure degrades
//     the service to memory-only operation instead of refusing to start
//  4. Configure OpenTelemetry trace export (opt-in)
//  5. Serve HTTP with graceful shutdown
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/linkboard/go-linkboard-backend/internal/config"
	httpapi "github.com/linkboard/go-linkboard-backend/internal/http"
	"github.com/linkboard/go-linkboard-backend/internal/observability"
	"github.com/linkboard/go-linkboard-backend/internal/repo"
	"github.com/linkboard/go-linkboard-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Optional .env for local development; the environment wins over the file.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Str("port", cfg.Port).Msg("starting linkboard")

	db := openDatabase(cfg)

	// Tracing is opt-in; a failed setup is logged and skipped, never fatal.
	shutdownOTel, err := observability.SetupOTel(context.Background(), cfg.OTEL, version)
	if err != nil {
		log.Warn().Err(err).Msg("otel setup failed; continuing without tracing")
		shutdownOTel = func(context.Context) error { return nil }
	} else if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing plugin failed; continuing without SQL spans")
		}
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("addr", srv.Addr).Msg("listening")

	// Block until SIGINT/SIGTERM, then drain in-flight requests.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := shutdownOTel(ctx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
	log.Info().Msg("stopped")
}

// openDatabase opens and migrates the configured SQLite file. When the file
// cannot be opened or migrated the service still starts: statements against
// the returned handle fail and the in-process fallback absorbs them, so
// submissions keep working for the life of the process.
func openDatabase(cfg config.Config) *gorm.DB {
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.DBPath).
			Msg("cannot open database; entries will be kept in memory only")
		db, err = repo.OpenSQLite("file::memory:?cache=shared")
		if err != nil {
			// Pure-Go in-memory SQLite failing means something is deeply wrong.
			log.Fatal().Err(err).Msg("cannot open in-memory database")
		}
	}

	if err := repo.Migrate(db); err != nil {
		log.Warn().Err(err).Msg("migrations failed; entries will be kept in memory only")
	}
	return db
}
