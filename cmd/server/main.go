// Command server runs the marketplace dashboard API.
//
//	@title			Marketplace Dashboard API
//	@version		1.0
//	@description	Royalties, payouts, product ideas, inbox, support cases and maker profiles for a 3D-printing marketplace dashboard.
//	@BasePath		/api/v1
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-marketplace-backend/internal/config"
	"github.com/tbourn/go-marketplace-backend/internal/fixtures"
	httpapi "github.com/tbourn/go-marketplace-backend/internal/http"
	"github.com/tbourn/go-marketplace-backend/internal/observability"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
	"github.com/tbourn/go-marketplace-backend/internal/search"
	"github.com/tbourn/go-marketplace-backend/internal/services"
	"github.com/tbourn/go-marketplace-backend/internal/sim"
	"github.com/tbourn/go-marketplace-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	shutdownGrace  = 10 * time.Second
	purgeInterval  = 15 * time.Minute
	otelFlushGrace = 5 * time.Second
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}
	cfg := config.MustLoad()

	gin.SetMode(cfg.GinMode)
	sysutil.SetLogLevel(cfg.LogLevel)
	logger, logCloser := sysutil.NewLogger(cfg, os.Stdout)
	defer logCloser.Close()
	log.Logger = logger

	ver := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	otelShutdown, err := observability.SetupOTel(ctx, cfg.OTEL, ver)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup")
	}
	defer func() {
		if err := observability.ShutdownWithin(otelShutdown, otelFlushGrace); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	var db *gorm.DB
	if cfg.StoreDriver == config.DriverSQLite {
		db, err = repo.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open sqlite")
		}
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
	}
	stores := httpapi.NewStores(db)

	cat, err := fixtures.LoadCatalog(cfg.Fixtures.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("load fixture catalog")
	}
	set := fixtures.Generate(cat, fixtures.Options{
		Seed:         cfg.Fixtures.Seed,
		Count:        cfg.Fixtures.Count,
		LookbackDays: cfg.Fixtures.LookbackDays,
	})
	if err := services.Seed(ctx, stores.Cases, stores.Conversations, set); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}

	idx := search.Default()
	if cfg.HelpPath != "" {
		idx, err = search.NewIndexFromMarkdown(cfg.HelpPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.HelpPath).Msg("load help center")
		}
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		Stores:              stores,
		Records:             set,
		Index:               idx,
		Backend:             sim.New(cfg.Sim.MinDelay, cfg.Sim.MaxDelay, cfg.Sim.FailRate),
		DefaultPayoutMethod: cat.PayoutMethod,
	}, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	if db != nil {
		go purgeIdempotency(ctx, db, purgeInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.StoreDriver).
			Str("base_path", cfg.APIBasePath).
			Str("version", ver).
			Int("royalties", len(set.Royalties)).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// purgeIdempotency drops expired idempotency records until ctx ends.
func purgeIdempotency(ctx context.Context, db *gorm.DB, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("purged idempotency keys")
			}
		}
	}
}
