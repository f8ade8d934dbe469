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
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/palfi-booking/internal/audit"
	"github.com/BruksfildServices01/palfi-booking/internal/auth"
	"github.com/BruksfildServices01/palfi-booking/internal/catalog"
	"github.com/BruksfildServices01/palfi-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/palfi-booking/internal/db"
	"github.com/BruksfildServices01/palfi-booking/internal/logger"
	"github.com/BruksfildServices01/palfi-booking/internal/metrics"
	"github.com/BruksfildServices01/palfi-booking/internal/middleware"
	"github.com/BruksfildServices01/palfi-booking/internal/routes"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
	"github.com/BruksfildServices01/palfi-booking/internal/slot"
	"github.com/BruksfildServices01/palfi-booking/internal/timezone"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		l := logger.New("info", nil)
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(cfg.LogLevel, nil)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.SlotBackend).Msg("failed to open slot backend")
	}
	defer backend.Close()

	authn, err := auth.NewStaticPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare admin gate")
	}

	metrics.Register()

	dispatcher := audit.NewDispatcher(audit.New(log), log, cfg.AuditBuffer)
	defer dispatcher.Close()

	registry := session.NewRegistry(backend, cfg.SessionTTL, log)
	go registry.Run(ctx, time.Minute)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Config:        cfg,
		Catalog:       cat,
		Location:      timezone.Location(cfg.ShopTimezone),
		Registry:      registry,
		Authenticator: authn,
		Tokens:        auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Audit:         dispatcher,
		Log:           log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("backend", backend.Name()).
			Msg("server running")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	shutdown(srv, log)
}

func openBackend(ctx context.Context, cfg *config.Config) (slot.Backend, error) {
	switch cfg.SlotBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		b := slot.NewRedisBackend(client, cfg.SessionTTL)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := b.Ping(pingCtx); err != nil {
			_ = b.Close()
			return nil, err
		}
		return b, nil

	case "postgres":
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		return slot.NewGormBackend(db, cfg.SessionTTL), nil

	default:
		return slot.NewMemoryBackend(cfg.SessionTTL), nil
	}
}

func shutdown(srv *http.Server, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("server stopped")
}
