package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/medqueue/medqueue-backend/internal/api"
	"github.com/medqueue/medqueue-backend/internal/appointment"
	"github.com/medqueue/medqueue-backend/internal/config"
	"github.com/medqueue/medqueue-backend/internal/db"
	"github.com/medqueue/medqueue-backend/internal/doctor"
	"github.com/medqueue/medqueue-backend/internal/notification"
	redisclient "github.com/medqueue/medqueue-backend/internal/redis"
)

const version = "1.0.0"

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "api-server").Logger()
	logger.Info().Msg("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load error")
	}

	logger.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("configuration loaded")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgPool, err := db.ConnectPostgres(rootCtx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	logger.Info().Msg("connected to Postgres")

	rdb, err := redisclient.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing redis")
		}
	}()
	logger.Info().Msg("connected to Redis")

	cache := redisclient.NewRedisCache(rdb)

	notifSvc := notification.NewService(notification.NewPgRepository(pgPool), logger)
	bookingSvc := appointment.NewService(appointment.NewPgRepository(pgPool), cache, notifSvc, cfg, logger)
	doctorSvc := doctor.NewService(doctor.NewPgRepository(pgPool), logger)

	router := api.NewRouter(api.RouterConfig{
		Bookings:      bookingSvc,
		Doctors:       doctorSvc,
		Notifications: notifSvc,
		PgPool:        pgPool,
		Redis:         rdb,
		Logger:        logger,
		Env:           cfg.Env,
		Version:       version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("api-server stopped")
}
