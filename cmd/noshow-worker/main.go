package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/medqueue/medqueue-backend/internal/appointment"
	"github.com/medqueue/medqueue-backend/internal/config"
	"github.com/medqueue/medqueue-backend/internal/db"
	"github.com/medqueue/medqueue-backend/internal/notification"
	redisclient "github.com/medqueue/medqueue-backend/internal/redis"
)

// Applies the administrative status transitions: overdue confirmed
// appointments become completed (patient showed up) or no-show (patient
// never checked in). A Redis lock keeps concurrent worker instances from
// sweeping twice.

const sweepLockName = "noshow-sweep"

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "noshow-worker").Logger()
	logger.Info().Msg("noshow-worker starting up")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load error")
	}

	logger.Info().
		Str("env", cfg.Env).
		Dur("interval", cfg.WorkerInterval).
		Dur("grace", cfg.NoShowGrace).
		Msg("configuration loaded")

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

	notifSvc := notification.NewService(notification.NewPgRepository(pgPool), logger)
	svc := appointment.NewService(appointment.NewPgRepository(pgPool), nil, notifSvc, cfg, logger)
	locker := redisclient.NewRedisLocker(rdb, cfg.LockTTL)

	// Run once at startup
	runOnce(rootCtx, svc, locker, logger)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			logger.Info().Msg("shutdown signal received, stopping noshow-worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, svc, locker, logger)
		}
	}
}

func runOnce(ctx context.Context, svc *appointment.Service, locker redisclient.Locker, logger zerolog.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	err := locker.WithLock(runCtx, sweepLockName, func(lockCtx context.Context) error {
		res, err := svc.SweepOverdue(lockCtx)
		if err != nil {
			return err
		}
		logger.Info().
			Int("completed", res.Completed).
			Int("no_shows", res.NoShows).
			Dur("took", time.Since(start)).
			Msg("sweep complete")
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			logger.Info().Msg("another worker holds the sweep lock, skipping run")
			return
		}
		logger.Error().Err(err).Msg("sweep run error")
	}
}
