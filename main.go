package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"fittrack/migrations"
	"fittrack/src/api"
	"fittrack/src/config"
	"fittrack/src/database"
	"fittrack/src/telemetry"
	"fittrack/src/utils"
	aws_utils "fittrack/src/utils/aws"
	"fittrack/src/worker"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Fatal("Error while loading config")
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.FilePath,
		Text:     cfg.Logging.Text,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := loadSecrets(ctx, cfg); err != nil {
		logger.WithError(err).Fatal("Error while loading secrets")
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.WithError(err).Fatal("Error while setting up telemetry")
	}

	if cfg.Service.Type == config.MIGRATE {
		err := migrate(ctx, cfg, logger)
		err = multierr.Append(err, shutdownTelemetry(context.Background()))
		if err != nil {
			logger.WithError(err).Fatal("Migration failed")
		}
		return
	}

	errC, cleanup, httpServer, err := run(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Couldn't run")
	}

	select {
	case err = <-errC:
		logger.WithError(err).Error("Error while running")
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
	defer cancel()

	err = multierr.Combine(
		httpServer.Shutdown(shutdownCtx),
		cleanup(),
		shutdownTelemetry(shutdownCtx),
	)
	if err != nil {
		logger.WithError(err).Error("Unclean shutdown")
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// loadSecrets fills missing credentials from AWS Secrets Manager when a
// secret name is configured.
func loadSecrets(ctx context.Context, cfg *config.Config) error {
	if cfg.Secrets.SecretName == "" {
		return nil
	}
	handler, err := aws_utils.NewAWSHandler(cfg.Secrets.AWSRegion)
	if err != nil {
		return err
	}
	return handler.LoadSecrets(ctx, cfg)
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (<-chan error, func() error, *http.Server, error) {
	errC := make(chan error, 1)

	var (
		httpServer *http.Server
		cleanup    func() error
	)
	switch cfg.Service.Type {
	case config.API:
		deps, err := api.NewDependencies(ctx, cfg, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		httpServer = api.NewHTTPServer(api.NewServer(cfg, deps, logger))
		cleanup = func() error {
			deps.Close()
			return nil
		}
	case config.WORKER:
		db, err := database.SetupLocalDB(ctx, cfg.Databases.Local.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		syncService := worker.NewSyncService(cfg, db, logger)
		if err := syncService.Initialize(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		if cfg.Sync.AutoStart && cfg.Sync.RemoteURL != "" {
			if err := syncService.StartBackgroundSync(); err != nil {
				db.Close()
				return nil, nil, nil, err
			}
		}
		httpServer = worker.NewHTTPServer(worker.NewServer(cfg, db, syncService, logger))
		cleanup = func() error {
			syncService.StopBackgroundSync()
			return db.Close()
		}
	default:
		return nil, nil, nil, fmt.Errorf("unknown service type %q", cfg.Service.Type)
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"type": cfg.Service.Type,
			"port": cfg.Service.Port,
		}).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, cleanup, httpServer, nil
}

// migrate applies the remote Postgres migrations when a database is
// configured, then the local SQLite ones.
func migrate(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var errs error
	if cfg.Databases.SQL.Configured() {
		pool, err := database.SetupDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		db := database.StdDB(pool)
		applied, err := migrations.Postgres(ctx, db)
		errs = multierr.Append(errs, multierr.Combine(err, db.Close()))
		logger.WithField("applied", applied).Info("Remote migrations done")
	}

	// SetupLocalDB migrates on open.
	local, err := database.SetupLocalDB(ctx, cfg.Databases.Local.Path)
	if err != nil {
		return multierr.Append(errs, err)
	}
	errs = multierr.Append(errs, closeDB(local))
	logger.WithField("path", cfg.Databases.Local.Path).Info("Local migrations done")
	return errs
}

func closeDB(db *sql.DB) error {
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close local database: %w", err)
	}
	return nil
}
