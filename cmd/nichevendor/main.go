package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/vbonduro/nichevendor/internal/backup"
	"github.com/vbonduro/nichevendor/internal/config"
	"github.com/vbonduro/nichevendor/internal/db"
	"github.com/vbonduro/nichevendor/internal/logging"
	"github.com/vbonduro/nichevendor/internal/service"
	"github.com/vbonduro/nichevendor/internal/storage"
	filestorage "github.com/vbonduro/nichevendor/internal/storage/file"
	"github.com/vbonduro/nichevendor/internal/storage/memory"
	redisstorage "github.com/vbonduro/nichevendor/internal/storage/redis"
	sqlitestorage "github.com/vbonduro/nichevendor/internal/storage/sqlite"
	"github.com/vbonduro/nichevendor/internal/store"
	"github.com/vbonduro/nichevendor/internal/web"
	"github.com/vbonduro/nichevendor/internal/web/templates"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	flags := pflag.NewFlagSet("nichevendor", pflag.ContinueOnError)
	envFile := flags.String("env-file", ".env", "dotenv file to load before reading the environment")
	listen := flags.String("listen", "", "listen address, overrides LISTEN_ADDR")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("invalid arguments: %v", err)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		cleanup()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stg, closer, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	st, err := store.Open(ctx, stg, logger)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	clock := service.SystemClock
	inventory := service.NewInventoryService(st, clock, logger)
	orders := service.NewOrderService(st, clock, logger)
	events := service.NewEventService(st, clock, logger)
	dashboard := service.NewDashboardService(st, st, events, cfg.LowStockThreshold, clock)

	if cfg.BackupSchedule != "" {
		writer := backup.NewWriter(st, cfg.BackupDir, cfg.BackupKeep, logger)
		sched, err := backup.Schedule(writer, cfg.BackupSchedule)
		if err != nil {
			return err
		}
		defer sched.Stop()
		logger.Info("backups scheduled", "schedule", cfg.BackupSchedule, "dir", cfg.BackupDir)
	}

	server := web.NewServer(
		web.Services{Inventory: inventory, Orders: orders, Events: events, Dashboard: dashboard},
		templates.FS,
		web.Options{
			BasePath:   cfg.BasePath,
			Currency:   cfg.Currency,
			Backend:    cfg.StorageBackend,
			Version:    version,
			LoadIssues: st.LoadIssues,
		},
		logger,
	)

	httpServer := server.HTTPServer(cfg.ListenAddr)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ListenAddr, "backend", cfg.StorageBackend)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, io.Closer, error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		stg, err := filestorage.New(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open data dir: %w", err)
		}
		logger.Info("using file storage", "dir", cfg.DataDir)
		return stg, io.NopCloser(nil), nil
	case config.BackendRedis:
		client, err := redisstorage.Dial(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis storage", "prefix", cfg.RedisPrefix)
		return redisstorage.New(client, cfg.RedisPrefix), client, nil
	case config.BackendMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), io.NopCloser(nil), nil
	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		logger.Info("using sqlite storage", "path", cfg.DBPath)
		return sqlitestorage.New(database), database, nil
	}
}
