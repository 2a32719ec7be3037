package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/episode-sync/app/api"
	"github.com/lysyi3m/episode-sync/app/cfg"
	"github.com/lysyi3m/episode-sync/app/database"
	"github.com/lysyi3m/episode-sync/app/feed"
	"github.com/lysyi3m/episode-sync/app/tasks"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	appCfg, err := cfg.Load()
	if err != nil {
		return err
	}
	if appCfg == nil {
		// Help was shown
		return nil
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting Episode Sync", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBURL, appCfg.DBHost, appCfg.DBPort,
		appCfg.DBUser, appCfg.DBPassword, appCfg.DBName, appCfg.DBSSLMode)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	slog.Info("Connected to database", "host", appCfg.DBHost, "name", appCfg.DBName)

	if appCfg.Migrate {
		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			return err
		}
		slog.Info("Migrations applied", "version", version, "dirty", dirty)
	}

	configCache := feed.NewConfigCache(appCfg.FeedsDir)
	if err := configCache.Run(appCfg.FeedURLs); err != nil {
		return fmt.Errorf("failed to load feed configurations: %w", err)
	}
	slog.Info("Feed configurations loaded", "count", configCache.GetConfigCount())

	httpClient := &http.Client{Timeout: 60 * time.Second}

	scheduler := tasks.NewScheduler(configCache, tasks.SyncDeps{
		Fetcher:   feed.NewFetcher(httpClient, appCfg.UserAgent, appCfg.FetchInterval),
		Parser:    feed.NewParser(),
		Rules:     feed.NewDialectRules(appCfg.ShowTitle, appCfg.PrimaryAuthor),
		Connector: db,
	}, appCfg.Schedule, appCfg.TaskTimeout)

	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	if appCfg.RunOnStart {
		queued := scheduler.EnqueueAll()
		slog.Info("Startup sync queued", "feeds", queued)
	}

	handler := api.NewHandler(configCache, scheduler, db, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	return nil
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
