package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/git-search/internal/api"
	"github.com/Kamar-Folarin/git-search/internal/config"
	"github.com/Kamar-Folarin/git-search/internal/github"
	"github.com/Kamar-Folarin/git-search/internal/logging"
	"github.com/Kamar-Folarin/git-search/internal/lookup"
	"github.com/Kamar-Folarin/git-search/internal/storage"

	_ "github.com/Kamar-Folarin/git-search/docs"
)

func main() {
	// Load configuration with defaults
	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Options{}).Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	if cfg.GitHub.Token == "" {
		logger.Warn("GITHUB_TOKEN not set, using unauthenticated requests (60 per hour)")
	}
	client := github.NewClient(cfg.GitHub, logger)

	feed := lookup.NewFeed(50)
	session := lookup.NewSession(client, store, lookup.Multi{feed, lookup.LogNotifier{Logger: logger}}, logger)
	if err := session.Rehydrate(ctx); err != nil {
		logger.WithError(err).Warn("Starting with a partially restored session")
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.SetupRouter(api.NewHandler(session, feed, client, logger), logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.WithCORS(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(cfg.GitHub),
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.WithField("backend", cfg.Storage.Backend).Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server exited properly")
}

// writeTimeout bounds a response by the worst case of one lookup: the profile
// request plus every repository page, each retried with backoff. A client
// without a timeout gets a server without one.
func writeTimeout(cfg *config.GitHubConfig) time.Duration {
	if cfg.Timeout <= 0 {
		return 0
	}
	retries := cfg.RateLimit.MaxRetries
	if retries < 1 {
		retries = 1
	}
	pages := cfg.MaxRepoPages
	if pages < 1 {
		pages = 1
	}
	requests := time.Duration((1 + pages) * retries)
	return requests*(cfg.Timeout+cfg.RateLimit.MaxBackoff) + 5*time.Second
}
