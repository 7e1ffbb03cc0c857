package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/git-search/internal/config"
)

// ErrNotFound is returned by Get when no record exists for the key.
var ErrNotFound = errors.New("storage: key not found")

// Record keys. Each holds one whole JSON document.
const (
	KeyUsername = "username"
	KeyProfile  = "userInfo"
	KeyRepos    = "repos"
	KeyHistory  = "history"
	KeyTheme    = "theme"
)

// Store is the persistence port the lookup session writes through.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases any resources held by the store.
	Close() error
}

// Open builds the store selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.StorageConfig, logger *logrus.Logger) (Store, error) {
	logger.WithField("backend", cfg.Backend).Debug("Opening storage backend")

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(nil, cfg.Path)
	case config.BackendPostgres:
		s, err := NewPostgresStore(cfg.DBConnectionString)
		if err != nil {
			return nil, err
		}
		if err := retry(3, s.Migrate); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to run migrations after retries: %w", err)
		}
		return s, nil
	case config.BackendRedis:
		return NewRedisStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
