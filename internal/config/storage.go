package config

import "fmt"

// Storage backends understood by storage.Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Backend            string
	Path               string
	DBConnectionString string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RedisKeyPrefix     string
}

// DefaultStorageConfig returns a file backend in the working directory
func DefaultStorageConfig() *StorageConfig {
	return &StorageConfig{
		Backend:        BackendFile,
		Path:           ".gitsearch/state.json",
		RedisAddr:      "localhost:6379",
		RedisKeyPrefix: "gitsearch:",
	}
}

func (c *StorageConfig) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Path == "" {
			return fmt.Errorf("STORAGE_PATH must be set for the file backend")
		}
	case BackendPostgres:
		if c.DBConnectionString == "" {
			return fmt.Errorf("DB_CONNECTION_STRING must be set for the postgres backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR must be set for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Backend)
	}
	return nil
}
