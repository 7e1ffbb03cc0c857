package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	LogFile   string
	GitHub    *GitHubConfig
	Storage   *StorageConfig
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	gh := DefaultGitHubConfig()
	gh.Token = getEnv("GITHUB_TOKEN", "")
	gh.APIBaseURL = getEnv("GITHUB_API_BASE_URL", gh.APIBaseURL)

	maxRetries, err := getEnvInt("GITHUB_MAX_RETRIES", gh.RateLimit.MaxRetries)
	if err != nil {
		return nil, err
	}
	gh.RateLimit.MaxRetries = maxRetries

	timeout, err := getEnvInt("HTTP_TIMEOUT_SECONDS", int(gh.Timeout/time.Second))
	if err != nil {
		return nil, err
	}
	gh.Timeout = time.Duration(timeout) * time.Second

	pages, err := getEnvInt("GITHUB_MAX_REPO_PAGES", gh.MaxRepoPages)
	if err != nil {
		return nil, err
	}
	gh.MaxRepoPages = pages

	st := DefaultStorageConfig()
	st.Backend = getEnv("STORAGE_BACKEND", st.Backend)
	st.Path = getEnv("STORAGE_PATH", st.Path)
	st.DBConnectionString = getEnv("DB_CONNECTION_STRING", "")
	st.RedisAddr = getEnv("REDIS_ADDR", st.RedisAddr)
	st.RedisPassword = getEnv("REDIS_PASSWORD", "")
	st.RedisKeyPrefix = getEnv("REDIS_KEY_PREFIX", st.RedisKeyPrefix)
	redisDB, err := getEnvInt("REDIS_DB", st.RedisDB)
	if err != nil {
		return nil, err
	}
	st.RedisDB = redisDB

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogFile:   getEnv("LOG_FILE", ""),
		GitHub:    gh,
		Storage:   st,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.GitHub.RateLimit.MaxRetries < 1 {
		return fmt.Errorf("GITHUB_MAX_RETRIES must be at least 1, got %d", c.GitHub.RateLimit.MaxRetries)
	}
	if c.GitHub.MaxRepoPages < 1 {
		return fmt.Errorf("GITHUB_MAX_REPO_PAGES must be at least 1, got %d", c.GitHub.MaxRepoPages)
	}
	return c.Storage.Validate()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
