package config

import "time"

// GitHubConfig holds GitHub-specific configuration
type GitHubConfig struct {
	Token        string
	APIBaseURL   string
	Timeout      time.Duration
	MaxRepoPages int
	RateLimit    RateLimitConfig
}

// RateLimitConfig holds retry configuration. MaxRetries counts attempts,
// so 1 means a single request with no retry.
type RateLimitConfig struct {
	MaxRetries      int
	InitialBackoff  time.Duration
	MaxBackoff      time.Duration
	RetryMultiplier float64
}

// DefaultGitHubConfig returns the default GitHub configuration
func DefaultGitHubConfig() *GitHubConfig {
	return &GitHubConfig{
		APIBaseURL:   "https://api.github.com",
		Timeout:      30 * time.Second,
		MaxRepoPages: 1,
		RateLimit: RateLimitConfig{
			MaxRetries:      1,
			InitialBackoff:  time.Second,
			MaxBackoff:      time.Minute,
			RetryMultiplier: 2.0,
		},
	}
}
