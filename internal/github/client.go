package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/Kamar-Folarin/git-search/internal/config"
	"github.com/Kamar-Folarin/git-search/internal/models"
)

const reposPerPage = 100

// RateLimitInfo holds information about GitHub API rate limits
type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetTime time.Time
	// Set from Retry-After on secondary limits
	SecondaryLimitReset time.Time
}

// Client talks to the GitHub REST API users endpoints.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger

	mu            sync.Mutex
	rateLimitInfo RateLimitInfo

	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	multiplier     float64
	maxRepoPages   int
}

// ClientOption allows configuring the GitHub client
type ClientOption func(*Client)

// WithRetryConfig configures retry behavior
func WithRetryConfig(maxRetries int, initialBackoff, maxBackoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialBackoff = initialBackoff
		c.maxBackoff = maxBackoff
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a GitHub client. Requests are anonymous unless cfg.Token is set.
func NewClient(cfg *config.GitHubConfig, logger *logrus.Logger, opts ...ClientOption) *Client {
	httpClient := &http.Client{}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = cfg.Timeout

	multiplier := cfg.RateLimit.RetryMultiplier
	if multiplier < 1 {
		multiplier = 2
	}

	client := &Client{
		client:         httpClient,
		baseURL:        strings.TrimSuffix(cfg.APIBaseURL, "/"),
		logger:         logger,
		maxRetries:     cfg.RateLimit.MaxRetries,
		initialBackoff: cfg.RateLimit.InitialBackoff,
		maxBackoff:     cfg.RateLimit.MaxBackoff,
		multiplier:     multiplier,
		maxRepoPages:   cfg.MaxRepoPages,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.maxRetries < 1 {
		client.maxRetries = 1
	}
	if client.maxRepoPages < 1 {
		client.maxRepoPages = 1
	}

	return client
}

// RateLimit returns the most recent rate limit headers seen
func (c *Client) RateLimit() RateLimitInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rateLimitInfo
}

// updateRateLimitInfo updates the rate limit information from response headers
func (c *Client) updateRateLimitInfo(resp *http.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limit := resp.Header.Get("X-RateLimit-Limit"); limit != "" {
		c.rateLimitInfo.Limit, _ = strconv.Atoi(limit)
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.rateLimitInfo.Remaining, _ = strconv.Atoi(remaining)
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if resetTime, err := strconv.ParseInt(reset, 10, 64); err == nil {
			c.rateLimitInfo.ResetTime = time.Unix(resetTime, 0)
		}
	}

	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if retrySeconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
			c.rateLimitInfo.SecondaryLimitReset = time.Now().Add(time.Duration(retrySeconds) * time.Second)
		}
	}
}

// rateLimited reports whether resp is a primary or secondary rate limit rejection
func (c *Client) rateLimited(resp *http.Response) error {
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusForbidden {
		return nil
	}
	info := c.RateLimit()
	if resp.StatusCode == http.StatusForbidden &&
		resp.Header.Get("X-RateLimit-Remaining") != "0" &&
		resp.Header.Get("Retry-After") == "" {
		return nil
	}

	resetTime := info.ResetTime
	if !info.SecondaryLimitReset.IsZero() {
		resetTime = info.SecondaryLimitReset
	}
	return NewRateLimitError(resetTime, info.Limit, info.Remaining)
}

func (c *Client) nextBackoff(backoff time.Duration) time.Duration {
	return time.Duration(math.Min(float64(backoff)*c.multiplier, float64(c.maxBackoff)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// doRequestWithBackoff performs a GET with exponential backoff on transport
// failures and 5xx responses. Rate limit rejections are returned immediately.
func (c *Client) doRequestWithBackoff(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error
	backoff := c.initialBackoff
	logger := c.logger.WithField("url", endpoint)

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, backoff); err != nil {
				return NewGitHubError(0, "request cancelled", err)
			}
			backoff = c.nextBackoff(backoff)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
		req.Header.Set("User-Agent", "git-search")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = NewGitHubError(0, "request failed", err)
			logger.Warnf("Request attempt %d failed: %v", attempt+1, err)
			continue
		}

		c.updateRateLimitInfo(resp)

		if rlErr := c.rateLimited(resp); rlErr != nil {
			resp.Body.Close()
			logger.Warn("GitHub rate limit exceeded")
			return rlErr
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = NewGitHubError(resp.StatusCode, "failed to read response body", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = NewGitHubError(resp.StatusCode, strings.TrimSpace(string(body)), nil)
			if resp.StatusCode >= 500 {
				logger.WithField("status", resp.StatusCode).Warnf("Server error on attempt %d", attempt+1)
				continue
			}
			return lastErr
		}

		if result != nil {
			if err := json.Unmarshal(body, result); err != nil {
				return NewGitHubError(resp.StatusCode, "failed to decode response", err)
			}
		}

		return nil
	}

	if c.maxRetries == 1 {
		return lastErr
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// FetchProfile gets the profile card for username
func (c *Client) FetchProfile(ctx context.Context, username string) (*models.Profile, error) {
	if username == "" {
		return nil, NewValidationError("username", "cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))

	var u user
	if err := c.doRequestWithBackoff(ctx, endpoint, &u); err != nil {
		if isNotFound(err) {
			return nil, NewUserNotFoundError(username)
		}
		return nil, err
	}

	profile := u.toProfile(username)
	c.logger.WithFields(logrus.Fields{
		"username":  profile.Username,
		"followers": profile.Followers,
	}).Debug("Fetched GitHub profile")

	return &profile, nil
}

// FetchRepositories gets the public repositories of username, up to the
// configured number of pages, in the order GitHub returns them
func (c *Client) FetchRepositories(ctx context.Context, username string) ([]models.Repository, error) {
	if username == "" {
		return nil, NewValidationError("username", "cannot be empty")
	}

	result := make([]models.Repository, 0)
	for page := 1; page <= c.maxRepoPages; page++ {
		query := url.Values{}
		query.Set("per_page", strconv.Itoa(reposPerPage))
		query.Set("page", strconv.Itoa(page))
		endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), query.Encode())

		var repos []repo
		if err := c.doRequestWithBackoff(ctx, endpoint, &repos); err != nil {
			if isNotFound(err) {
				return nil, NewUserNotFoundError(username)
			}
			return nil, err
		}

		for _, r := range repos {
			result = append(result, r.toRepository())
		}

		if len(repos) < reposPerPage {
			break
		}
	}

	c.logger.WithFields(logrus.Fields{
		"username": username,
		"repos":    len(result),
	}).Debug("Fetched GitHub repositories")

	return result, nil
}
