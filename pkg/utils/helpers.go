package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,37}[A-Za-z0-9])?$`)

// NormalizeUsername trims the raw input and accepts "@login" and profile
// URLs such as https://github.com/login as well as a bare login.
func NormalizeUsername(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@")

	if strings.Contains(s, "github.com/") {
		if login, err := ParseProfileURL(s); err == nil {
			return login
		}
	}
	return s
}

// ParseProfileURL extracts the login from a GitHub profile URL
func ParseProfileURL(profileURL string) (string, error) {
	if !strings.Contains(profileURL, "://") {
		profileURL = "https://" + profileURL
	}
	u, err := url.Parse(profileURL)
	if err != nil {
		return "", err
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		return "", fmt.Errorf("invalid GitHub profile URL")
	}

	return parts[0], nil
}

// IsValidUsername reports whether s could be a GitHub login
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s) && !strings.Contains(s, "--")
}
