package api

import (
	"time"

	"github.com/Kamar-Folarin/git-search/internal/lookup"
	"github.com/Kamar-Folarin/git-search/internal/models"
)

// ErrorResponse represents an error response
// @Description Error response
type ErrorResponse struct {
	// Error message
	Error string `json:"error" example:"User not found, please enter a valid username"`
	// Error category
	Type string `json:"type,omitempty" example:"LOOKUP_FAILED" enums:"LOOKUP_FAILED,NOT_FOUND,RATE_LIMIT,INVALID_INPUT,STORAGE,INTERNAL"`
}

// UsernameRequest carries the username input
type UsernameRequest struct {
	Username string `json:"username" example:"octocat"`
}

// SortRequest selects a repository ordering
type SortRequest struct {
	Key string `json:"key" binding:"required" example:"stars" enums:"name,stars,forks,created,updated"`
}

// SessionResponse is the full session view
// @Description Username input, lookup state, sort key, theme and recent history
type SessionResponse = lookup.View

// ThemeResponse reports the active theme
type ThemeResponse struct {
	Theme string `json:"theme" example:"dark" enums:"light,dark"`
}

// HistoryResponse lists recent searches, newest first
type HistoryResponse struct {
	Data []models.HistoryEntry `json:"data"`
}

// NotificationListResponse lists drained notifications, oldest first
type NotificationListResponse struct {
	Data []models.Notification `json:"data"`
}

type StatusResponse struct {
	Status string `json:"status" example:"History cleared successfully"`
}

type HealthResponse struct {
	Status    string           `json:"status" example:"ok"`
	Time      time.Time        `json:"time"`
	RateLimit *RateLimitStatus `json:"rate_limit,omitempty"`
}

// RateLimitStatus is the GitHub quota reported on the last response
type RateLimitStatus struct {
	Limit     int       `json:"limit" example:"60"`
	Remaining int       `json:"remaining" example:"59"`
	Reset     time.Time `json:"reset"`
}
