package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/git-search/internal/errors"
	"github.com/Kamar-Folarin/git-search/internal/github"
	"github.com/Kamar-Folarin/git-search/internal/lookup"
	"github.com/Kamar-Folarin/git-search/internal/models"
)

// SessionService is the lookup session the handlers drive
type SessionService interface {
	View() lookup.View
	SetUsername(ctx context.Context, raw string)
	Submit(ctx context.Context) error
	Search(ctx context.Context, username string) error
	Sort(ctx context.Context, key string) error
	ToggleTheme(ctx context.Context) models.Theme
	RecentHistory() []models.HistoryEntry
	ClearHistory(ctx context.Context) error
}

// NotificationSource hands out pending notifications
type NotificationSource interface {
	Drain() []models.Notification
}

// RateLimitSource reports the last GitHub rate limit headers seen
type RateLimitSource interface {
	RateLimit() github.RateLimitInfo
}

type Handler struct {
	session       SessionService
	notifications NotificationSource
	rateLimits    RateLimitSource
	logger        *logrus.Logger
}

// NewHandler creates the API handlers. rateLimits may be nil.
func NewHandler(session SessionService, notifications NotificationSource, rateLimits RateLimitSource, logger *logrus.Logger) *Handler {
	return &Handler{
		session:       session,
		notifications: notifications,
		rateLimits:    rateLimits,
		logger:        logger,
	}
}

// GetSession godoc
// @Summary Get the lookup session
// @Description Returns the username input, lookup state, sort key, theme and recent history
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /session [get]
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.View())
}

// SetUsername godoc
// @Summary Edit the username input
// @Description Records the username and clears any previous result or error
// @Tags session
// @Accept json
// @Produce json
// @Param request body UsernameRequest true "Username"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /session/username [put]
func (h *Handler) SetUsername(c *gin.Context) {
	var req UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "invalid request body", apperrors.ErrInvalidInput)
		return
	}

	h.session.SetUsername(c.Request.Context(), req.Username)
	c.JSON(http.StatusOK, h.session.View())
}

// Search godoc
// @Summary Look up a GitHub user
// @Description Fetches the profile and repositories. Without a body the current username input is submitted.
// @Tags session
// @Accept json
// @Produce json
// @Param request body UsernameRequest false "Username"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /session/search [post]
func (h *Handler) Search(c *gin.Context) {
	var req UsernameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "invalid request body", apperrors.ErrInvalidInput)
			return
		}
	}

	ctx := c.Request.Context()
	var err error
	if req.Username != "" {
		err = h.session.Search(ctx, req.Username)
	} else {
		err = h.session.Submit(ctx)
	}
	if err != nil {
		h.handleError(c, err, "Search failed")
		return
	}

	c.JSON(http.StatusOK, h.session.View())
}

// Sort godoc
// @Summary Sort the repository list
// @Description Reorders the resident repositories by name, stars, forks, created or updated
// @Tags session
// @Accept json
// @Produce json
// @Param request body SortRequest true "Sort key"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /session/sort [post]
func (h *Handler) Sort(c *gin.Context) {
	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "invalid request body", apperrors.ErrInvalidInput)
		return
	}

	if err := h.session.Sort(c.Request.Context(), req.Key); err != nil {
		h.handleError(c, err, "Sort failed")
		return
	}

	c.JSON(http.StatusOK, h.session.View())
}

// ToggleTheme godoc
// @Summary Toggle the theme
// @Description Switches between light and dark
// @Tags session
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /session/theme [post]
func (h *Handler) ToggleTheme(c *gin.Context) {
	theme := h.session.ToggleTheme(c.Request.Context())
	c.JSON(http.StatusOK, ThemeResponse{Theme: string(theme)})
}

// GetHistory godoc
// @Summary List recent searches
// @Description Most recent searches, newest first
// @Tags history
// @Produce json
// @Success 200 {object} HistoryResponse
// @Router /history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, HistoryResponse{Data: h.session.RecentHistory()})
}

// ClearHistory godoc
// @Summary Clear search history
// @Tags history
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} ErrorResponse
// @Router /history [delete]
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.session.ClearHistory(c.Request.Context()); err != nil {
		h.handleError(c, err, "Failed to clear history")
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: "History cleared successfully"})
}

// GetNotifications godoc
// @Summary Drain pending notifications
// @Description Returns notifications raised since the last call, oldest first
// @Tags notifications
// @Produce json
// @Success 200 {object} NotificationListResponse
// @Router /notifications [get]
func (h *Handler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, NotificationListResponse{Data: h.notifications.Drain()})
}

// Health godoc
// @Summary Health check
// @Description Service status and the GitHub rate limit seen on the last request
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC(),
	}
	if h.rateLimits != nil {
		if info := h.rateLimits.RateLimit(); info.Limit > 0 {
			resp.RateLimit = &RateLimitStatus{
				Limit:     info.Limit,
				Remaining: info.Remaining,
				Reset:     info.ResetTime.UTC(),
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	entry := h.logger.WithError(err).WithField("path", c.FullPath())
	if status >= http.StatusInternalServerError {
		entry.Error(msg)
	} else {
		entry.Warn(msg)
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		respondWithError(c, status, appErr.Message, appErr.Type)
		return
	}
	respondWithError(c, status, "internal server error", apperrors.ErrInternal)
}

func statusFor(err error) int {
	switch {
	case apperrors.IsInvalidInput(err):
		return http.StatusBadRequest
	case apperrors.IsLookupFailed(err), apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsRateLimit(err):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(c *gin.Context, code int, message string, errType apperrors.ErrorType) {
	c.JSON(code, ErrorResponse{Error: message, Type: string(errType)})
}
