package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/git-search/internal/errors"
	"github.com/Kamar-Folarin/git-search/internal/github"
	"github.com/Kamar-Folarin/git-search/internal/models"
	"github.com/Kamar-Folarin/git-search/internal/storage"
	"github.com/Kamar-Folarin/git-search/pkg/utils"
)

// Fetcher reads profile and repository data from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*models.Profile, error)
	FetchRepositories(ctx context.Context, username string) ([]models.Repository, error)
}

// View is a point-in-time copy of the session for rendering.
type View struct {
	Username string                `json:"username"`
	State    models.State          `json:"state"`
	SortKey  SortKey               `json:"sort_key,omitempty"`
	Theme    models.Theme          `json:"theme"`
	History  []models.HistoryEntry `json:"history"`
}

// Session holds the lookup state for one user: the username being edited,
// the resident profile/repository pair, the history ledger and the theme.
// Every transition is mirrored into the Store. Methods are safe for
// concurrent use; network calls run outside the lock.
type Session struct {
	fetcher  Fetcher
	store    storage.Store
	notifier Notifier
	logger   *logrus.Logger
	now      func() time.Time

	mu       sync.Mutex
	username string
	state    models.State
	sortKey  SortKey
	theme    models.Theme
	history  *Ledger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithClock overrides the time source used to stamp history entries
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates an idle session. Call Rehydrate to restore persisted state.
func NewSession(fetcher Fetcher, store storage.Store, notifier Notifier, logger *logrus.Logger, opts ...SessionOption) *Session {
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	s := &Session{
		fetcher:  fetcher,
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		state:    models.Idle(),
		theme:    models.ThemeLight,
		history:  NewLedger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rehydrate restores username, theme, history and the last result from the
// store. A record that cannot be decoded puts the session in the error state
// and is left in storage untouched.
func (s *Session) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, err := s.get(ctx, storage.KeyUsername); err == nil {
		s.username = v
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.logger.WithError(err).Warn("Failed to restore username")
	}

	if v, err := s.get(ctx, storage.KeyTheme); err == nil {
		s.theme = models.ParseTheme(v)
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.logger.WithError(err).Warn("Failed to restore theme")
	}

	var history []models.HistoryEntry
	if err := s.getJSON(ctx, storage.KeyHistory, &history); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return s.rehydrateFailed(storage.KeyHistory, err)
	}
	s.history = NewLedger(history)

	var profile models.Profile
	err := s.getJSON(ctx, storage.KeyProfile, &profile)
	if errors.Is(err, storage.ErrNotFound) {
		s.state = models.Idle()
		return nil
	}
	if err != nil {
		return s.rehydrateFailed(storage.KeyProfile, err)
	}

	repos := []models.Repository{}
	if err := s.getJSON(ctx, storage.KeyRepos, &repos); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return s.rehydrateFailed(storage.KeyRepos, err)
	}

	s.state = models.Succeeded(models.Result{Profile: profile, Repositories: repos})
	s.sortKey = ""
	s.logger.WithFields(logrus.Fields{
		"username": profile.Username,
		"repos":    len(repos),
		"history":  s.history.Len(),
	}).Debug("Rehydrated session from storage")
	return nil
}

func (s *Session) rehydrateFailed(key string, err error) error {
	s.logger.WithError(err).WithField("key", key).Error("Failed to restore persisted state")
	s.state = models.Failed(apperrors.MsgLookupFailed)
	return apperrors.NewStorageError(fmt.Sprintf("failed to restore %s", key), err)
}

// SetUsername records a username edit: the previous result and error are
// dropped and the raw input is persisted.
func (s *Session) SetUsername(ctx context.Context, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = raw
	s.state = models.Idle()
	s.sortKey = ""
	s.set(ctx, storage.KeyUsername, raw)
}

// Submit looks up the current username: profile first, then repositories.
// Either failure leaves the session in the error state with an empty
// repository list and returns a LOOKUP_FAILED error, or RATE_LIMIT when
// GitHub refused the request for quota.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	username := utils.NormalizeUsername(s.username)
	if username == "" {
		s.mu.Unlock()
		return apperrors.NewValidationError("username cannot be empty", nil)
	}
	s.state = models.Loading()
	s.mu.Unlock()

	logger := s.logger.WithField("username", username)
	logger.Info("Looking up GitHub user")

	result, err := s.fetch(ctx, username)
	if err != nil {
		logger.WithError(err).Warn("GitHub lookup failed")

		s.mu.Lock()
		s.state = models.Failed(apperrors.MsgLookupFailed)
		s.sortKey = ""
		s.mu.Unlock()

		s.notify(models.NotificationError, apperrors.MsgLookupFailedToast)
		if github.IsRateLimitError(err) {
			return apperrors.NewRateLimitError(apperrors.MsgRateLimited, err)
		}
		return apperrors.NewLookupFailedError(username, err)
	}

	s.mu.Lock()
	s.state = models.Succeeded(*result)
	s.sortKey = SortBySize
	s.set(ctx, storage.KeyProfile, mustJSON(result.Profile))
	s.set(ctx, storage.KeyRepos, mustJSON(result.Repositories))
	if s.history.Append(models.HistoryEntry{Profile: result.Profile, SearchedAt: s.now()}) {
		s.set(ctx, storage.KeyHistory, mustJSON(s.history.Entries()))
	}
	s.mu.Unlock()

	logger.WithField("repos", len(result.Repositories)).Info("GitHub lookup succeeded")
	s.notify(models.NotificationSuccess, fmt.Sprintf("Successfully searched for %s", username))
	return nil
}

// Search is SetUsername followed by Submit.
func (s *Session) Search(ctx context.Context, username string) error {
	s.SetUsername(ctx, username)
	return s.Submit(ctx)
}

func (s *Session) fetch(ctx context.Context, username string) (*models.Result, error) {
	if !utils.IsValidUsername(username) {
		return nil, fmt.Errorf("invalid username %q", username)
	}

	profile, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	repos, err := s.fetcher.FetchRepositories(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetch repositories: %w", err)
	}
	if repos == nil {
		repos = []models.Repository{}
	}

	return &models.Result{
		Profile:      *profile,
		Repositories: SortRepositories(repos, SortBySize),
	}, nil
}

// Sort reorders the resident repository list by key and persists the order.
// An unknown key changes nothing and returns a validation error.
func (s *Session) Sort(ctx context.Context, key string) error {
	sortKey, err := ParseSortKey(key)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), err)
	}

	s.mu.Lock()
	if s.state.Status != models.StatusSuccess {
		s.mu.Unlock()
		return apperrors.NewNotFoundError("no repositories loaded", nil)
	}
	sorted := SortRepositories(s.state.Result.Repositories, sortKey)
	s.state = models.Succeeded(models.Result{Profile: s.state.Result.Profile, Repositories: sorted})
	s.sortKey = sortKey
	s.set(ctx, storage.KeyRepos, mustJSON(sorted))
	s.mu.Unlock()

	s.notify(models.NotificationSuccess, fmt.Sprintf("Sorted by %s", sortKey))
	return nil
}

// ClearHistory removes the persisted history record, then empties the
// ledger. When the record cannot be removed the ledger is kept.
func (s *Session) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	err := s.store.Remove(ctx, storage.KeyHistory)
	if err == nil {
		s.history.Clear()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.WithError(err).Error("Failed to remove persisted history")
		return apperrors.NewStorageError("failed to clear history", err)
	}

	s.notify(models.NotificationSuccess, "History cleared successfully")
	return nil
}

// RecentHistory returns the entries shown in the history view, newest first.
func (s *Session) RecentHistory() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Recent(HistoryDisplayLimit)
}

// ToggleTheme flips between light and dark and persists the choice.
func (s *Session) ToggleTheme(ctx context.Context) models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = s.theme.Toggle()
	s.set(ctx, storage.KeyTheme, string(s.theme))
	return s.theme
}

// State returns the current lookup state.
func (s *Session) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// View returns a copy of everything a front end renders.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Username: s.username,
		State:    copyState(s.state),
		SortKey:  s.sortKey,
		Theme:    s.theme,
		History:  s.history.Recent(HistoryDisplayLimit),
	}
}

func copyState(st models.State) models.State {
	if st.Result == nil {
		return st
	}
	repos := make([]models.Repository, len(st.Result.Repositories))
	copy(repos, st.Result.Repositories)
	return models.Succeeded(models.Result{Profile: st.Result.Profile, Repositories: repos})
}

func (s *Session) notify(level models.NotificationLevel, message string) {
	s.notifier.Notify(models.NewNotification(level, message))
}

func (s *Session) get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, key)
}

func (s *Session) getJSON(ctx context.Context, key string, v interface{}) error {
	raw, err := s.get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// set writes a record. Failures are logged; the session keeps working on
// its in-memory state.
func (s *Session) set(ctx context.Context, key, value string) {
	if err := s.store.Set(ctx, key, value); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to persist record")
	}
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("lookup: marshal %T: %v", v, err))
	}
	return string(data)
}
