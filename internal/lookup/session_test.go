package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kamar-Folarin/git-search/internal/errors"
	"github.com/Kamar-Folarin/git-search/internal/github"
	"github.com/Kamar-Folarin/git-search/internal/logging"
	"github.com/Kamar-Folarin/git-search/internal/models"
	"github.com/Kamar-Folarin/git-search/internal/storage"
)

// MockFetcher is a mock implementation of Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchProfile(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockFetcher) FetchRepositories(ctx context.Context, username string) ([]models.Repository, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Repository), args.Error(1)
}

// failingStore rejects every write.
type failingStore struct {
	*storage.MemoryStore
}

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func (failingStore) Remove(context.Context, string) error { return errors.New("disk full") }

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func octocat() *models.Profile {
	return &models.Profile{
		AvatarURL:  "https://avatars.githubusercontent.com/u/583231?v=4",
		Name:       strPtr("The Octocat"),
		Username:   "octocat",
		Location:   strPtr("San Francisco"),
		Followers:  10,
		Following:  5,
		ProfileURL: "https://github.com/octocat",
	}
}

func setupSession(t *testing.T) (*Session, *MockFetcher, *storage.MemoryStore, *Feed) {
	fetcher := new(MockFetcher)
	store := storage.NewMemoryStore()
	feed := NewFeed(20)
	s := NewSession(fetcher, store, feed, logging.Discard(), WithClock(func() time.Time { return fixedNow }))
	return s, fetcher, store, feed
}

func expectLookup(f *MockFetcher, profile *models.Profile, repos []models.Repository) {
	f.On("FetchProfile", mock.Anything, profile.Username).Return(profile, nil).Once()
	f.On("FetchRepositories", mock.Anything, profile.Username).Return(repos, nil).Once()
}

func storedJSON(t *testing.T, store storage.Store, key string, v interface{}) {
	t.Helper()
	raw, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(raw), v))
}

func TestSession_SubmitSuccess(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, feed := setupSession(t)
	expectLookup(fetcher, octocat(), testRepos())

	require.NoError(t, s.Search(ctx, "octocat"))

	state := s.State()
	assert.Equal(t, models.StatusSuccess, state.Status)
	assert.Empty(t, state.Err)
	assert.Equal(t, *octocat(), *state.Profile())
	assert.Equal(t, []string{"Alpha", "gamma", "beta"}, names(state.Repositories()))
	assert.Equal(t, SortBySize, s.View().SortKey)

	var profile models.Profile
	storedJSON(t, store, storage.KeyProfile, &profile)
	assert.Equal(t, *octocat(), profile)

	var repos []models.Repository
	storedJSON(t, store, storage.KeyRepos, &repos)
	assert.Equal(t, []string{"Alpha", "gamma", "beta"}, names(repos))

	var history []models.HistoryEntry
	storedJSON(t, store, storage.KeyHistory, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "octocat", history[0].Username)
	assert.True(t, fixedNow.Equal(history[0].SearchedAt))

	username, err := store.Get(ctx, storage.KeyUsername)
	require.NoError(t, err)
	assert.Equal(t, "octocat", username)

	notifications := feed.Drain()
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationSuccess, notifications[0].Level)
	assert.Equal(t, "Successfully searched for octocat", notifications[0].Message)

	fetcher.AssertExpectations(t)
}

func TestSession_SubmitUnknownUser(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, feed := setupSession(t)
	fetcher.On("FetchProfile", mock.Anything, "ghost-user-404").Return(nil, errors.New("user not found: ghost-user-404"))

	err := s.Search(ctx, "ghost-user-404")

	require.Error(t, err)
	assert.True(t, apperrors.IsLookupFailed(err))

	state := s.State()
	assert.Equal(t, models.StatusError, state.Status)
	assert.Equal(t, "User not found, please enter a valid username", state.Err)
	assert.Empty(t, state.Repositories())
	assert.Nil(t, state.Profile())

	notifications := feed.Drain()
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationError, notifications[0].Level)
	assert.Equal(t, "Github username not found", notifications[0].Message)

	fetcher.AssertNotCalled(t, "FetchRepositories", mock.Anything, mock.Anything)
	_, err = store.Get(ctx, storage.KeyProfile)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Get(ctx, storage.KeyHistory)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSession_SubmitRepositoryFailure(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, _ := setupSession(t)
	fetcher.On("FetchProfile", mock.Anything, "octocat").Return(octocat(), nil)
	fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(nil, errors.New("boom"))

	err := s.Search(ctx, "octocat")

	assert.True(t, apperrors.IsLookupFailed(err))
	assert.Equal(t, models.StatusError, s.State().Status)
	_, err = store.Get(ctx, storage.KeyProfile)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSession_SubmitEmptyUsername(t *testing.T) {
	s, fetcher, _, feed := setupSession(t)

	err := s.Search(context.Background(), "   ")

	assert.True(t, apperrors.IsInvalidInput(err))
	assert.Equal(t, models.StatusIdle, s.State().Status)
	assert.Empty(t, feed.Drain())
	fetcher.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
}

func TestSession_SubmitMalformedUsernameSkipsNetwork(t *testing.T) {
	s, fetcher, _, _ := setupSession(t)

	err := s.Search(context.Background(), "not a user")

	assert.True(t, apperrors.IsLookupFailed(err))
	assert.Equal(t, apperrors.MsgLookupFailed, s.State().Err)
	fetcher.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
}

func TestSession_SubmitNormalizesInput(t *testing.T) {
	s, fetcher, _, _ := setupSession(t)
	expectLookup(fetcher, octocat(), nil)

	require.NoError(t, s.Search(context.Background(), " https://github.com/octocat "))

	assert.NotNil(t, s.State().Repositories())
	fetcher.AssertExpectations(t)
}

func TestSession_HistoryNeverDuplicates(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, _ := setupSession(t)

	mojombo := &models.Profile{Username: "mojombo"}
	expectLookup(fetcher, octocat(), testRepos())
	expectLookup(fetcher, mojombo, nil)
	expectLookup(fetcher, octocat(), testRepos())

	require.NoError(t, s.Search(ctx, "octocat"))
	require.NoError(t, s.Search(ctx, "mojombo"))
	require.NoError(t, s.Search(ctx, "octocat"))

	var history []models.HistoryEntry
	storedJSON(t, store, storage.KeyHistory, &history)
	assert.Len(t, history, 2)

	recent := s.RecentHistory()
	require.Len(t, recent, 2)
	assert.Equal(t, "mojombo", recent[0].Username)
	assert.Equal(t, "octocat", recent[1].Username)
}

func TestSession_SetUsernameClearsResult(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, _ := setupSession(t)
	expectLookup(fetcher, octocat(), testRepos())
	require.NoError(t, s.Search(ctx, "octocat"))

	s.SetUsername(ctx, "octo")

	view := s.View()
	assert.Equal(t, "octo", view.Username)
	assert.Equal(t, models.StatusIdle, view.State.Status)
	assert.Empty(t, view.State.Repositories())

	raw, err := store.Get(ctx, storage.KeyUsername)
	require.NoError(t, err)
	assert.Equal(t, "octo", raw)
}

func TestSession_Sort(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, feed := setupSession(t)
	expectLookup(fetcher, octocat(), []models.Repository{
		{Name: "a", ForksCount: 3, Size: 1},
		{Name: "b", ForksCount: 1, Size: 3},
		{Name: "c", ForksCount: 2, Size: 2},
	})
	require.NoError(t, s.Search(ctx, "octocat"))
	feed.Drain()

	require.NoError(t, s.Sort(ctx, "forks"))

	repos := s.State().Repositories()
	assert.Equal(t, []int{3, 2, 1}, []int{repos[0].ForksCount, repos[1].ForksCount, repos[2].ForksCount})
	assert.Equal(t, SortByForks, s.View().SortKey)

	var stored []models.Repository
	storedJSON(t, store, storage.KeyRepos, &stored)
	assert.Equal(t, []string{"a", "c", "b"}, names(stored))

	notifications := feed.Drain()
	require.Len(t, notifications, 1)
	assert.Equal(t, "Sorted by forks", notifications[0].Message)

	require.NoError(t, s.Sort(ctx, "forks"))
	assert.Equal(t, repos, s.State().Repositories())
}

func TestSession_SortUnknownKeyIsNoOp(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, feed := setupSession(t)
	expectLookup(fetcher, octocat(), testRepos())
	require.NoError(t, s.Search(ctx, "octocat"))
	feed.Drain()
	before, _ := store.Get(ctx, storage.KeyRepos)

	err := s.Sort(ctx, "sort")

	assert.True(t, apperrors.IsInvalidInput(err))
	assert.Equal(t, []string{"Alpha", "gamma", "beta"}, names(s.State().Repositories()))
	after, _ := store.Get(ctx, storage.KeyRepos)
	assert.Equal(t, before, after)
	assert.Empty(t, feed.Drain())
}

func TestSession_SortWithoutResult(t *testing.T) {
	s, _, _, _ := setupSession(t)
	err := s.Sort(context.Background(), "name")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSession_ClearHistory(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, feed := setupSession(t)
	expectLookup(fetcher, octocat(), nil)
	require.NoError(t, s.Search(ctx, "octocat"))
	feed.Drain()

	require.NoError(t, s.ClearHistory(ctx))

	assert.Empty(t, s.RecentHistory())
	_, err := store.Get(ctx, storage.KeyHistory)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	notifications := feed.Drain()
	require.Len(t, notifications, 1)
	assert.Equal(t, "History cleared successfully", notifications[0].Message)

	reloaded := NewSession(fetcher, store, feed, logging.Discard())
	require.NoError(t, reloaded.Rehydrate(ctx))
	assert.Empty(t, reloaded.RecentHistory())
}

func TestSession_ClearHistoryStorageFailure(t *testing.T) {
	ctx := context.Background()
	seeded, fetcher, mem, _ := setupSession(t)
	expectLookup(fetcher, octocat(), nil)
	require.NoError(t, seeded.Search(ctx, "octocat"))

	feed := NewFeed(5)
	s := NewSession(new(MockFetcher), failingStore{mem}, feed, logging.Discard())
	require.NoError(t, s.Rehydrate(ctx))

	err := s.ClearHistory(ctx)

	assert.True(t, apperrors.IsStorage(err))
	recent := s.RecentHistory()
	require.Len(t, recent, 1)
	assert.Equal(t, "octocat", recent[0].Username)
	assert.Empty(t, feed.Drain())

	_, err = mem.Get(ctx, storage.KeyHistory)
	assert.NoError(t, err)
}

func TestSession_SubmitRateLimited(t *testing.T) {
	s, fetcher, _, feed := setupSession(t)
	fetcher.On("FetchProfile", mock.Anything, "octocat").
		Return(nil, github.NewRateLimitError(fixedNow.Add(time.Hour), 60, 0))

	err := s.Search(context.Background(), "octocat")

	assert.True(t, apperrors.IsRateLimit(err))
	assert.False(t, apperrors.IsLookupFailed(err))
	state := s.State()
	assert.Equal(t, models.StatusError, state.Status)
	assert.Equal(t, apperrors.MsgLookupFailed, state.Err)
	assert.Empty(t, state.Repositories())

	notifications := feed.Drain()
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationError, notifications[0].Level)
}

func TestSession_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, _ := setupSession(t)
	fetcher.On("FetchProfile", mock.Anything, "octocat").Return(octocat(), nil)
	fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(testRepos(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Search(ctx, "octocat"))
		}()
		go func() {
			defer wg.Done()
			// NotFound until the first search lands, or reset by a concurrent SetUsername.
			_ = s.Sort(ctx, "stars")
		}()
		go func() {
			defer wg.Done()
			view := s.View()
			assert.LessOrEqual(t, len(view.History), 1)
			assert.LessOrEqual(t, len(s.RecentHistory()), 1)
		}()
	}
	wg.Wait()

	require.Len(t, s.RecentHistory(), 1)
	var history []models.HistoryEntry
	storedJSON(t, store, storage.KeyHistory, &history)
	assert.Len(t, history, 1)
}

func TestSession_PersistFailureDoesNotFailLookup(t *testing.T) {
	fetcher := new(MockFetcher)
	expectLookup(fetcher, octocat(), testRepos())
	s := NewSession(fetcher, failingStore{storage.NewMemoryStore()}, NewFeed(5), logging.Discard())

	require.NoError(t, s.Search(context.Background(), "octocat"))
	assert.Equal(t, models.StatusSuccess, s.State().Status)
}

func TestSession_Rehydrate(t *testing.T) {
	ctx := context.Background()
	s, fetcher, store, _ := setupSession(t)
	expectLookup(fetcher, octocat(), testRepos())
	require.NoError(t, s.Search(ctx, "octocat"))
	require.NoError(t, s.Sort(ctx, "name"))
	s.ToggleTheme(ctx)

	reloaded := NewSession(new(MockFetcher), store, NewFeed(5), logging.Discard())
	require.NoError(t, reloaded.Rehydrate(ctx))

	view := reloaded.View()
	assert.Equal(t, "octocat", view.Username)
	assert.Equal(t, models.ThemeDark, view.Theme)
	assert.Equal(t, models.StatusSuccess, view.State.Status)
	assert.Equal(t, *octocat(), *view.State.Profile())
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, names(view.State.Repositories()))
	require.Len(t, view.History, 1)
}

func TestSession_RehydrateEmptyStore(t *testing.T) {
	s, _, _, _ := setupSession(t)

	require.NoError(t, s.Rehydrate(context.Background()))

	view := s.View()
	assert.Equal(t, models.StatusIdle, view.State.Status)
	assert.Equal(t, models.ThemeLight, view.Theme)
	assert.Empty(t, view.History)
}

func TestSession_RehydrateCorruptRecord(t *testing.T) {
	ctx := context.Background()
	s, _, store, _ := setupSession(t)
	require.NoError(t, store.Set(ctx, storage.KeyProfile, "{broken"))

	err := s.Rehydrate(ctx)

	assert.True(t, apperrors.IsStorage(err))
	state := s.State()
	assert.Equal(t, models.StatusError, state.Status)
	assert.Equal(t, apperrors.MsgLookupFailed, state.Err)

	raw, err := store.Get(ctx, storage.KeyProfile)
	require.NoError(t, err)
	assert.Equal(t, "{broken", raw)
}

func TestSession_ToggleTheme(t *testing.T) {
	ctx := context.Background()
	s, _, store, _ := setupSession(t)

	assert.Equal(t, models.ThemeDark, s.ToggleTheme(ctx))
	assert.Equal(t, models.ThemeLight, s.ToggleTheme(ctx))

	raw, err := store.Get(ctx, storage.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", raw)
}

func TestSession_ViewIsACopy(t *testing.T) {
	ctx := context.Background()
	s, fetcher, _, _ := setupSession(t)
	expectLookup(fetcher, octocat(), testRepos())
	require.NoError(t, s.Search(ctx, "octocat"))

	view := s.View()
	view.State.Result.Repositories[0].Name = "mutated"

	assert.Equal(t, "Alpha", s.State().Repositories()[0].Name)
}
