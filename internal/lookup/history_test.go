package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kamar-Folarin/git-search/internal/models"
)

func entry(username string) models.HistoryEntry {
	return models.HistoryEntry{Profile: models.Profile{Username: username}}
}

func TestLedger_AppendDeduplicates(t *testing.T) {
	l := NewLedger(nil)

	assert.True(t, l.Append(entry("octocat")))
	assert.False(t, l.Append(entry("octocat")))
	assert.False(t, l.Append(entry("OctoCat")))
	assert.True(t, l.Append(entry("mojombo")))

	assert.Equal(t, 2, l.Len())
}

func TestNewLedger_DropsDuplicatesFromStorage(t *testing.T) {
	l := NewLedger([]models.HistoryEntry{entry("a"), entry("b"), entry("a")})
	assert.Equal(t, 2, l.Len())
}

func TestLedger_RecentNewestFirst(t *testing.T) {
	l := NewLedger(nil)
	for _, u := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"} {
		l.Append(entry(u))
	}

	recent := l.Recent(HistoryDisplayLimit)

	var got []string
	for _, e := range recent {
		got = append(got, e.Username)
	}
	assert.Equal(t, []string{"u7", "u6", "u5", "u4", "u3"}, got)
	assert.Equal(t, 7, l.Len())
}

func TestLedger_RecentShortList(t *testing.T) {
	l := NewLedger([]models.HistoryEntry{entry("a"), entry("b")})
	recent := l.Recent(HistoryDisplayLimit)
	assert.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].Username)
}

func TestLedger_Clear(t *testing.T) {
	l := NewLedger([]models.HistoryEntry{entry("a")})
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Recent(HistoryDisplayLimit))
	assert.True(t, l.Append(entry("a")))
}
