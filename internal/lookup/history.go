package lookup

import (
	"strings"

	"github.com/Kamar-Folarin/git-search/internal/models"
)

// HistoryDisplayLimit is how many entries the history view shows.
const HistoryDisplayLimit = 5

// Ledger is the list of past successful searches in insertion order,
// unique by username. It is not safe for concurrent use; Session guards it.
type Ledger struct {
	entries []models.HistoryEntry
}

func NewLedger(entries []models.HistoryEntry) *Ledger {
	l := &Ledger{}
	for _, e := range entries {
		l.Append(e)
	}
	return l
}

// Append adds e unless an entry with the same username exists. Usernames
// compare case-insensitively, like GitHub logins.
func (l *Ledger) Append(e models.HistoryEntry) bool {
	if l.Contains(e.Username) {
		return false
	}
	l.entries = append(l.entries, e)
	return true
}

func (l *Ledger) Contains(username string) bool {
	for _, e := range l.entries {
		if strings.EqualFold(e.Username, username) {
			return true
		}
	}
	return false
}

func (l *Ledger) Clear() {
	l.entries = nil
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of every entry, oldest first.
func (l *Ledger) Entries() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Recent returns up to n entries, newest first.
func (l *Ledger) Recent(n int) []models.HistoryEntry {
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]models.HistoryEntry, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}
