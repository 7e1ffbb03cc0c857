package models

import "time"

// HistoryEntry is a profile snapshot taken when a search succeeded.
type HistoryEntry struct {
	Profile
	SearchedAt time.Time `json:"searched_at,omitempty"`
}
