package models

import "time"

// Download statuses persisted to history.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// HistoryRecord is one persisted entry outcome.
type HistoryRecord struct {
	ID        int64
	RunID     string
	EntryID   string
	URL       string
	Title     string
	Kind      string
	FilePath  string
	FileSize  int64
	Status    string
	Error     string
	CreatedAt time.Time
}
