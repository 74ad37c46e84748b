package models

import "time"

// MediaRequest is the immutable input for one run.
type MediaRequest struct {
	URL         string
	OutputDir   string
	AutoConfirm bool

	Verbose        bool
	DryRun         bool
	SkipDownloaded bool

	CookieFile string
	Username   string
	Password   string
	Headers    map[string]string

	AudioBitrateKbps int

	FromDate time.Time
	ToDate   time.Time
}

// InDateRange reports whether an upload date falls within the request's bounds.
// Unknown dates and unset bounds always pass.
func (r *MediaRequest) InDateRange(uploaded time.Time) bool {
	if uploaded.IsZero() {
		return true
	}
	if !r.FromDate.IsZero() && uploaded.Before(r.FromDate) {
		return false
	}
	if !r.ToDate.IsZero() && uploaded.After(r.ToDate) {
		return false
	}
	return true
}
