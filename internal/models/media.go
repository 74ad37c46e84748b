package models

import "time"

// Format describes one stream variant offered for an entry.
type Format struct {
	ID          string
	Ext         string
	VCodec      string
	ACodec      string
	HasVideo    bool
	HasAudio    bool
	Height      int
	BitrateKbps float64
}

// Combined reports whether the format carries both video and audio.
func (f *Format) Combined() bool {
	return f.HasVideo && f.HasAudio
}

// VideoOnly reports whether the format carries video without audio.
func (f *Format) VideoOnly() bool {
	return f.HasVideo && !f.HasAudio
}

// AudioOnly reports whether the format carries audio without video.
func (f *Format) AudioOnly() bool {
	return f.HasAudio && !f.HasVideo
}

// MediaEntry is one resolvable item, either a single asset or one element of a playlist.
type MediaEntry struct {
	ID         string
	Title      string
	URL        string
	UploadDate time.Time
	Formats    []Format

	// Top-level hints, used when no format list is exposed.
	Ext    string
	VCodec string
	ACodec string
	Width  int
	Height int
	IsLive bool

	// Detailed is false for flat playlist items that still need inspection.
	Detailed bool
}

// Name returns the entry's display name.
func (e *MediaEntry) Name() string {
	switch {
	case e.Title != "":
		return e.Title
	case e.ID != "":
		return e.ID
	default:
		return e.URL
	}
}

// Target returns the URL (or ID fallback) handed to the engine.
func (e *MediaEntry) Target() string {
	if e.URL != "" {
		return e.URL
	}
	return e.ID
}
