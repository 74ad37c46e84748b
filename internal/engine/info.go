package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mdload/internal/models"
	"mdload/internal/strategy"
)

// yt-dlp result types that still need a full extraction.
const (
	typeURL            = "url"
	typeURLTransparent = "url_transparent"
	typePlaylist       = "playlist"
	typeMultiVideo     = "multi_video"
)

// info is the subset of yt-dlp's info JSON this tool reads.
type info struct {
	Type        string   `json:"_type"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	WebpageURL  string   `json:"webpage_url"`
	OriginalURL string   `json:"original_url"`
	UploadDate  string   `json:"upload_date"`
	Ext         string   `json:"ext"`
	VCodec      string   `json:"vcodec"`
	ACodec      string   `json:"acodec"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	IsLive      bool     `json:"is_live"`
	Formats     []format `json:"formats"`
	Entries     []*info  `json:"entries"`
}

type format struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	VCodec   string  `json:"vcodec"`
	ACodec   string  `json:"acodec"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	TBR      float64 `json:"tbr"`
	ABR      float64 `json:"abr"`
	VBR      float64 `json:"vbr"`
}

// parseInfoLines decodes one info JSON object per line, flattening nested playlists.
func parseInfoLines(out string) ([]*models.MediaEntry, error) {
	var entries []*models.MediaEntry

	scanner := bufio.NewScanner(strings.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "{") {
			continue
		}

		var in info
		if err := json.Unmarshal([]byte(line), &in); err != nil {
			return nil, fmt.Errorf("failed to decode yt-dlp info JSON: %w", err)
		}
		entries = appendEntries(entries, &in)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return entries, nil
}

func appendEntries(dst []*models.MediaEntry, in *info) []*models.MediaEntry {
	if in.Type == typePlaylist || in.Type == typeMultiVideo || len(in.Entries) > 0 {
		for _, child := range in.Entries {
			if child != nil {
				dst = appendEntries(dst, child)
			}
		}
		return dst
	}
	return append(dst, in.toEntry())
}

func (in *info) toEntry() *models.MediaEntry {
	e := &models.MediaEntry{
		ID:       in.ID,
		Title:    in.Title,
		URL:      firstNonEmpty(in.WebpageURL, in.URL, in.OriginalURL),
		Ext:      in.Ext,
		VCodec:   in.VCodec,
		ACodec:   in.ACodec,
		Width:    int(in.Width),
		Height:   int(in.Height),
		IsLive:   in.IsLive,
		Detailed: in.Type != typeURL && in.Type != typeURLTransparent,
	}

	if in.UploadDate != "" {
		if t, err := time.Parse("20060102", in.UploadDate); err == nil {
			e.UploadDate = t
		}
	}

	if len(in.Formats) > 0 {
		e.Formats = make([]models.Format, 0, len(in.Formats))
		for _, f := range in.Formats {
			e.Formats = append(e.Formats, f.toFormat())
		}
	}
	return e
}

func (f *format) toFormat() models.Format {
	hasVideo, hasAudio := strategy.DetectStreams(f.VCodec, f.ACodec, f.Ext, int(f.Width), int(f.Height))

	bitrate := f.TBR
	switch {
	case hasAudio && !hasVideo && f.ABR > 0:
		bitrate = f.ABR
	case hasVideo && !hasAudio && f.VBR > 0:
		bitrate = f.VBR
	}

	return models.Format{
		ID:          f.FormatID,
		Ext:         f.Ext,
		VCodec:      f.VCodec,
		ACodec:      f.ACodec,
		HasVideo:    hasVideo,
		HasAudio:    hasAudio,
		Height:      int(f.Height),
		BitrateKbps: bitrate,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
