package strategy

import (
	"slices"
	"strings"

	"mdload/internal/domain/consts"
	"mdload/internal/domain/errconsts"
	"mdload/internal/models"
)

// Classify picks the download strategy for an entry.
//
// Any combined format, or separate video and audio streams, means VideoMux.
// Video without any audio is still VideoMux. Audio alone means AudioExtract.
func Classify(e *models.MediaEntry) (models.Kind, error) {
	if e == nil {
		return 0, errconsts.UnsupportedMedia("entry passed in nil")
	}

	formats := e.Formats
	if len(formats) == 0 {
		formats = fallbackFormats(e)
	}

	var video, audio bool
	for i := range formats {
		f := &formats[i]
		if f.Combined() {
			return models.KindVideoMux, nil
		}
		video = video || f.HasVideo
		audio = audio || f.HasAudio
	}

	switch {
	case video:
		return models.KindVideoMux, nil
	case audio:
		return models.KindAudioExtract, nil
	default:
		return 0, errconsts.UnsupportedMedia("no playable stream found for %q", e.Name())
	}
}

// DetectStreams infers stream presence from yt-dlp codec fields.
// "none" means absent. An empty codec falls back to the container extension
// and, for video, to known dimensions.
func DetectStreams(vcodec, acodec, ext string, width, height int) (hasVideo, hasAudio bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	videoExt := slices.Contains(consts.AllVidExtensions, "."+ext)
	audioExt := slices.Contains(consts.AllAudioExtensions, "."+ext)

	switch vcodec {
	case consts.CodecNone:
		hasVideo = false
	case "":
		hasVideo = videoExt || width > 0 || height > 0
	default:
		hasVideo = true
	}

	switch acodec {
	case consts.CodecNone:
		hasAudio = false
	case "":
		hasAudio = audioExt || videoExt
	default:
		hasAudio = true
	}
	return hasVideo, hasAudio
}

// fallbackFormats builds a single descriptor from an entry's top-level hints.
func fallbackFormats(e *models.MediaEntry) []models.Format {
	hasVideo, hasAudio := DetectStreams(e.VCodec, e.ACodec, e.Ext, e.Width, e.Height)
	if e.IsLive && !hasVideo && !hasAudio {
		hasVideo, hasAudio = true, true
	}
	if !hasVideo && !hasAudio {
		return nil
	}
	return []models.Format{{
		Ext:      e.Ext,
		VCodec:   e.VCodec,
		ACodec:   e.ACodec,
		HasVideo: hasVideo,
		HasAudio: hasAudio,
		Height:   e.Height,
	}}
}
