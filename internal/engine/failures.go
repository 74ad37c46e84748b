package engine

import (
	"strings"

	"mdload/internal/domain/errconsts"
)

// Markers yt-dlp prints when its ffmpeg post-processing stage fails.
var transcodeMarkers = []string{
	"postprocessing:",
	"ffmpeg not found",
	"ffprobe not found",
	"ffmpeg is not installed",
	"ffprobe and ffmpeg not found",
	"conversion failed",
	"unable to remux",
	"audio conversion failed",
	"error merging",
}

// classifyDownloadFailure maps a failed yt-dlp download to the error taxonomy.
func classifyDownloadFailure(stderr string, runErr error) error {
	msg := failureMessage(stderr, runErr)
	lower := strings.ToLower(stderr + "\n" + msg)

	for _, m := range transcodeMarkers {
		if strings.Contains(lower, m) {
			return errconsts.Transcode("%s", msg)
		}
	}
	return errconsts.EngineExecution("%s", msg)
}

// failureMessage prefers yt-dlp's last "ERROR:" line over the bare exit status.
func failureMessage(stderr string, runErr error) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if msg, ok := strings.CutPrefix(line, "ERROR:"); ok {
			return strings.TrimSpace(msg)
		}
	}
	if runErr != nil {
		return runErr.Error()
	}
	if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
		return last
	}
	return "yt-dlp exited without output"
}

// lastLine returns the last non-empty line of out.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
