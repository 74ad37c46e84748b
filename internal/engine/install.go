package engine

import (
	"context"
	"fmt"

	"mdload/internal/utils/logging"

	"github.com/lrstanley/go-ytdlp"
)

// Install fetches yt-dlp, ffmpeg and ffprobe into go-ytdlp's cache directory
// when they are not already available.
func Install(ctx context.Context) error {
	logging.I("Installing yt-dlp...")
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}

	logging.I("Installing ffmpeg...")
	if _, err := ytdlp.InstallFFmpeg(ctx, nil); err != nil {
		return fmt.Errorf("failed to install ffmpeg: %w", err)
	}

	logging.I("Installing ffprobe...")
	if _, err := ytdlp.InstallFFprobe(ctx, nil); err != nil {
		return fmt.Errorf("failed to install ffprobe: %w", err)
	}

	logging.S("Tools installed successfully")
	return nil
}
