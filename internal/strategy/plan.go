package strategy

import (
	"maps"
	"path/filepath"
	"strings"

	"mdload/internal/domain/command"
	"mdload/internal/domain/consts"
	"mdload/internal/models"
)

// BuildPlan derives the download plan for an entry of the given kind.
// The result depends only on its inputs.
func BuildPlan(e *models.MediaEntry, kind models.Kind, req *models.MediaRequest) *models.DownloadPlan {
	base := filepath.Join(req.OutputDir, OutputBaseName(e))

	plan := &models.DownloadPlan{
		Kind:           kind,
		EntryID:        e.ID,
		EntryTitle:     e.Name(),
		URL:            e.Target(),
		OutputTemplate: escapeTemplate(base) + command.ExtSuffix,
		Verbose:        req.Verbose,
		CookieFile:     req.CookieFile,
		Username:       req.Username,
		Password:       req.Password,
	}
	if len(req.Headers) > 0 {
		plan.Headers = maps.Clone(req.Headers)
	}

	switch kind {
	case models.KindAudioExtract:
		plan.FormatSelector = command.SelectAudio
		plan.FinalPath = base + "." + consts.CodecMP3
		plan.PostProcessing = models.PostProcessing{
			TargetCodec:       consts.CodecMP3,
			TargetBitrateKbps: audioBitrate(req),
			Transcode:         true,
		}
	default:
		plan.FormatSelector = command.SelectVideoMux
		plan.FinalPath = base + "." + consts.ContainerMP4
		plan.PostProcessing = models.PostProcessing{
			TargetContainer: consts.ContainerMP4,
			Remux:           true,
		}
	}
	return plan
}

func audioBitrate(req *models.MediaRequest) int {
	if req.AudioBitrateKbps <= 0 {
		return consts.DefaultAudioBitrateKbps
	}
	return req.AudioBitrateKbps
}

// escapeTemplate makes a literal path safe inside a yt-dlp output template.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
