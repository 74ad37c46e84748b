package models

// Kind is the download strategy chosen for an entry.
type Kind int

const (
	KindVideoMux Kind = iota
	KindAudioExtract
)

func (k Kind) String() string {
	switch k {
	case KindVideoMux:
		return "video"
	case KindAudioExtract:
		return "audio"
	default:
		return "unknown"
	}
}

// PostProcessing holds the directives passed to yt-dlp's ffmpeg post-processors.
type PostProcessing struct {
	TargetContainer   string // VideoMux: "mp4"
	TargetCodec       string // AudioExtract: "mp3"
	TargetBitrateKbps int    // AudioExtract only

	// Remux forces the final container even when yt-dlp picks a single
	// non-MP4 stream. yt-dlp leaves files already in the container untouched.
	Remux bool
	// Transcode pins the target bitrate. yt-dlp copies audio already in the
	// target codec instead of re-encoding it.
	Transcode bool
}

// DownloadPlan is the complete instruction set for one entry.
type DownloadPlan struct {
	Kind           Kind
	EntryID        string
	EntryTitle     string
	URL            string
	FormatSelector string
	OutputTemplate string
	FinalPath      string
	PostProcessing PostProcessing

	// Request-level engine options.
	Verbose    bool
	CookieFile string
	Username   string
	Password   string
	Headers    map[string]string
}
