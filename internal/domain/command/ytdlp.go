// Package command holds yt-dlp argument and template constants.
package command

// General
const (
	AfterMovePath     = "after_move:filepath"
	AddHeader         = "--add-header"
	CookiePath        = "--cookies"
	FlatPlaylist      = "--flat-playlist"
	Format            = "-f"
	MergeOutputFormat = "--merge-output-format"
	NoPlaylist        = "--no-playlist"
	NoWarnings        = "--no-warnings"
	Output            = "-o"
	Password          = "--password"
	Print             = "--print"
	Quiet             = "--quiet"
	Username          = "--username"
	Verbose           = "--verbose"
	YTDLP             = "yt-dlp"
)

// Post-processing
const (
	ExtractAudio = "--extract-audio"
	AudioFormat  = "--audio-format"
	AudioQuality = "--audio-quality"
	RemuxVideo   = "--remux-video"
)

// JSON only
const (
	SkipDownload = "--skip-download"
	PrintJSON    = "--print-json"
)

// Format selectors.
const (
	SelectVideoMux = "bestvideo+bestaudio/best"
	SelectAudio    = "bestaudio/best"
)

// Output templates.
const (
	ExtSuffix = ".%(ext)s"
)
