// Package keys holds various keys for software operations, such as terminal input keys and internal Viper keys.
package keys

// Files and directories.
const (
	OutputDir   string = "outdir"
	ConfigFile  string = "config"
	HistoryFile string = "history"
)

// Confirmation and output.
const (
	AutoConfirm string = "yes"
	Verbose     string = "verbose"
	DebugLevel  string = "debug"
	DryRun      string = "dry-run"
)

// Auth.
const (
	CookieFile     string = "cookies"
	BrowserCookies string = "browser-cookies"
	AuthUsername   string = "username"
	AuthPassword   string = "password"
	Headers        string = "headers"
)

// Downloading.
const (
	AudioBitrate   string = "audio-bitrate"
	FromDate       string = "from-date"
	ToDate         string = "to-date"
	SkipDownloaded string = "skip-downloaded"
	YTDLPPath      string = "ytdlp-path"
)

// History listing.
const (
	HistoryLimit string = "limit"
)
