package consts

// Video files
var (
	AllVidExtensions = []string{".3gp", ".avi", ".f4v", ".flv", ".m4v", ".mkv",
		".mov", ".mp4", ".mpeg", ".mpg", ".ogm", ".ogv",
		".ts", ".vob", ".webm", ".wmv"}
)

// Audio files
var (
	AllAudioExtensions = []string{".aac", ".flac", ".m4a", ".mka", ".mp3",
		".oga", ".ogg", ".opus", ".wav", ".weba", ".wma"}
)

// CodecNone is yt-dlp's marker for an absent stream.
const CodecNone = "none"
