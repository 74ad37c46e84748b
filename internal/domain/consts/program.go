// Package consts holds program-wide constants.
package consts

// Program names and files.
const (
	ProgramName     = "mdload"
	HomeProgDir     = ".mdload"
	HistoryDBFile   = "history.db"
	LogFile         = "mdload.log"
	DefaultOutDir   = "downloads"
	UntitledEntry   = "untitled"
	DefaultLogLevel = 0
	VerboseLogLevel = 1
	MaxLogLevel     = 5
)

// LegalNotice is printed before any download begins.
const LegalNotice = "WARNING: you declare that you have the right to download the content at this URL.\n" +
	"Do not use this tool to bypass DRM, paywalls or to download protected content without authorization."

// Audio extraction.
const (
	DefaultAudioBitrateKbps = 192
	MinAudioBitrateKbps     = 32
	MaxAudioBitrateKbps     = 320
)

// Output containers and codecs.
const (
	ContainerMP4 = "mp4"
	CodecMP3     = "mp3"
)

// Filename limits.
const (
	MaxFilenameBytes = 180
)

// History listing.
const (
	DefaultHistoryLimit = 20
)
