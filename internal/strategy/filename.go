package strategy

import (
	"strings"
	"unicode/utf8"

	"mdload/internal/domain/consts"
	"mdload/internal/models"
)

const invalidFilenameChars = `<>:"/\|?*`

var windowsReserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// OutputBaseName returns "<title> - <id>" for an entry, sanitized, without extension.
func OutputBaseName(e *models.MediaEntry) string {
	title := SanitizeFilename(e.Name())
	if e.ID == "" || e.ID == e.Name() {
		return title
	}
	return title + " - " + SanitizeFilename(e.ID)
}

// SanitizeFilename turns arbitrary text into a single safe path component.
func SanitizeFilename(s string) string {
	s = strings.ToValidUTF8(s, "_")
	s = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return ' '
		case strings.ContainsRune(invalidFilenameChars, r):
			return '_'
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")

	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", ".")
	}
	s = strings.Trim(s, " .")
	s = strings.Trim(truncateBytes(s, consts.MaxFilenameBytes), " .")

	if s == "" {
		return consts.UntitledEntry
	}

	stem, _, _ := strings.Cut(s, ".")
	if windowsReserved[strings.ToUpper(stem)] {
		s = "_" + s
	}
	return s
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
