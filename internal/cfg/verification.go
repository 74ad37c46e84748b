package cfg

import (
	"fmt"
	"os"
	"strings"

	"mdload/internal/domain/consts"
	"mdload/internal/domain/keys"
	"mdload/internal/parsing"
	"mdload/internal/utils/logging"

	"github.com/spf13/viper"
)

// verifyDebugLevel clamps and applies the debug level. --verbose raises it
// to at least consts.VerboseLogLevel.
func verifyDebugLevel() {
	l := viper.GetInt(keys.DebugLevel)
	switch {
	case l < 0:
		l = 0
		logging.W("Debug level set too low, set to minimum value: %d", l)
	case l > consts.MaxLogLevel:
		l = consts.MaxLogLevel
		logging.W("Debug level set too high, set to maximum value: %d", l)
	}
	if viper.GetBool(keys.Verbose) && l < consts.VerboseLogLevel {
		l = consts.VerboseLogLevel
	}
	viper.Set(keys.DebugLevel, l)
	logging.SetLevel(l)
}

// verifyAudioBitrate checks the MP3 bitrate is within LAME's range.
func verifyAudioBitrate() error {
	b := viper.GetInt(keys.AudioBitrate)
	if b < consts.MinAudioBitrateKbps || b > consts.MaxAudioBitrateKbps {
		return fmt.Errorf("audio bitrate %d kbps out of range (%d-%d)",
			b, consts.MinAudioBitrateKbps, consts.MaxAudioBitrateKbps)
	}
	return nil
}

// verifyCookieFile checks a user cookie file exists and is a file.
func verifyCookieFile() error {
	path := strings.TrimSpace(viper.GetString(keys.CookieFile))
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cookie file %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cookie file %q is a directory", path)
	}
	viper.Set(keys.CookieFile, path)
	return nil
}

// verifyHeaders parses the headers JSON into keys.HeadersParsed.
func verifyHeaders() error {
	headers, err := parsing.ParseHeaders(viper.GetString(keys.Headers))
	if err != nil {
		return err
	}
	viper.Set(keys.HeadersParsed, headers)
	return nil
}

// verifyDates parses the date bounds into keys.FromDateParsed and keys.ToDateParsed.
func verifyDates() error {
	from, err := parsing.ParseDateBound(viper.GetString(keys.FromDate), false)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", keys.FromDate, err)
	}
	to, err := parsing.ParseDateBound(viper.GetString(keys.ToDate), true)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", keys.ToDate, err)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return fmt.Errorf("%s (%s) is before %s (%s)",
			keys.ToDate, to.Format("2006-01-02"), keys.FromDate, from.Format("2006-01-02"))
	}

	if !from.IsZero() {
		logging.I("Only downloading entries uploaded on or after %s", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		logging.I("Only downloading entries uploaded on or before %s", to.Format("2006-01-02"))
	}
	viper.Set(keys.FromDateParsed, from)
	viper.Set(keys.ToDateParsed, to)
	return nil
}

// verifyDownloadSettings runs every download check. Any failure aborts
// before network work begins.
func verifyDownloadSettings() error {
	verifyDebugLevel()

	if err := verifyAudioBitrate(); err != nil {
		return err
	}
	if err := verifyCookieFile(); err != nil {
		return err
	}
	if err := verifyHeaders(); err != nil {
		return err
	}
	return verifyDates()
}
