package cfg

import (
	"mdload/internal/domain/consts"
	"mdload/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initProgramFlags sets up flags shared by every command.
func initProgramFlags(rootCmd *cobra.Command) error {
	// Config file
	rootCmd.PersistentFlags().String(keys.ConfigFile, "", "Config file (any format Viper reads, keys match flag names)")
	if err := viper.BindPFlag(keys.ConfigFile, rootCmd.PersistentFlags().Lookup(keys.ConfigFile)); err != nil {
		return err
	}

	// Debug level
	rootCmd.PersistentFlags().Int(keys.DebugLevel, consts.DefaultLogLevel, "Debug level (0-5)")
	if err := viper.BindPFlag(keys.DebugLevel, rootCmd.PersistentFlags().Lookup(keys.DebugLevel)); err != nil {
		return err
	}

	// History database
	rootCmd.PersistentFlags().String(keys.HistoryFile, "", "Download history database (default ~/.mdload/history.db)")
	if err := viper.BindPFlag(keys.HistoryFile, rootCmd.PersistentFlags().Lookup(keys.HistoryFile)); err != nil {
		return err
	}

	// yt-dlp binary
	rootCmd.PersistentFlags().String(keys.YTDLPPath, "", "Path to the yt-dlp executable (default: found in PATH)")
	return viper.BindPFlag(keys.YTDLPPath, rootCmd.PersistentFlags().Lookup(keys.YTDLPPath))
}

// initDownloadFlags sets up flags for the download command.
func initDownloadFlags(rootCmd *cobra.Command) error {
	// Output directory
	rootCmd.Flags().StringP(keys.OutputDir, "o", consts.DefaultOutDir, "Output directory")
	if err := viper.BindPFlag(keys.OutputDir, rootCmd.Flags().Lookup(keys.OutputDir)); err != nil {
		return err
	}

	// Confirmation
	rootCmd.Flags().BoolP(keys.AutoConfirm, "y", false, "Skip the confirmation prompt")
	if err := viper.BindPFlag(keys.AutoConfirm, rootCmd.Flags().Lookup(keys.AutoConfirm)); err != nil {
		return err
	}

	// Verbosity
	rootCmd.Flags().BoolP(keys.Verbose, "v", false, "Verbose yt-dlp output")
	if err := viper.BindPFlag(keys.Verbose, rootCmd.Flags().Lookup(keys.Verbose)); err != nil {
		return err
	}

	// Dry run
	rootCmd.Flags().Bool(keys.DryRun, false, "Print the yt-dlp command for each entry without downloading")
	if err := viper.BindPFlag(keys.DryRun, rootCmd.Flags().Lookup(keys.DryRun)); err != nil {
		return err
	}

	// Cookie file
	rootCmd.Flags().String(keys.CookieFile, "", "Netscape cookie file passed to yt-dlp")
	if err := viper.BindPFlag(keys.CookieFile, rootCmd.Flags().Lookup(keys.CookieFile)); err != nil {
		return err
	}

	// Browser cookies
	rootCmd.Flags().Bool(keys.BrowserCookies, false, "Read cookies for the URL's domain from local browsers")
	if err := viper.BindPFlag(keys.BrowserCookies, rootCmd.Flags().Lookup(keys.BrowserCookies)); err != nil {
		return err
	}

	// Username
	rootCmd.Flags().StringP(keys.AuthUsername, "u", "", "Account username")
	if err := viper.BindPFlag(keys.AuthUsername, rootCmd.Flags().Lookup(keys.AuthUsername)); err != nil {
		return err
	}

	// Password
	rootCmd.Flags().StringP(keys.AuthPassword, "p", "", "Account password")
	if err := viper.BindPFlag(keys.AuthPassword, rootCmd.Flags().Lookup(keys.AuthPassword)); err != nil {
		return err
	}

	// Headers
	rootCmd.Flags().String(keys.Headers, "", `Custom HTTP headers as a JSON object, e.g. '{"Referer": "https://example.com"}'`)
	if err := viper.BindPFlag(keys.Headers, rootCmd.Flags().Lookup(keys.Headers)); err != nil {
		return err
	}

	// Audio bitrate
	rootCmd.Flags().Int(keys.AudioBitrate, consts.DefaultAudioBitrateKbps, "MP3 bitrate in kbps for audio extraction")
	if err := viper.BindPFlag(keys.AudioBitrate, rootCmd.Flags().Lookup(keys.AudioBitrate)); err != nil {
		return err
	}

	// Date filters
	rootCmd.Flags().String(keys.FromDate, "", "Only download entries uploaded on or after this date")
	if err := viper.BindPFlag(keys.FromDate, rootCmd.Flags().Lookup(keys.FromDate)); err != nil {
		return err
	}

	rootCmd.Flags().String(keys.ToDate, "", "Only download entries uploaded on or before this date")
	if err := viper.BindPFlag(keys.ToDate, rootCmd.Flags().Lookup(keys.ToDate)); err != nil {
		return err
	}

	// History
	rootCmd.Flags().Bool(keys.SkipDownloaded, false, "Skip entries recorded as completed in the history database")
	return viper.BindPFlag(keys.SkipDownloaded, rootCmd.Flags().Lookup(keys.SkipDownloaded))
}
