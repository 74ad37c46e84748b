// Package cfg builds mdload's commands and turns flags, env vars and config files
// into a validated download request.
package cfg

import (
	"context"

	"mdload/internal/domain/consts"
	"mdload/internal/domain/keys"
	"mdload/internal/engine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute builds the command tree and runs it.
func Execute(ctx context.Context) error {
	rootCmd, err := NewRootCmd()
	if err != nil {
		return err
	}
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd initializes all commands and binds their flags into Viper.
func NewRootCmd() (*cobra.Command, error) {
	initViper()

	rootCmd := &cobra.Command{
		Use:   "mdload [url]",
		Short: "mdload downloads video (as MP4) or audio (as MP3) from a URL using yt-dlp",
		Long: "mdload inspects each entry behind a URL (playlists included), muxes the best video\n" +
			"and audio into MP4 when video exists, or extracts the best audio to MP3 otherwise.\n\n" +
			consts.LegalNotice,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfigFile(); err != nil {
				return err
			}
			verifyDebugLevel()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd.Context(), cmd, args[0])
		},
	}

	if err := initProgramFlags(rootCmd); err != nil {
		return nil, err
	}
	if err := initDownloadFlags(rootCmd); err != nil {
		return nil, err
	}

	historyCmd, err := initHistoryCmd()
	if err != nil {
		return nil, err
	}
	rootCmd.AddCommand(historyCmd, initInstallCmd())

	return rootCmd, nil
}

// initInstallCmd returns the command fetching yt-dlp and ffmpeg.
func initInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Download yt-dlp, ffmpeg and ffprobe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return engine.Install(cmd.Context())
		},
	}
}

// initHistoryCmd returns the command listing recent downloads.
func initHistoryCmd() (*cobra.Command, error) {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(cmd.Context(), cmd.OutOrStdout(), viper.GetInt(keys.HistoryLimit))
		},
	}

	historyCmd.Flags().IntP(keys.HistoryLimit, "n", consts.DefaultHistoryLimit, "Number of records to show")
	if err := viper.BindPFlag(keys.HistoryLimit, historyCmd.Flags().Lookup(keys.HistoryLimit)); err != nil {
		return nil, err
	}
	return historyCmd, nil
}
