package cfg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mdload/internal/browser"
	"mdload/internal/database"
	"mdload/internal/domain/consts"
	"mdload/internal/domain/errconsts"
	"mdload/internal/domain/keys"
	"mdload/internal/engine"
	"mdload/internal/models"
	"mdload/internal/process"
	"mdload/internal/repo"
	"mdload/internal/strategy"
	"mdload/internal/utils/logging"
	"mdload/internal/utils/prompt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runDownload validates settings, wires the pipeline and runs it for rawURL.
func runDownload(ctx context.Context, cmd *cobra.Command, rawURL string) error {
	if err := verifyDownloadSettings(); err != nil {
		return err
	}

	req, err := buildRequest(rawURL)
	if err != nil {
		return err
	}

	if !req.DryRun {
		if err := os.MkdirAll(req.OutputDir, consts.PermsOutputDir); err != nil {
			return fmt.Errorf("failed to create output directory %q: %w", req.OutputDir, err)
		}
		if err := logging.SetupLogging(req.OutputDir); err != nil {
			logging.W("File logging disabled: %v", err)
		}
		defer logging.Close()

		fmt.Fprintf(cmd.ErrOrStderr(), "\n%s\n\n", consts.LegalNotice)
	}

	if cleanup := attachBrowserCookies(ctx, req); cleanup != nil {
		defer cleanup()
	}

	opts := []process.RunnerOption{
		process.WithOutput(cmd.OutOrStdout()),
		process.WithConfirmer(terminalConfirmer(cmd)),
	}

	if req.SkipDownloaded || strings.TrimSpace(viper.GetString(keys.HistoryFile)) != "" {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, process.WithHistory(repo.NewHistoryStore(db.DB)))
	}

	eng := engine.New(engine.WithExecutable(viper.GetString(keys.YTDLPPath)))
	runner := process.NewRunner(strategy.NewSelector(eng), opts...)

	logging.D(1, "Starting run %s for %q", runner.RunID(), req.URL)

	results, runErr := runner.Run(ctx, req)
	if errors.Is(runErr, errconsts.ErrNotConfirmed) {
		return runErr
	}

	summaryErr := process.Summary(results)
	if runErr != nil {
		return runErr
	}
	return summaryErr
}

// attachBrowserCookies exports browser cookies into req when requested.
// A user cookie file takes precedence. The returned func removes the temp file.
func attachBrowserCookies(ctx context.Context, req *models.MediaRequest) func() {
	if !viper.GetBool(keys.BrowserCookies) {
		return nil
	}
	if req.CookieFile != "" {
		logging.I("Using cookie file %q, ignoring browser cookies", req.CookieFile)
		return nil
	}

	path, err := browser.ExportCookies(ctx, req.URL, "")
	if err != nil {
		logging.W("Could not export browser cookies: %v", err)
		return nil
	}
	if path == "" {
		return nil
	}

	req.CookieFile = path
	return func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logging.E("Failed to remove temporary cookie file %q: %v", path, err)
		}
	}
}

// terminalConfirmer prompts on the command's stdin, failing when it is not a terminal.
func terminalConfirmer(cmd *cobra.Command) process.Confirmer {
	return func(ctx context.Context, req *models.MediaRequest) (bool, error) {
		if cmd.InOrStdin() == os.Stdin && !prompt.StdinIsTerminal() {
			return false, prompt.ErrNotInteractive
		}
		return prompt.Confirm(ctx, cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("Download %s into %q?", req.URL, req.OutputDir))
	}
}

// openHistory opens the --history database, or the default one.
func openHistory() (*database.Database, error) {
	path := strings.TrimSpace(viper.GetString(keys.HistoryFile))
	if path == "" {
		var err error
		if path, err = database.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return database.InitDB(path)
}
