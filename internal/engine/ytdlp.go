// Package engine drives yt-dlp (and, through it, ffmpeg) for listing, inspecting
// and downloading entries.
package engine

import (
	"context"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"mdload/internal/domain/command"
	"mdload/internal/domain/errconsts"
	"mdload/internal/models"
	"mdload/internal/utils/logging"

	"github.com/alessio/shellescape"
	"github.com/lrstanley/go-ytdlp"
)

// progressInterval is how often download progress is logged in verbose mode.
const progressInterval = 2 * time.Second

// YTDLP runs yt-dlp through go-ytdlp.
//
// ffmpeg is never looked up here. go-ytdlp puts its install cache on the child's
// PATH, and a missing ffmpeg surfaces as a post-processing failure on stderr.
type YTDLP struct {
	executable string
}

// Option configures a YTDLP engine.
type Option func(*YTDLP)

// WithExecutable overrides the yt-dlp binary location.
func WithExecutable(path string) Option {
	return func(y *YTDLP) {
		y.executable = path
	}
}

// New returns a yt-dlp engine.
func New(opts ...Option) *YTDLP {
	y := &YTDLP{}
	for _, o := range opts {
		o(y)
	}
	return y
}

// List returns the (possibly flat) entries behind req.URL.
func (y *YTDLP) List(ctx context.Context, req *models.MediaRequest) ([]*models.MediaEntry, error) {
	cmd := y.base(req.Verbose, req.CookieFile, req.Username, req.Password, req.Headers).
		FlatPlaylist().
		SkipDownload().
		PrintJSON()

	logging.D(1, "Listing entries: %s", shellescape.QuoteCommand(InfoArgs(req, req.URL, true)))
	res, err := cmd.Run(ctx, req.URL)
	forwardLogs(req.Verbose, res)
	if err != nil {
		return nil, errconsts.Resolution("failed to resolve %q: %s", req.URL, failureMessage(stderrOf(res), err))
	}

	entries, err := parseInfoLines(res.Stdout)
	if err != nil {
		return nil, errconsts.Resolution("failed to resolve %q: %w", req.URL, err)
	}
	return entries, nil
}

// Inspect extracts full format data for one listed entry.
func (y *YTDLP) Inspect(ctx context.Context, req *models.MediaRequest, entry *models.MediaEntry) (*models.MediaEntry, error) {
	target := entry.Target()
	if target == "" {
		return nil, errconsts.Resolution("entry has neither URL nor ID")
	}

	cmd := y.base(req.Verbose, req.CookieFile, req.Username, req.Password, req.Headers).
		NoPlaylist().
		SkipDownload().
		PrintJSON()

	logging.D(1, "Inspecting formats: %s", shellescape.QuoteCommand(InfoArgs(req, target, false)))
	res, err := cmd.Run(ctx, target)
	forwardLogs(req.Verbose, res)
	if err != nil {
		return nil, errconsts.Resolution("failed to inspect %q: %s", target, failureMessage(stderrOf(res), err))
	}

	detailed, err := parseInfoLines(res.Stdout)
	if err != nil {
		return nil, errconsts.Resolution("failed to inspect %q: %w", target, err)
	}
	if len(detailed) == 0 {
		return nil, errconsts.Resolution("no info returned for %q", target)
	}

	d := detailed[0]
	d.Detailed = true
	if d.Title == "" {
		d.Title = entry.Title
	}
	if d.URL == "" {
		d.URL = entry.URL
	}
	return d, nil
}

// Execute downloads plan.URL and runs the plan's post-processing.
func (y *YTDLP) Execute(ctx context.Context, plan *models.DownloadPlan) (*models.ExecutionResult, error) {
	cmd := y.base(plan.Verbose, plan.CookieFile, plan.Username, plan.Password, plan.Headers).
		NoPlaylist().
		Format(plan.FormatSelector).
		Output(plan.OutputTemplate).
		Print(command.AfterMovePath)

	pp := plan.PostProcessing
	switch plan.Kind {
	case models.KindAudioExtract:
		cmd = cmd.ExtractAudio().AudioFormat(pp.TargetCodec)
		if pp.Transcode {
			cmd = cmd.AudioQuality(strconv.Itoa(pp.TargetBitrateKbps) + "K")
		}
	default:
		cmd = cmd.MergeOutputFormat(pp.TargetContainer)
		if pp.Remux {
			cmd = cmd.RemuxVideo(pp.TargetContainer)
		}
	}

	if plan.Verbose {
		cmd = cmd.ProgressFunc(progressInterval, logProgress)
	}

	logging.I("Executing download command: %s", shellescape.QuoteCommand(PlanArgs(plan)))
	res, err := cmd.Run(ctx, plan.URL)
	forwardLogs(plan.Verbose, res)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errconsts.EngineExecution("download interrupted: %w", ctx.Err())
		}
		return nil, classifyDownloadFailure(stderrOf(res), err)
	}

	path := lastLine(res.Stdout)
	if path == "" {
		path = plan.FinalPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errconsts.EngineExecution("download verification failed: %w", err)
	}
	if info.Size() == 0 {
		return nil, errconsts.EngineExecution("downloaded file is empty: %s", path)
	}

	return &models.ExecutionResult{Path: path, SizeBytes: info.Size()}, nil
}

// base builds the options shared by every yt-dlp invocation.
func (y *YTDLP) base(verbose bool, cookieFile, username, password string, headers map[string]string) *ytdlp.Command {
	cmd := ytdlp.New()
	if y.executable != "" {
		cmd = cmd.SetExecutable(y.executable)
	}

	if verbose {
		cmd = cmd.Verbose()
	} else {
		cmd = cmd.Quiet().NoWarnings()
	}

	if cookieFile != "" {
		cmd = cmd.Cookies(cookieFile)
	}
	if username != "" {
		cmd = cmd.Username(username)
	}
	if password != "" {
		cmd = cmd.Password(password)
	}
	for _, k := range sortedKeys(headers) {
		cmd = cmd.AddHeaders(k + ":" + headers[k])
	}
	return cmd
}

func stderrOf(res *ytdlp.Result) string {
	if res == nil {
		return ""
	}
	return res.Stderr
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// baseArgs mirrors base for printed command lines. The password is masked.
func baseArgs(verbose bool, cookieFile, username, password string, headers map[string]string) []string {
	args := []string{command.YTDLP}
	if verbose {
		args = append(args, command.Verbose)
	} else {
		args = append(args, command.Quiet, command.NoWarnings)
	}
	if cookieFile != "" {
		args = append(args, command.CookiePath, cookieFile)
	}
	if username != "" {
		args = append(args, command.Username, username)
	}
	if password != "" {
		args = append(args, command.Password, "********")
	}
	for _, k := range sortedKeys(headers) {
		args = append(args, command.AddHeader, k+":"+headers[k])
	}
	return args
}

// InfoArgs returns the yt-dlp command line List (flat) or Inspect runs for target.
func InfoArgs(req *models.MediaRequest, target string, flat bool) []string {
	args := baseArgs(req.Verbose, req.CookieFile, req.Username, req.Password, req.Headers)
	if flat {
		args = append(args, command.FlatPlaylist)
	} else {
		args = append(args, command.NoPlaylist)
	}
	return append(args, command.SkipDownload, command.PrintJSON, target)
}

// PlanArgs returns the yt-dlp command line equivalent to Execute(plan), password masked.
func PlanArgs(plan *models.DownloadPlan) []string {
	args := baseArgs(plan.Verbose, plan.CookieFile, plan.Username, plan.Password, plan.Headers)
	args = append(args,
		command.NoPlaylist,
		command.Format, plan.FormatSelector,
		command.Output, plan.OutputTemplate,
		command.Print, command.AfterMovePath,
	)

	pp := plan.PostProcessing
	switch plan.Kind {
	case models.KindAudioExtract:
		args = append(args, command.ExtractAudio, command.AudioFormat, pp.TargetCodec)
		if pp.Transcode {
			args = append(args, command.AudioQuality, strconv.Itoa(pp.TargetBitrateKbps)+"K")
		}
	default:
		args = append(args, command.MergeOutputFormat, pp.TargetContainer)
		if pp.Remux {
			args = append(args, command.RemuxVideo, pp.TargetContainer)
		}
	}
	return append(args, plan.URL)
}

// forwardLogs replays yt-dlp's output through the logger in verbose mode.
// JSON lines are skipped.
func forwardLogs(verbose bool, res *ytdlp.Result) {
	if !verbose || res == nil {
		return
	}
	for _, l := range res.OutputLogs {
		if l.JSON != nil || strings.TrimSpace(l.Line) == "" {
			continue
		}
		logging.I("[yt-dlp %s] %s", l.Pipe, l.Line)
	}
}

func logProgress(u ytdlp.ProgressUpdate) {
	switch u.Status {
	case ytdlp.ProgressStatusDownloading:
		logging.I("[progress] %s %s (ETA %s)", u.Filename, u.PercentString(), u.ETA().Round(time.Second))
	case ytdlp.ProgressStatusFinished:
		logging.I("[progress] %s finished in %s", u.Filename, u.Duration().Round(time.Second))
	case ytdlp.ProgressStatusError:
		logging.W("[progress] %s failed", u.Filename)
	}
}
