// Package process runs the per-entry download pipeline.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"mdload/internal/domain/errconsts"
	"mdload/internal/engine"
	"mdload/internal/models"
	"mdload/internal/strategy"
	"mdload/internal/utils/logging"

	"github.com/alessio/shellescape"
	"github.com/google/uuid"
)

// Skip reasons.
const (
	SkipOutOfRange = "outside date range"
	SkipDownloaded = "already downloaded"
	SkipDryRun     = "dry run"
)

// HistoryStore records entry outcomes and answers "done before?" queries.
type HistoryStore interface {
	Record(ctx context.Context, rec *models.HistoryRecord) error
	Completed(ctx context.Context, entryID, url string) (bool, error)
}

// Confirmer asks the user to confirm a run. It is only consulted when
// the request is not auto-confirmed.
type Confirmer func(ctx context.Context, req *models.MediaRequest) (bool, error)

// Runner processes every entry behind a request, one at a time.
type Runner struct {
	selector *strategy.Selector
	history  HistoryStore
	confirm  Confirmer
	out      io.Writer
	runID    string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithHistory records outcomes to hs and enables skip-downloaded checks.
func WithHistory(hs HistoryStore) RunnerOption {
	return func(r *Runner) {
		r.history = hs
	}
}

// WithConfirmer sets the confirmation gate.
func WithConfirmer(c Confirmer) RunnerOption {
	return func(r *Runner) {
		r.confirm = c
	}
}

// WithOutput sets where dry-run command lines are printed.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// NewRunner returns a Runner driving sel.
func NewRunner(sel *strategy.Selector, opts ...RunnerOption) *Runner {
	r := &Runner{
		selector: sel,
		out:      os.Stdout,
		runID:    uuid.NewString(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RunID identifies this runner's records in history.
func (r *Runner) RunID() string {
	return r.runID
}

// Run resolves req.URL and takes each entry through classify, plan and execute,
// in resolution order. One entry's failure never stops the next.
//
// The returned error covers run-level problems only (no confirmation, interruption);
// per-entry failures live in the results.
func (r *Runner) Run(ctx context.Context, req *models.MediaRequest) ([]*models.EntryResult, error) {
	if req == nil {
		return nil, fmt.Errorf("request passed in nil")
	}

	if err := r.confirmed(ctx, req); err != nil {
		return nil, err
	}

	var (
		results []*models.EntryResult
		index   int
	)
	for entry, err := range r.selector.ResolveEntries(ctx, req) {
		index++
		res := &models.EntryResult{Index: index, Entry: entry}
		results = append(results, res)

		if err != nil {
			res.Err = entryError(index, entry, err)
			logging.E("%v", res.Err)
			r.record(ctx, req, res)
			continue
		}

		r.processEntry(ctx, req, res)

		if ctx.Err() != nil {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		logging.W("Run interrupted after %d entries", len(results))
		return results, err
	}
	return results, nil
}

// confirmed applies the confirmation gate. Dry runs never download and skip it.
func (r *Runner) confirmed(ctx context.Context, req *models.MediaRequest) error {
	if req.AutoConfirm || req.DryRun {
		return nil
	}
	if r.confirm == nil {
		return errconsts.ErrNotConfirmed
	}

	ok, err := r.confirm(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %w", errconsts.ErrNotConfirmed, err)
	}
	if !ok {
		return errconsts.ErrNotConfirmed
	}
	return nil
}

// processEntry handles one resolved entry and fills in res.
func (r *Runner) processEntry(ctx context.Context, req *models.MediaRequest, res *models.EntryResult) {
	entry := res.Entry
	logging.I("Processing: %s", entry.Name())

	if !req.InDateRange(entry.UploadDate) {
		res.Skipped = SkipOutOfRange
		logging.I(" -> Skipping %q: uploaded %s, %s", entry.Name(), entry.UploadDate.Format("2006-01-02"), SkipOutOfRange)
		return
	}

	kind, err := strategy.Classify(entry)
	if err != nil {
		res.Err = entryError(res.Index, entry, err)
		logging.E("%v", res.Err)
		r.record(ctx, req, res)
		return
	}

	plan := strategy.BuildPlan(entry, kind, req)
	res.Plan = plan

	switch kind {
	case models.KindAudioExtract:
		logging.I(" -> Detected type: AUDIO. Extracting best audio to .%s (%d kbps)",
			plan.PostProcessing.TargetCodec, plan.PostProcessing.TargetBitrateKbps)
	default:
		logging.I(" -> Detected type: VIDEO. Downloading best video + audio, merging into .%s",
			plan.PostProcessing.TargetContainer)
	}

	if req.SkipDownloaded && r.history != nil {
		done, err := r.history.Completed(ctx, entry.ID, entry.URL)
		if err != nil {
			logging.W("Could not check history for %q: %v", entry.URL, err)
		} else if done {
			res.Skipped = SkipDownloaded
			logging.I(" -> Skipping %q: %s", entry.Name(), SkipDownloaded)
			return
		}
	}

	if req.DryRun {
		res.Skipped = SkipDryRun
		if _, err := fmt.Fprintln(r.out, shellescape.QuoteCommand(engine.PlanArgs(plan))); err != nil {
			logging.W("Failed to print dry run command: %v", err)
		}
		return
	}

	result, err := r.selector.Execute(ctx, plan)
	if err != nil {
		res.Err = entryError(res.Index, entry, err)
		logging.E("%v", res.Err)
		r.record(ctx, req, res)
		return
	}

	res.Result = result
	logging.S(" --> Done: %s", result.Path)
	r.record(ctx, req, res)
}

// record persists res when history is enabled. Failures are logged, never fatal.
func (r *Runner) record(ctx context.Context, req *models.MediaRequest, res *models.EntryResult) {
	if r.history == nil {
		return
	}

	rec := &models.HistoryRecord{
		RunID:  r.runID,
		URL:    req.URL,
		Status: models.StatusCompleted,
	}
	if res.Entry != nil {
		rec.EntryID = res.Entry.ID
		rec.Title = res.Entry.Name()
		if res.Entry.URL != "" {
			rec.URL = res.Entry.URL
		}
	}
	if res.Plan != nil {
		rec.Kind = res.Plan.Kind.String()
	}
	if res.Result != nil {
		rec.FilePath = res.Result.Path
		rec.FileSize = res.Result.SizeBytes
	}
	if res.Err != nil {
		rec.Status = models.StatusFailed
		rec.Error = res.Err.Error()
	}

	// Recording must still happen on interruption
	if err := r.history.Record(context.WithoutCancel(ctx), rec); err != nil {
		logging.W("Failed to record history for %q: %v", rec.URL, err)
	}
}

func entryError(index int, entry *models.MediaEntry, err error) error {
	var ee *errconsts.EntryError
	if errors.As(err, &ee) {
		return err
	}
	title := ""
	if entry != nil {
		title = entry.Name()
	}
	return &errconsts.EntryError{Index: index, Title: title, Err: err}
}
