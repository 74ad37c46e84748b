package process

import (
	"mdload/internal/domain/errconsts"
	"mdload/internal/models"
	"mdload/internal/utils/logging"

	"github.com/dustin/go-humanize"
)

// Tally counts entry outcomes.
type Tally struct {
	Succeeded int
	Skipped   int
	Failed    int
	Bytes     int64
}

// Count tallies results.
func Count(results []*models.EntryResult) Tally {
	var t Tally
	for _, r := range results {
		switch {
		case r.Failed():
			t.Failed++
		case r.Skipped != "":
			t.Skipped++
		default:
			t.Succeeded++
			if r.Result != nil {
				t.Bytes += r.Result.SizeBytes
			}
		}
	}
	return t
}

// Summary logs one line per entry and the run totals. It returns
// errconsts.ErrEntriesFailed when any entry failed.
func Summary(results []*models.EntryResult) error {
	t := Count(results)

	for _, r := range results {
		name := "(unresolved)"
		if r.Entry != nil {
			name = r.Entry.Name()
		}

		switch {
		case r.Failed():
			logging.E("[%d] %s: %v", r.Index, name, r.Err)
		case r.Skipped != "":
			logging.I("[%d] %s: skipped (%s)", r.Index, name, r.Skipped)
		case r.Result != nil:
			logging.S("[%d] %s: %s (%s)", r.Index, name, r.Result.Path, humanize.Bytes(uint64(r.Result.SizeBytes)))
		}
	}

	logging.I("Finished: %d downloaded (%s), %d skipped, %d failed",
		t.Succeeded, humanize.Bytes(uint64(t.Bytes)), t.Skipped, t.Failed)

	if t.Failed > 0 {
		return errconsts.ErrEntriesFailed
	}
	return nil
}
