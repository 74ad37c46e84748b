package models

// ExecutionResult is the outcome of a successful download.
type ExecutionResult struct {
	Path      string
	SizeBytes int64
}

// EntryResult records what happened to one entry of a run.
type EntryResult struct {
	Index   int
	Entry   *MediaEntry
	Plan    *DownloadPlan
	Result  *ExecutionResult
	Err     error
	Skipped string // Non-empty reason when the entry was intentionally not downloaded
}

// Failed reports whether the entry ended in error.
func (r *EntryResult) Failed() bool {
	return r.Err != nil
}
