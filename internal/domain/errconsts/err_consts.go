// Package errconsts holds constant error messages and the download error taxonomy.
package errconsts

import (
	"errors"
	"fmt"
)

// File
const (
	ConfigFileUpdateFail = "failed to update from config file %q: %v"
)

// Entry failures. Each is wrapped by an *EntryError and matched with errors.Is.
var (
	ErrResolution       = errors.New("resolution error")
	ErrUnsupportedMedia = errors.New("unsupported media")
	ErrEngineExecution  = errors.New("engine execution error")
	ErrTranscode        = errors.New("transcode error")
)

// Run-level failures.
var (
	ErrNotConfirmed  = errors.New("download not confirmed")
	ErrEntriesFailed = errors.New("one or more entries failed")
)

// EntryError ties an entry failure to its position in the resolved sequence.
type EntryError struct {
	Index int
	Title string
	Err   error
}

func (e *EntryError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("entry %d (%s): %v", e.Index, e.Title, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Resolution wraps err as a resolution failure.
func Resolution(format string, args ...any) error {
	return wrap(ErrResolution, format, args...)
}

// UnsupportedMedia wraps err as an unsupported media failure.
func UnsupportedMedia(format string, args ...any) error {
	return wrap(ErrUnsupportedMedia, format, args...)
}

// EngineExecution wraps err as a download failure.
func EngineExecution(format string, args ...any) error {
	return wrap(ErrEngineExecution, format, args...)
}

// Transcode wraps err as a post-processing failure.
func Transcode(format string, args ...any) error {
	return wrap(ErrTranscode, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", kind, fmt.Errorf(format, args...))
}

// Kind returns the taxonomy sentinel err belongs to, or nil.
func Kind(err error) error {
	for _, k := range []error{ErrResolution, ErrUnsupportedMedia, ErrEngineExecution, ErrTranscode} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
