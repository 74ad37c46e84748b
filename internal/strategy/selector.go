// Package strategy decides, per resolved entry, whether to mux video or extract audio,
// and builds the matching download plan for the engine.
package strategy

import (
	"context"
	"fmt"
	"iter"

	"mdload/internal/domain/errconsts"
	"mdload/internal/models"
	"mdload/internal/utils/logging"
)

// Engine is the external download/convert capability.
type Engine interface {
	// List returns the entries behind a URL. Playlist items may come back
	// without format data (Detailed == false).
	List(ctx context.Context, req *models.MediaRequest) ([]*models.MediaEntry, error)
	// Inspect fetches full format data for one listed entry.
	Inspect(ctx context.Context, req *models.MediaRequest, entry *models.MediaEntry) (*models.MediaEntry, error)
	// Execute downloads and post-processes according to plan.
	Execute(ctx context.Context, plan *models.DownloadPlan) (*models.ExecutionResult, error)
}

// Selector drives an Engine through resolve, classify, plan and execute.
type Selector struct {
	engine Engine
}

// NewSelector returns a Selector backed by engine.
func NewSelector(engine Engine) *Selector {
	return &Selector{engine: engine}
}

// ResolveEntries lazily yields the entries behind req.URL in resolution order.
//
// A failed listing yields a single (nil, error) pair. A failed inspection yields the
// listed entry with its error and iteration carries on with the next item.
// The sequence is not restartable; ranging again queries the engine again.
func (s *Selector) ResolveEntries(ctx context.Context, req *models.MediaRequest) iter.Seq2[*models.MediaEntry, error] {
	return func(yield func(*models.MediaEntry, error) bool) {
		listed, err := s.engine.List(ctx, req)
		if err != nil {
			yield(nil, asKind(err, errconsts.ErrResolution))
			return
		}
		if len(listed) == 0 {
			yield(nil, errconsts.Resolution("no entries found for %q", req.URL))
			return
		}

		logging.D(1, "Resolved %d entries for %q", len(listed), req.URL)

		for _, entry := range listed {
			if ctx.Err() != nil {
				return
			}
			if entry == nil {
				continue
			}

			if !entry.Detailed {
				detailed, err := s.engine.Inspect(ctx, req, entry)
				if err != nil {
					if !yield(entry, asKind(err, errconsts.ErrResolution)) {
						return
					}
					continue
				}
				entry = detailed
			}

			if !yield(entry, nil) {
				return
			}
		}
	}
}

// Execute runs plan through the engine.
func (s *Selector) Execute(ctx context.Context, plan *models.DownloadPlan) (*models.ExecutionResult, error) {
	if plan == nil {
		return nil, errconsts.EngineExecution("plan passed in nil")
	}
	res, err := s.engine.Execute(ctx, plan)
	if err != nil {
		return nil, asKind(err, errconsts.ErrEngineExecution)
	}
	return res, nil
}

// asKind wraps err in fallback unless it already carries a taxonomy kind.
func asKind(err, fallback error) error {
	if errconsts.Kind(err) != nil {
		return err
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
