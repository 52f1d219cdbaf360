package views

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"scribe/internal/analysis"
	"scribe/internal/logging"
)

// Fetcher retrieves a stored classification.
type Fetcher interface {
	GetResultByID(ctx context.Context, analysisID string) (analysis.Result, error)
}

// LookupSnapshot is a point-in-time copy of a LookupView.
type LookupSnapshot struct {
	ID      string
	Loading bool
	Error   string
	Result  *analysis.Result
}

// LookupView fetches classifications by analysis id.
type LookupView struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu      sync.Mutex
	id      string
	loading bool
	errMsg  string
	result  *analysis.Result
}

// NewLookupView returns an empty view bound to fetcher.
func NewLookupView(fetcher Fetcher, logger *slog.Logger) *LookupView {
	return &LookupView{
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "lookup-view"),
	}
}

// Submit looks up id. A blank id yields ErrIDRequired and a concurrent
// lookup yields ErrBusy, neither reaching the network.
func (v *LookupView) Submit(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	v.mu.Lock()
	if v.loading {
		v.mu.Unlock()
		return ErrBusy
	}
	if id == "" {
		v.errMsg = MsgIDRequired
		v.mu.Unlock()
		return ErrIDRequired
	}
	v.id = id
	v.loading = true
	v.errMsg = ""
	v.result = nil
	v.mu.Unlock()

	result, err := v.fetcher.GetResultByID(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.errMsg = LookupErrorMessage(err)
		v.logger.Warn("lookup failed",
			logging.String("analysis_id", id),
			logging.Error(err),
		)
		return err
	}
	result = result.Clone()
	v.result = &result
	v.logger.Debug("lookup completed", logging.String("analysis_id", id))
	return nil
}

// Snapshot returns a copy of the current view state.
func (v *LookupView) Snapshot() LookupSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	snap := LookupSnapshot{
		ID:      v.id,
		Loading: v.loading,
		Error:   v.errMsg,
	}
	if v.result != nil {
		result := v.result.Clone()
		snap.Result = &result
	}
	return snap
}
