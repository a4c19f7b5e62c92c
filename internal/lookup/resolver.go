// Package lookup runs station resolutions off the input-handling path.
//
// Lookups fire on every keystroke, so results can arrive out of order. Each
// lookup is tagged with the query that triggered it and a monotonic sequence
// number; a result is delivered only if no newer lookup has started since.
// Superseded lookups are context-cancelled.
package lookup

import (
	"context"
	"errors"
	"sync"

	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/service"
	"github.com/morrisraybrooks/PalletManager/internal/station"
)

// Result is the outcome of one lookup request. Query and Building echo the
// request so the receiver can double-check it still cares.
type Result struct {
	Err         error
	Query       string
	CheckDigit  string
	Suggestions []string
	Key         model.StationKey
	Class       model.ValidationClass
	Building    int
	NotFound    bool
}

// Resolver serializes the supersede-and-cancel bookkeeping around a Storage.
type Resolver struct {
	storage service.Storage
	cancel  context.CancelFunc
	mu      sync.Mutex
	seq     uint64
}

// NewResolver creates a resolver over the given storage.
func NewResolver(storage service.Storage) *Resolver {
	return &Resolver{storage: storage}
}

// Lookup starts an asynchronous resolution for raw input. Any lookup still
// in flight is cancelled. The returned channel yields at most one Result and
// is closed without a value if this lookup is itself superseded before it
// completes.
func (r *Resolver) Lookup(ctx context.Context, buildingID int, raw string) <-chan Result {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	lctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	ch := make(chan Result, 1)

	go func() {
		defer close(ch)
		defer cancel()

		result := r.resolve(lctx, buildingID, raw)

		r.mu.Lock()
		stale := seq != r.seq
		r.mu.Unlock()
		if !stale {
			ch <- result
		}
	}()

	return ch
}

// Cancel aborts any outstanding lookup; used when the operator clears the
// input or switches buildings.
func (r *Resolver) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.seq++
}

func (r *Resolver) resolve(ctx context.Context, buildingID int, raw string) Result {
	result := Result{
		Query:    raw,
		Building: buildingID,
		Class:    station.Classify(raw),
	}

	if !result.Class.Resolvable() {
		result.Suggestions = station.Suggest(raw)
		return result
	}

	result.Key = station.Normalize(raw)

	checkDigit, err := r.storage.Resolve(ctx, buildingID, result.Key)
	switch {
	case errors.Is(err, common.ErrNotFound):
		result.NotFound = true
	case err != nil:
		result.Err = err
	default:
		result.CheckDigit = checkDigit
	}

	return result
}
