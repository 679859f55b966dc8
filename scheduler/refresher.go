package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"marketmuse_backend/models"
	"marketmuse_backend/services/finnhub"
	"marketmuse_backend/services/stockcache"
)

//go:generate mockgen -package=scheduler_test -destination=mock_stores_test.go -source=refresher.go SymbolStore,CursorStore,AuditLog

// SymbolStore is the part of the cache the refresher reads and writes.
type SymbolStore interface {
	Symbols(ctx context.Context) ([]string, error)
	UpsertMerge(ctx context.Context, symbol string, info models.SymbolInfo) error
}

// CursorStore persists the round-robin position.
type CursorStore interface {
	LastIndex(ctx context.Context) (int64, error)
	SetLastIndex(ctx context.Context, index int64) error
}

// AuditLog records refresh attempts.
type AuditLog interface {
	Append(ctx context.Context, symbol, status string) error
	TrimToLatest(ctx context.Context, k int) error
}

// State is the refresher's position inside a tick.
type State int32

const (
	StateIdle State = iota
	StateSelectingSymbol
	StateFetching
	StateMerging
	StateLoggingResult
	StateAdvancingCursor
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelectingSymbol:
		return "selecting_symbol"
	case StateFetching:
		return "fetching"
	case StateMerging:
		return "merging"
	case StateLoggingResult:
		return "logging_result"
	case StateAdvancingCursor:
		return "advancing_cursor"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// TickResult describes what one tick did.
type TickResult struct {
	Symbol  string    `json:"symbol,omitempty"`
	Index   int64     `json:"index"`
	Status  string    `json:"status,omitempty"`
	Skipped bool      `json:"skipped"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// RefresherStatus is a point-in-time view for the admin API.
type RefresherStatus struct {
	State     string      `json:"state"`
	Running   bool        `json:"running"`
	Interval  string      `json:"interval"`
	Retention int         `json:"retention"`
	Ticks     int64       `json:"ticks"`
	LastTick  *TickResult `json:"last_tick"`
}

// Refresher re-fetches one cached symbol per tick in round-robin order.
// A single Refresher must own a given store.
type Refresher struct {
	store     SymbolStore
	cursor    CursorStore
	audit     AuditLog
	fetcher   finnhub.Fetcher
	interval  time.Duration
	retention int
	log       *zap.Logger
	now       func() time.Time

	state   atomic.Int32
	running atomic.Bool
	ticks   atomic.Int64

	mu   sync.RWMutex
	last *TickResult
}

// NewRefresher creates a refresher ticking every interval and keeping
// retention audit entries.
func NewRefresher(store SymbolStore, cursor CursorStore, audit AuditLog, fetcher finnhub.Fetcher, interval time.Duration, retention int, log *zap.Logger) *Refresher {
	return &Refresher{
		store:     store,
		cursor:    cursor,
		audit:     audit,
		fetcher:   fetcher,
		interval:  interval,
		retention: retention,
		log:       log,
		now:       time.Now,
	}
}

// State returns the current tick state
func (r *Refresher) State() State {
	return State(r.state.Load())
}

func (r *Refresher) setState(s State) {
	r.state.Store(int32(s))
}

// Status returns a snapshot of the refresher
func (r *Refresher) Status() RefresherStatus {
	r.mu.RLock()
	var last *TickResult
	if r.last != nil {
		cp := *r.last
		last = &cp
	}
	r.mu.RUnlock()

	return RefresherStatus{
		State:     r.State().String(),
		Running:   r.running.Load(),
		Interval:  r.interval.String(),
		Retention: r.retention,
		Ticks:     r.ticks.Load(),
		LastTick:  last,
	}
}

// Run ticks immediately and then every interval until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	r.running.Store(true)
	defer r.running.Store(false)

	r.log.Info("Refresher started",
		zap.Duration("interval", r.interval),
		zap.Int("retention", r.retention),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info("Refresher stopped")
			return
		case <-timer.C:
		}
		r.Tick(ctx)
		timer.Reset(r.interval)
	}
}

// Tick performs one refresh step. Errors never escape: they end up in the
// audit log and the process log.
func (r *Refresher) Tick(ctx context.Context) TickResult {
	defer r.setState(StateIdle)
	result := r.tick(ctx)
	result.At = r.now().UTC()

	r.ticks.Add(1)
	r.mu.Lock()
	r.last = &result
	r.mu.Unlock()
	return result
}

func (r *Refresher) tick(ctx context.Context) TickResult {
	r.setState(StateSelectingSymbol)

	symbols, err := r.store.Symbols(ctx)
	if err != nil {
		r.log.Error("Failed to list symbols, skipping tick", zap.Error(err))
		return TickResult{Skipped: true, Reason: err.Error()}
	}
	if len(symbols) == 0 {
		r.log.Debug("No cached symbols, nothing to refresh")
		return TickResult{Skipped: true, Reason: "no symbols"}
	}

	index, err := r.cursor.LastIndex(ctx)
	switch {
	case errors.Is(err, stockcache.ErrMalformedCursor):
		r.log.Warn("Malformed refresh cursor, restarting rotation", zap.Error(err))
		index = 0
	case err != nil:
		r.log.Error("Failed to read refresh cursor, skipping tick", zap.Error(err))
		return TickResult{Skipped: true, Reason: err.Error()}
	}

	n := int64(len(symbols))
	symbol := symbols[((index%n)+n)%n]

	r.setState(StateFetching)
	info, err := r.fetcher.FetchSymbolInfo(ctx, symbol)
	if ctx.Err() != nil {
		// Abandoned mid-fetch: the symbol is retried on the next start.
		return TickResult{Symbol: symbol, Index: index, Skipped: true, Reason: ctx.Err().Error()}
	}
	if err == nil && info.IsEmpty() {
		err = fmt.Errorf("%s: %w", symbol, finnhub.ErrNoData)
	}

	// Persistence runs to completion once the fetch has returned.
	persistCtx := context.WithoutCancel(ctx)

	if err == nil {
		r.setState(StateMerging)
		if mergeErr := r.store.UpsertMerge(persistCtx, symbol, info); mergeErr != nil {
			err = fmt.Errorf("merge: %w", mergeErr)
		}
	}

	status := stockcache.StatusSuccess
	if err != nil {
		status = stockcache.ErrorStatus(err)
		r.log.Warn("Refresh failed", zap.String("symbol", symbol), zap.Int64("index", index), zap.Error(err))
	} else {
		r.log.Debug("Refreshed symbol", zap.String("symbol", symbol), zap.Int64("index", index))
	}

	r.setState(StateLoggingResult)
	if err := r.audit.Append(persistCtx, symbol, status); err != nil {
		r.log.Error("Failed to append refresh log", zap.String("symbol", symbol), zap.Error(err))
	} else if err := r.audit.TrimToLatest(persistCtx, r.retention); err != nil {
		r.log.Error("Failed to trim refresh log", zap.Error(err))
	}

	r.setState(StateAdvancingCursor)
	if err := r.cursor.SetLastIndex(persistCtx, index+1); err != nil {
		r.log.Error("Failed to advance refresh cursor", zap.Int64("index", index+1), zap.Error(err))
	}

	return TickResult{Symbol: symbol, Index: index, Status: status}
}
