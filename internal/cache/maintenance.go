package cache

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"
)

const (
	DefaultCleanupInterval = 60 * time.Second
	DefaultStatsInterval   = 30 * time.Second
)

// JanitorConfig controls the background sweep and stats refresh.
// Zero intervals fall back to the defaults; the clock defaults to the store's.
type JanitorConfig struct {
	CleanupInterval time.Duration
	StatsInterval   time.Duration
	Clock           clock.Clock

	// OnCleanup is called after each sweep with the number of entries removed.
	OnCleanup func(removed int)
	// OnSnapshot is called with every refreshed stats snapshot.
	OnSnapshot func(Stats)
}

// Janitor runs the periodic expiry sweep and stats snapshot for a Store.
//
// Expiry stays lazy per entry; the sweep bounds how long expired but unread
// entries can hold memory. Janitor owns its goroutine. Call Close to stop it.
type Janitor struct {
	store *Store
	cfg   JanitorConfig

	snapshot atomic.Value // Stats

	mu      sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewJanitor prepares a janitor for store. Nothing runs until Start.
func NewJanitor(store *Store, cfg JanitorConfig) *Janitor {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = DefaultStatsInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = store.clock
	}
	j := &Janitor{store: store, cfg: cfg}
	j.snapshot.Store(store.Stats())
	return j
}

// Start launches the maintenance loop. It stops when ctx is done or Close is
// called. Calling Start again is a no-op.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.started || j.closed {
		return
	}
	j.started = true

	ctx, j.cancel = context.WithCancel(ctx)

	// Tickers are created before the goroutine so a mock clock advanced right
	// after Start still fires them.
	cleanup := j.cfg.Clock.Ticker(j.cfg.CleanupInterval)
	stats := j.cfg.Clock.Ticker(j.cfg.StatsInterval)

	j.wg.Add(1)
	go j.loop(ctx, cleanup, stats)
}

func (j *Janitor) loop(ctx context.Context, cleanup, stats *clock.Ticker) {
	defer j.wg.Done()
	defer cleanup.Stop()
	defer stats.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cleanup.C:
			j.RunCleanup()
		case <-stats.C:
			j.RefreshStats()
		}
	}
}

// RunCleanup sweeps expired entries now and reports the count.
func (j *Janitor) RunCleanup() int {
	removed := j.store.Cleanup()
	if j.cfg.OnCleanup != nil {
		j.cfg.OnCleanup(removed)
	}
	return removed
}

// RefreshStats recomputes and publishes the stats snapshot.
func (j *Janitor) RefreshStats() Stats {
	st := j.store.Stats()
	j.snapshot.Store(st)
	if j.cfg.OnSnapshot != nil {
		j.cfg.OnSnapshot(st)
	}
	return st
}

// Snapshot returns the most recently refreshed stats.
func (j *Janitor) Snapshot() Stats {
	return j.snapshot.Load().(Stats)
}

// Close stops the loop and waits for it to exit. Close is safe to call multiple times.
func (j *Janitor) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	cancel := j.cancel
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
	return nil
}
