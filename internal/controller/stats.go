package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/orderdesk/internal/adapter/orderstore"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// StatsFeed keeps the dashboard counters fresh on its own schedule,
// decoupled from the list query. Stats are best-effort: a failed fetch
// is logged and the previous values stay in place; the list view never
// waits on this.
type StatsFeed struct {
	client   orderstore.Client
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	stats  model.Stats
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStatsFeed constructs the feed with zero-initialized counters.
func NewStatsFeed(client orderstore.Client, interval time.Duration, logger *slog.Logger) *StatsFeed {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatsFeed{client: client, interval: interval, logger: logger}
}

// Stats returns the last successfully fetched counters.
func (f *StatsFeed) Stats() model.Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

// Refresh fetches the counters once. On failure prior values remain.
func (f *StatsFeed) Refresh(ctx context.Context) error {
	stats, err := f.client.Stats(ctx)
	if err != nil {
		f.logger.Error("stats fetch failed", slog.String("error", err.Error()))
		return err
	}
	f.mu.Lock()
	f.stats = *stats
	f.mu.Unlock()
	return nil
}

// Start fetches once immediately and then refreshes on a ticker until
// Stop is called.
func (f *StatsFeed) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel

	f.wg.Add(1)
	go f.run(runCtx)
}

// Stop halts the periodic refresh and waits for it to finish.
func (f *StatsFeed) Stop() {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mu.Unlock()

	f.wg.Wait()
}

func (f *StatsFeed) run(ctx context.Context) {
	defer f.wg.Done()

	_ = f.Refresh(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = f.Refresh(ctx)
		}
	}
}
