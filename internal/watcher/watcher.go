// Package watcher ingests books dropped into an inbox directory.
// Files are picked up on creation, given a short settle delay so the
// copy can finish, and handed to the ingest service under a rate limit.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driving"
	"github.com/inkwell-labs/bookdrip/internal/logger"
)

const (
	// defaultSettleDelay is how long a new file is left alone before
	// ingestion, so slow copies are not read half-written.
	defaultSettleDelay = 500 * time.Millisecond

	// defaultRateLimit caps ingestions per second.
	defaultRateLimit = rate.Limit(2)
)

// Watcher monitors one inbox directory for a single owner.
type Watcher struct {
	ingest      driving.IngestService
	ownerID     string
	dir         string
	policy      domain.SegmentationPolicy
	settleDelay time.Duration
	limiter     *rate.Limiter
}

// Option configures the watcher.
type Option func(*Watcher)

// WithSettleDelay overrides the delay between file creation and ingestion.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.settleDelay = d
	}
}

// WithRateLimit overrides the ingestion rate limit.
func WithRateLimit(limit rate.Limit) Option {
	return func(w *Watcher) {
		w.limiter = rate.NewLimiter(limit, 1)
	}
}

// New creates a watcher over the given inbox directory.
func New(ingest driving.IngestService, ownerID, dir string, policy domain.SegmentationPolicy, opts ...Option) *Watcher {
	w := &Watcher{
		ingest:      ingest,
		ownerID:     ownerID,
		dir:         dir,
		policy:      policy,
		settleDelay: defaultSettleDelay,
		limiter:     rate.NewLimiter(defaultRateLimit, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the inbox until the context is cancelled. Individual
// ingest failures are logged and skipped; only watch infrastructure
// errors stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("watching inbox %s for owner %s", w.dir, w.ownerID)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event, ok := <-fsw.Events:
				if !ok {
					return nil
				}
				if event.Op.Has(fsnotify.Create) {
					w.handle(ctx, event.Name)
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error: %v", err)
			}
		}
	})

	if err := g.Wait(); errors.Is(err, context.Canceled) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

// handle ingests one newly created file, if it looks like a book.
func (w *Watcher) handle(ctx context.Context, path string) {
	if _, err := domain.ParseFormat(path); err != nil {
		logger.Debug("ignoring %s: %v", filepath.Base(path), err)
		return
	}

	// Let the copy finish before reading.
	select {
	case <-time.After(w.settleDelay):
	case <-ctx.Done():
		return
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return
	}

	artifactID, err := w.ingest.Ingest(ctx, w.ownerID, path, w.policy)
	if err != nil {
		logger.Warn("ingesting %s: %v", filepath.Base(path), err)
		return
	}
	logger.Info("ingested %s as %s", filepath.Base(path), artifactID)
}
