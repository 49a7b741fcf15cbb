package index

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intranet/internal/category"
	"intranet/internal/graph"
	"intranet/internal/model"
)

// ErrSyncInFlight is returned when a sync is requested while the previous
// pass has not finished. The tick is skipped, never queued.
var ErrSyncInFlight = errors.New("sync pass already in flight")

// defaultMaxParallel bounds concurrent ListChildren calls per pass to respect
// the remote service's rate limits.
const defaultMaxParallel = 4

// FolderLister is the slice of the graph client the synchronizer needs.
type FolderLister interface {
	ListChildren(ctx context.Context, folderID string) ([]graph.DriveItem, error)
}

// Synchronizer rebuilds the index from every registered category on a fixed
// interval. Commit policy is all-or-nothing: the new snapshot is published
// only if every category enumeration succeeded; otherwise the previous
// snapshot is retained and the failures are logged.
type Synchronizer struct {
	index       *Index
	registry    *category.Registry
	lister      FolderLister
	interval    time.Duration
	maxParallel int
	metrics     *Metrics
	log         *zap.Logger

	inFlight atomic.Bool
}

// NewSynchronizer wires a synchronizer. metrics may be nil.
func NewSynchronizer(idx *Index, reg *category.Registry, lister FolderLister, interval time.Duration, metrics *Metrics, log *zap.Logger) *Synchronizer {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Synchronizer{
		index:       idx,
		registry:    reg,
		lister:      lister,
		interval:    interval,
		maxParallel: defaultMaxParallel,
		metrics:     metrics,
		log:         log,
	}
}

// Run performs one pass immediately, then one per interval until ctx is
// canceled. Failures are logged and never propagated; the next attempt is
// exactly one interval later, with no jitter or backoff.
func (s *Synchronizer) Run(ctx context.Context) {
	if err := s.SyncOnce(ctx); err != nil {
		s.log.Error("initial index sync failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncOnce(ctx); err != nil {
				s.log.Error("index sync failed", zap.Error(err))
			}
		}
	}
}

// SyncOnce runs a single pass. It refuses to overlap a pass already in
// flight.
func (s *Synchronizer) SyncOnce(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrSyncInFlight
	}
	defer s.inFlight.Store(false)

	start := time.Now()
	snap, failed, err := s.buildSnapshot(ctx)
	if err != nil {
		s.metrics.recordPass(false, 0)
		return fmt.Errorf("enumerate categories %v: %w", failed, err)
	}

	s.index.Publish(snap)
	s.metrics.recordPass(true, len(snap.Records))
	s.log.Info("index sync complete",
		zap.Int("documents", len(snap.Records)),
		zap.Int("categories", s.registry.Len()),
		zap.Duration("took", time.Since(start)))
	return nil
}

// buildSnapshot fans out over all registered categories with bounded
// concurrency. Each enumeration is independent: one category's failure does
// not abort the others, it is only recorded. A complete snapshot is returned
// only when every category succeeded.
func (s *Synchronizer) buildSnapshot(ctx context.Context) (*Snapshot, []string, error) {
	entries := s.registry.Entries()
	results := make([][]model.DocumentRecord, len(entries))
	errs := make([]error, len(entries))

	var g errgroup.Group
	g.SetLimit(s.maxParallel)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			items, err := s.lister.ListChildren(ctx, entry.FolderID)
			if err != nil {
				errs[i] = err
				return nil
			}
			records := make([]model.DocumentRecord, 0, len(items))
			for _, item := range items {
				records = append(records, model.DocumentRecord{
					ID:       item.ID,
					Name:     item.Name,
					Link:     item.Link(),
					Category: entry.Category,
					Size:     item.Size,
				})
			}
			results[i] = records
			return nil
		})
	}
	_ = g.Wait()

	var failed []string
	var firstErr error
	for i, err := range errs {
		if err != nil {
			failed = append(failed, entries[i].Category)
			if firstErr == nil {
				firstErr = err
			}
			s.log.Warn("category enumeration failed",
				zap.String("category", entries[i].Category),
				zap.Error(err))
		}
	}
	if firstErr != nil {
		return nil, failed, firstErr
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	records := make([]model.DocumentRecord, 0, total)
	for _, r := range results {
		records = append(records, r...)
	}

	return &Snapshot{Records: records, BuiltAt: time.Now().UTC()}, nil, nil
}
