// Package maintenance purges expired sync log entries, optionally archiving them first.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"timeclock-sync/internal/model"
	"timeclock-sync/internal/repository"

	"go.uber.org/zap"
)

const DefaultBatchSize = 500

// Archiver stores a batch of sync log entries and returns where it put them.
type Archiver interface {
	Archive(ctx context.Context, entries []model.SyncLog) (string, error)
}

type Report struct {
	Cutoff   time.Time
	Deleted  int64
	Archives []string
}

// Cleaner deletes sync log entries older than the retention window. With an
// Archiver, every batch is archived before it is deleted and an archive failure
// stops the run before that batch is touched.
type Cleaner struct {
	store     repository.Store
	archiver  Archiver
	retention time.Duration
	batchSize int
	now       func() time.Time
	log       *zap.Logger
}

// NewCleaner builds a Cleaner. archiver may be nil.
func NewCleaner(store repository.Store, archiver Archiver, retention time.Duration, log *zap.Logger) *Cleaner {
	return &Cleaner{
		store:     store,
		archiver:  archiver,
		retention: retention,
		batchSize: DefaultBatchSize,
		now:       time.Now,
		log:       log,
	}
}

// WithClock replaces the wall clock, for tests.
func (c *Cleaner) WithClock(now func() time.Time) *Cleaner {
	c.now = now
	return c
}

func (c *Cleaner) WithBatchSize(n int) *Cleaner {
	if n > 0 {
		c.batchSize = n
	}
	return c
}

func (c *Cleaner) Purge(ctx context.Context) (Report, error) {
	report := Report{Cutoff: c.now().Add(-c.retention)}

	if c.archiver == nil {
		n, err := c.store.SyncLogs().DeleteOlderThan(ctx, report.Cutoff)
		report.Deleted = n
		return report, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		batch, err := c.store.SyncLogs().ListOlderThan(ctx, report.Cutoff, c.batchSize)
		if err != nil {
			return report, err
		}
		if len(batch) == 0 {
			return report, nil
		}

		location, err := c.archiver.Archive(ctx, batch)
		if err != nil {
			return report, fmt.Errorf("archive sync logs: %w", err)
		}
		report.Archives = append(report.Archives, location)

		ids := make([]uint, 0, len(batch))
		for _, entry := range batch {
			ids = append(ids, entry.ID)
		}
		n, err := c.store.SyncLogs().DeleteByIDs(ctx, ids)
		report.Deleted += n
		if err != nil {
			return report, err
		}
		if n == 0 {
			// the batch is still listed, another pass would archive it again
			c.log.Warn("sync log purge made no progress", zap.Int("batch", len(ids)))
			return report, nil
		}
	}
}

// Run purges once immediately and then every interval until ctx is done.
// Runs never overlap.
func (c *Cleaner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		c.runOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (c *Cleaner) runOnce(ctx context.Context) {
	report, err := c.Purge(ctx)
	if err != nil {
		c.log.Error("sync log purge failed",
			zap.Time("cutoff", report.Cutoff),
			zap.Int64("deleted", report.Deleted),
			zap.Error(err),
		)
		return
	}
	c.log.Info("sync log purge finished",
		zap.Time("cutoff", report.Cutoff),
		zap.Int64("deleted", report.Deleted),
		zap.Strings("archives", report.Archives),
	)
}
