// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// CategoryFetcher fetches the category tags of one entry.
type CategoryFetcher interface {
	FetchCategories(context context.Context, id int) ([]Category, error)
}

// EnrichReport summarizes one enrichment pass.
type EnrichReport struct {
	Total   int
	Failed  int
	Skipped int
	// Cancelled counts entries left unenriched because the context ended.
	Cancelled int
}

// Enricher attaches category data to every entry of a [Store].
type Enricher struct {
	fetcher CategoryFetcher
	limit   int
	logger  *slog.Logger
}

// NewEnricher creates an [Enricher] running at most limit fetches at once.
func NewEnricher(fetcher CategoryFetcher, limit int, logger *slog.Logger) *Enricher {
	if limit < 1 {
		limit = 1
	}
	return &Enricher{fetcher: fetcher, limit: limit, logger: logger}
}

/*
Enrich issues one category fetch per entry of the store snapshot.

Fetches run concurrently, bounded by the configured limit. A failed fetch
degrades that entry to an empty category list and never aborts the batch.
On return every entry of the snapshot has a non-nil category list, unless
the context ends mid-batch: the remaining entries are then left untouched
and counted as cancelled, without a warning per entry.

Returns:
  - EnrichReport: counts of processed and failed entries
  - error: only if the context was already done before the fan-out started
*/
func (enricher *Enricher) Enrich(context context.Context, store *Store) (EnrichReport, error) {
	if err := context.Err(); err != nil {
		return EnrichReport{}, fmt.Errorf("catalog: enrichment not started: %w", err)
	}

	snapshot := store.Snapshot()
	started := time.Now()

	var (
		failed    atomic.Int32
		skipped   atomic.Int32
		cancelled atomic.Int32
		group     errgroup.Group
	)
	group.SetLimit(enricher.limit)

	for _, entry := range snapshot {
		group.Go(func() error {
			// A superseded pipeline stops fetching; its store is discarded.
			if context.Err() != nil {
				cancelled.Add(1)
				return nil
			}

			categories, err := enricher.fetcher.FetchCategories(context, entry.ID)
			if err != nil {
				if context.Err() != nil {
					cancelled.Add(1)
					return nil
				}

				failed.Add(1)
				enricher.logger.WarnContext(context, "enrichment_fetch_failed",
					slog.Int("id", entry.ID),
					slog.String("name", entry.Name),
					slog.Any("error", err),
				)
				categories = []Category{}
			}

			if !store.UpdateCategories(entry.ID, categories) {
				skipped.Add(1)
			}

			// Per-entry failures are absorbed so the batch always completes.
			return nil
		})
	}

	_ = group.Wait()

	report := EnrichReport{
		Total:     len(snapshot),
		Failed:    int(failed.Load()),
		Skipped:   int(skipped.Load()),
		Cancelled: int(cancelled.Load()),
	}

	enricher.logger.InfoContext(context, "enrichment_finished",
		slog.Int("total", report.Total),
		slog.Int("failed", report.Failed),
		slog.Int("skipped", report.Skipped),
		slog.Int("cancelled", report.Cancelled),
		slog.Int64("latency_ms", time.Since(started).Milliseconds()),
	)

	return report, nil
}
