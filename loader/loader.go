// Package loader orchestrates the three-phase parallel bulk load of §4.7:
// prepare (drop indexes), copy (N-way parallel COPY streams), finalize
// (rebuild indexes), with indicator persistence running concurrently in the
// background across the whole load.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
	"github.com/NikhilTalatule/MarketStream-ETL/pool"
	"github.com/NikhilTalatule/MarketStream-ETL/store"
)

// Span is a non-owning, non-overlapping view into the immutable Record
// buffer: [Offset, Offset+Length) of the original slice.
type Span struct {
	Offset int
	Length int
}

// Partition splits n items into N contiguous, non-overlapping spans
// covering [0, n) exactly. chunk_size = n/N, remainder = n mod N; the first
// remainder spans get chunk_size+1 items, the rest get chunk_size.
func Partition(n, workers int) []Span {
	if workers < 1 {
		panic("loader: workers must be at least 1")
	}
	chunkSize := n / workers
	remainder := n % workers

	spans := make([]Span, workers)
	offset := 0
	for i := 0; i < workers; i++ {
		length := chunkSize
		if i < remainder {
			length++
		}
		spans[i] = Span{Offset: offset, Length: length}
		offset += length
	}
	return spans
}

// Result summarizes one completed parallel load.
type Result struct {
	TradesCopied     int64
	IndicatorsSaved  int
	PrepareDuration  time.Duration
	CopyDuration     time.Duration
	FinalizeDuration time.Duration
}

// Run executes P1 → P2 → P3 against connString, using workerCount P2
// workers drawn from p, and saves indicatorRows as a background task
// spanning the whole load. It follows spec.md's state machine: a failure
// in P1 aborts before any worker launches; a failure in any P2 worker is
// collected from every future (not just wait_all) and the first one is
// surfaced; a failure in P3 leaves data loaded but unindexed.
func Run(ctx context.Context, p *pool.Pool, db *pgxpool.Pool, connString string, records []models.Record, indicatorRows []models.IndicatorRow, workerCount int, log *logrus.Logger) (Result, error) {
	var result Result
	computedAt := time.Now().UnixNano()

	indicatorFuture, err := pool.Submit(p, func() (int, error) {
		if err := store.SaveIndicators(ctx, db, indicatorRows, computedAt); err != nil {
			return 0, err
		}
		return len(indicatorRows), nil
	})
	if err != nil {
		return result, fmt.Errorf("loader: submit indicator task: %w", err)
	}

	prepareStart := time.Now()
	if err := store.Prepare(ctx, db); err != nil {
		return result, fmt.Errorf("loader: P1 prepare failed, schema left intact: %w", err)
	}
	result.PrepareDuration = time.Since(prepareStart)
	log.Info("loader: P1 prepare complete")

	copyStart := time.Now()
	spans := Partition(len(records), workerCount)
	futures := make([]*pool.Future[int64], 0, len(spans))
	for _, span := range spans {
		span := span
		fut, err := pool.Submit(p, func() (int64, error) {
			part := records[span.Offset : span.Offset+span.Length]
			return store.CopySpan(ctx, connString, part)
		})
		if err != nil {
			return result, fmt.Errorf("loader: submit P2 worker: %w", err)
		}
		futures = append(futures, fut)
	}

	p.WaitAll()

	var firstErr error
	var totalCopied int64
	for _, fut := range futures {
		n, err := fut.Get()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		totalCopied += n
	}
	if firstErr != nil {
		return result, fmt.Errorf("loader: P2 copy failed, needs manual truncate and rerun: %w", firstErr)
	}
	result.CopyDuration = time.Since(copyStart)
	result.TradesCopied = totalCopied
	log.WithField("rows", totalCopied).Info("loader: P2 copy complete")

	finalizeStart := time.Now()
	if err := store.Finalize(ctx, db); err != nil {
		return result, fmt.Errorf("loader: P3 finalize failed, data loaded but unindexed, retry finalize manually: %w", err)
	}
	result.FinalizeDuration = time.Since(finalizeStart)
	log.Info("loader: P3 finalize complete")

	saved, err := indicatorFuture.Get()
	if err != nil {
		return result, fmt.Errorf("loader: indicator save failed: %w", err)
	}
	result.IndicatorsSaved = saved

	return result, nil
}
