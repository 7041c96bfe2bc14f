package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

// Prepare is phase P1: truncate the table and drop its primary key and
// secondary index, on a single connection, serially. After Prepare returns
// successfully the table has no indexes, so the P2 bulk streams write at
// disk bandwidth with no per-row index maintenance.
func Prepare(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("store: prepare: acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: prepare: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	stmts := []string{
		`TRUNCATE trades`,
		`ALTER TABLE trades DROP CONSTRAINT IF EXISTS trades_pkey`,
		`DROP INDEX IF EXISTS idx_trades_symbol_ts`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("store: prepare: %s: %w", stmt, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store: prepare: commit: %w", err)
	}
	return nil
}

// Finalize is phase P3: rebuild the primary key and secondary index on a
// single connection, serially. ADD PRIMARY KEY performs a bulk sort-and-build
// that is far cheaper than per-row index maintenance would have been
// during P2.
func Finalize(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("store: finalize: acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: finalize: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	stmts := []string{
		`ALTER TABLE trades ADD CONSTRAINT trades_pkey PRIMARY KEY (trade_id)`,
		`CREATE INDEX idx_trades_symbol_ts ON trades (symbol, timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("store: finalize: %s: %w", stmt, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store: finalize: commit: %w", err)
	}
	return nil
}

var copyColumns = []string{"trade_id", "order_id", "timestamp", "symbol", "price", "volume", "side", "type", "is_pro"}

// recordCopySource streams a span of the immutable Record buffer through
// pgx's COPY protocol without materializing an intermediate [][]any for the
// whole span at once.
type recordCopySource struct {
	span []models.Record
	pos  int
}

func (s *recordCopySource) Next() bool {
	s.pos++
	return s.pos <= len(s.span)
}

func (s *recordCopySource) Values() ([]any, error) {
	r := s.span[s.pos-1]
	return []any{
		r.TradeID, r.OrderID, r.Timestamp, r.Symbol, r.Price,
		int32(r.Volume), string(r.Side), string(r.Type), r.IsPro,
	}, nil
}

func (s *recordCopySource) Err() error { return nil }

// CopySpan is one P2 worker: it opens its own connection and transaction,
// streams span through a COPY pipe, and commits. It never touches any other
// worker's connection or transaction.
func CopySpan(ctx context.Context, connString string, span []models.Record) (int64, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return 0, fmt.Errorf("store: copy: connect: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("store: copy: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"trades"}, copyColumns, &recordCopySource{span: span})
	if err != nil {
		return 0, fmt.Errorf("store: copy: stream %d records: %w", len(span), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("store: copy: commit: %w", err)
	}
	return n, nil
}

// SaveIndicators inserts rows with parameterized single-row statements
// inside one transaction, in parameter order (symbol, computed_at, sma,
// rsi, vwap, period). computedAt is stamped identically on every row.
func SaveIndicators(ctx context.Context, pool *pgxpool.Pool, rows []models.IndicatorRow, computedAt int64) error {
	if len(rows) == 0 {
		return nil
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("store: save indicators: acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: save indicators: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const insert = `INSERT INTO indicators (symbol, computed_at, sma, rsi, vwap, period) VALUES ($1, $2, $3, $4, $5, $6)`
	for _, row := range rows {
		if _, err := tx.Exec(ctx, insert, row.Symbol, computedAt, row.SMA, row.RSI, row.VWAP, row.Period); err != nil {
			return fmt.Errorf("store: save indicators: insert %s: %w", row.Symbol, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store: save indicators: commit: %w", err)
	}
	return nil
}
