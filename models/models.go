// Package models holds the in-memory and persisted shapes that flow through
// the pipeline: the trade Record, the derived IndicatorRow, and the small
// result types the Validator and Parser return.
package models

// Record is one trade execution, as produced by the Parser and read-only
// from the Validator onward. Ordering is lexicographic on (Timestamp, TradeID).
type Record struct {
	TradeID   uint64
	OrderID   uint64
	Timestamp int64
	Symbol    string
	Price     float64
	Volume    uint32
	Side      byte
	Type      byte
	IsPro     bool
}

// Less implements the ordering contract of spec.md §3: lexicographic on
// (timestamp, trade_id).
func (r Record) Less(other Record) bool {
	if r.Timestamp != other.Timestamp {
		return r.Timestamp < other.Timestamp
	}
	return r.TradeID < other.TradeID
}

// Trade is the persisted row shape for the `trades` table, mapped via GORM
// for schema bootstrap and read-side queries. The hot bulk-insert path
// (store.CopySpan) writes directly off Record and never materializes Trade.
type Trade struct {
	TradeID   uint64  `gorm:"column:trade_id;primaryKey" json:"trade_id"`
	OrderID   uint64  `gorm:"column:order_id" json:"order_id"`
	Timestamp int64   `gorm:"column:timestamp;index:idx_trades_symbol_ts,priority:2" json:"timestamp"`
	Symbol    string  `gorm:"column:symbol;size:10;index:idx_trades_symbol_ts,priority:1" json:"symbol"`
	Price     float64 `gorm:"column:price" json:"price"`
	Volume    uint32  `gorm:"column:volume" json:"volume"`
	Side      string  `gorm:"column:side;size:1" json:"side"`
	Type      string  `gorm:"column:type;size:1" json:"type"`
	IsPro     bool    `gorm:"column:is_pro" json:"is_pro"`
}

func (Trade) TableName() string { return "trades" }

// IndicatorRow is one symbol's derived metrics for one pipeline run. Every
// run produces exactly one row per distinct symbol seen in its input, all
// sharing the same ComputedAt timestamp.
type IndicatorRow struct {
	ID         uint64  `gorm:"column:id;primaryKey" json:"id"`
	Symbol     string  `gorm:"column:symbol;index:idx_indicators_symbol_computed,priority:1" json:"symbol"`
	SMA        float64 `gorm:"column:sma" json:"sma"`
	RSI        float64 `gorm:"column:rsi" json:"rsi"`
	VWAP       float64 `gorm:"column:vwap" json:"vwap"`
	Period     int     `gorm:"column:period" json:"period"`
	ComputedAt int64   `gorm:"column:computed_at;index:idx_indicators_symbol_computed,priority:2" json:"computed_at"`
}

func (IndicatorRow) TableName() string { return "indicators" }

// ValidationOutcome is the sum type returned by the Validator: either Ok, or
// Reject carrying a human-readable reason naming the offending value.
type ValidationOutcome struct {
	Ok     bool
	Reason string
}

// Accepted is a convenience constructor for a passing outcome.
func Accepted() ValidationOutcome { return ValidationOutcome{Ok: true} }

// Rejected is a convenience constructor for a failing outcome.
func Rejected(reason string) ValidationOutcome { return ValidationOutcome{Ok: false, Reason: reason} }

// BenchmarkResult is a single timed measurement: a label, an elapsed
// duration in nanoseconds, and the number of items that duration covered.
// Throughput and per-item latency are derived, never stored, to avoid
// drifting out of sync with the underlying measurement.
type BenchmarkResult struct {
	Label      string
	DurationNs int64
	ItemCount  int64
}

// DurationMs returns the elapsed time in milliseconds.
func (b BenchmarkResult) DurationMs() float64 {
	return float64(b.DurationNs) / 1e6
}

// NsPerItem returns the average per-item latency, or 0 if ItemCount is 0.
func (b BenchmarkResult) NsPerItem() float64 {
	if b.ItemCount == 0 {
		return 0
	}
	return float64(b.DurationNs) / float64(b.ItemCount)
}

// ItemsPerSecond returns throughput, or 0 if DurationNs is 0.
func (b BenchmarkResult) ItemsPerSecond() float64 {
	if b.DurationNs == 0 {
		return 0
	}
	return float64(b.ItemCount) * 1e9 / float64(b.DurationNs)
}
