package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordLess(t *testing.T) {
	a := Record{Timestamp: 100, TradeID: 5}
	b := Record{Timestamp: 100, TradeID: 6}
	c := Record{Timestamp: 101, TradeID: 1}

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, b.Less(c))
}

func TestValidationOutcomeConstructors(t *testing.T) {
	ok := Accepted()
	assert.True(t, ok.Ok)
	assert.Empty(t, ok.Reason)

	rej := Rejected("invalid price: 0")
	assert.False(t, rej.Ok)
	assert.Equal(t, "invalid price: 0", rej.Reason)
}

func TestBenchmarkResultDerived(t *testing.T) {
	r := BenchmarkResult{Label: "Parse", DurationNs: 2_000_000_000, ItemCount: 1_000_000}

	assert.InDelta(t, 2000.0, r.DurationMs(), 1e-9)
	assert.InDelta(t, 2000.0, r.NsPerItem(), 1e-9)
	assert.InDelta(t, 500_000.0, r.ItemsPerSecond(), 1e-6)
}

func TestBenchmarkResultZeroEdgeCases(t *testing.T) {
	empty := BenchmarkResult{Label: "NoOp", DurationNs: 0, ItemCount: 0}
	assert.Equal(t, 0.0, empty.NsPerItem())
	assert.Equal(t, 0.0, empty.ItemsPerSecond())
}

func TestTradeTableName(t *testing.T) {
	assert.Equal(t, "trades", Trade{}.TableName())
	assert.Equal(t, "indicators", IndicatorRow{}.TableName())
}
