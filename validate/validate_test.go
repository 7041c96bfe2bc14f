package validate

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

func validRecord() models.Record {
	return models.Record{
		TradeID: 1, OrderID: 2, Timestamp: 1698208500000000001,
		Symbol: "RELIANCE", Price: 2456.75, Volume: 100, Side: 'B', Type: 'L',
	}
}

func TestValidateAcceptsWellFormedRecord(t *testing.T) {
	outcome := Validate(validRecord())
	assert.True(t, outcome.Ok)
	assert.Empty(t, outcome.Reason)
}

func TestValidateRejectsEachRule(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *models.Record)
		want   string
	}{
		{"lowercase symbol", func(r *models.Record) { r.Symbol = "reliance" }, "Invalid symbol"},
		{"zero price", func(r *models.Record) { r.Price = 0 }, "Invalid price"},
		{"zero volume", func(r *models.Record) { r.Volume = 0 }, "Invalid volume"},
		{"bad side", func(r *models.Record) { r.Side = 'X' }, "Invalid side"},
		{"bad type", func(r *models.Record) { r.Type = 'Q' }, "Invalid type"},
		{"zero timestamp", func(r *models.Record) { r.Timestamp = 0 }, "Invalid timestamp"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			tc.mutate(&r)
			outcome := Validate(r)
			assert.False(t, outcome.Ok)
			assert.Contains(t, outcome.Reason, tc.want)
		})
	}
}

func TestValidateChecksInOrderSymbolFirst(t *testing.T) {
	r := validRecord()
	r.Symbol = "reliance"
	r.Price = 0
	outcome := Validate(r)
	assert.Contains(t, outcome.Reason, "Invalid symbol")
}

func TestBatchPreservesOrderAndLogsRejects(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	bad := validRecord()
	bad.TradeID = 99
	bad.Price = 0

	records := []models.Record{validRecord(), bad, {TradeID: 2, OrderID: 1, Timestamp: 1, Symbol: "TCS", Price: 10, Volume: 1, Side: 'S', Type: 'M'}}

	clean := Batch(records, log)

	require.Len(t, clean, 2)
	assert.EqualValues(t, 1, clean[0].TradeID)
	assert.EqualValues(t, 2, clean[1].TradeID)

	var sawReject bool
	for _, entry := range hook.AllEntries() {
		if entry.Data["trade_id"] == uint64(99) {
			sawReject = true
		}
	}
	assert.True(t, sawReject)
}
