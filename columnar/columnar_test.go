package columnar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

func TestOutputPathFormat(t *testing.T) {
	at := time.Date(2026, 8, 6, 14, 5, 9, 0, time.UTC)
	path := OutputPath("/data", at)
	assert.Equal(t, filepath.Join("/data", "trades_20260806_140509.parquet"), path)
}

func TestWriteProducesNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trades.parquet")

	records := []models.Record{
		{TradeID: 1, OrderID: 1, Timestamp: 1, Symbol: "AAA", Price: 1.5, Volume: 10, Side: 'B', Type: 'L', IsPro: false},
		{TradeID: 2, OrderID: 2, Timestamp: 2, Symbol: "BBB", Price: 2.5, Volume: 20, Side: 'S', Type: 'M', IsPro: true},
	}

	err := Write(records, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteOnEmptyInputStillProducesValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.parquet")

	err := Write(nil, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
