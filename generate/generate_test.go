package generate

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesHeaderAndRequestedRowCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")

	err := Generate(path, Options{NumTrades: 50, Seed: 7})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	assert.Equal(t, "trade_id,order_id,timestamp,symbol,price,volume,side,type,is_pro", scanner.Text())

	lines := 0
	for scanner.Scan() {
		lines++
	}
	assert.Equal(t, 50, lines)
}

func TestGenerateIsReproducibleForSameSeed(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")

	require.NoError(t, Generate(pathA, Options{NumTrades: 20, Seed: 42}))
	require.NoError(t, Generate(pathB, Options{NumTrades: 20, Seed: 42}))

	a, err := os.ReadFile(pathA)
	require.NoError(t, err)
	b, err := os.ReadFile(pathB)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateRowsHaveNineFieldsAndValidEnums(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, Generate(path, Options{NumTrades: 200, Seed: 1}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())

	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ",")
		require.Len(t, fields, 9)
		assert.Contains(t, []string{"B", "S"}, fields[6])
		assert.Contains(t, []string{"M", "L", "I"}, fields[7])
		assert.Contains(t, []string{"0", "1"}, fields[8])
	}
}

func TestGenerateTimestampsAreStrictlyIncreasing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, Generate(path, Options{NumTrades: 100, Seed: 3}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())

	var prev int64
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ",")
		ts := parseInt(t, fields[2])
		if prev != 0 {
			assert.Greater(t, ts, prev)
		}
		prev = ts
	}
}

func parseInt(t *testing.T, s string) int64 {
	t.Helper()
	var v int64
	for _, c := range s {
		v = v*10 + int64(c-'0')
	}
	return v
}
