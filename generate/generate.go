// Package generate produces synthetic exchange trade CSV files for stress
// testing and local development, standing in for a real feed. It is a thin
// collaborator outside the pipeline's hard core: the pipeline never calls
// it.
package generate

import (
	"bufio"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
)

// symbolWeights mirrors a realistic index-heavyweight distribution: each
// entry repeated N times gives it N times the selection probability.
var symbolWeights = []string{
	"RELIANCE", "RELIANCE", "RELIANCE",
	"TCS", "TCS", "TCS",
	"INFY", "INFY",
	"HDFC", "HDFC",
	"WIPRO",
	"ICICIBANK",
	"BAJFINANCE",
	"HCLTECH",
	"AXISBANK",
	"SBIN",
}

var startingPrice = map[string]float64{
	"RELIANCE":   2456.75,
	"TCS":        3567.50,
	"INFY":       1423.25,
	"HDFC":       1678.90,
	"WIPRO":      432.60,
	"ICICIBANK":  987.45,
	"BAJFINANCE": 6823.10,
	"HCLTECH":    1234.55,
	"AXISBANK":   987.30,
	"SBIN":       601.75,
}

// Oct 25 2023 10:05:00 IST (04:35:00 UTC), nanoseconds since epoch.
const startTimestamp int64 = 1698208500000000000

const (
	priceFloor   = 50.0
	priceCeiling = 99999.0
)

// Options configures a Generate run. Seed makes output reproducible: the
// same seed and count always produce byte-identical files.
type Options struct {
	NumTrades int
	Seed      uint64
}

// Generate writes a CSV file of synthetic trade rows to path, using a
// per-symbol random walk for price and NSE-like inter-trade timing.
func Generate(path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("generate: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)

	if _, err := w.WriteString("trade_id,order_id,timestamp,symbol,price,volume,side,type,is_pro\n"); err != nil {
		return fmt.Errorf("generate: write header: %w", err)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	prices := make(map[string]float64, len(startingPrice))
	for symbol, price := range startingPrice {
		prices[symbol] = price
	}

	timestamp := startTimestamp

	buf := make([]byte, 0, 96)
	for i := 0; i < opts.NumTrades; i++ {
		symbol := symbolWeights[rng.IntN(len(symbolWeights))]

		price := prices[symbol] + normal(rng, 0.0, 0.5)
		if price < priceFloor {
			price = priceFloor
		}
		if price > priceCeiling {
			price = priceCeiling
		}
		prices[symbol] = price

		volume := 10 + rng.IntN(5000-10+1)

		side := byte('B')
		if rng.IntN(2) == 1 {
			side = 'S'
		}

		var orderType byte
		switch roll := rng.IntN(10); {
		case roll < 3:
			orderType = 'M'
		case roll < 9:
			orderType = 'L'
		default:
			orderType = 'I'
		}

		isPro := 0
		if rng.IntN(5) == 0 {
			isPro = 1
		}

		timestamp += int64(5000 + rng.IntN(50000-5000+1))

		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(1000000+i), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(2000000+i), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, timestamp, 10)
		buf = append(buf, ',')
		buf = append(buf, symbol...)
		buf = append(buf, ',')
		buf = strconv.AppendFloat(buf, price, 'f', 2, 64)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(volume), 10)
		buf = append(buf, ',')
		buf = append(buf, side, ',', orderType, ',')
		buf = strconv.AppendInt(buf, int64(isPro), 10)
		buf = append(buf, '\n')

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("generate: write row %d: %w", i, err)
		}
	}

	return w.Flush()
}

// normal draws from N(mean, stddev) via the Box-Muller transform — the
// standard library does not expose a normal distribution directly.
func normal(rng *rand.Rand, mean, stddev float64) float64 {
	u1, u2 := rng.Float64(), rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stddev*z
}
