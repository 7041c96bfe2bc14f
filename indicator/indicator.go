// Package indicator groups validated Records by symbol and derives SMA,
// RSI, and VWAP per symbol, following the windowing rules of §4.5.
package indicator

import (
	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

// ComputeAll groups records by symbol preserving insertion order within
// each group, then derives one IndicatorRow per distinct symbol. period is
// the configured window; the effective window per symbol is
// min(period, records for that symbol).
func ComputeAll(records []models.Record, period int) []models.IndicatorRow {
	if len(records) == 0 {
		return nil
	}

	type series struct {
		prices  []float64
		volumes []uint32
	}

	order := make([]string, 0)
	bySymbol := make(map[string]*series)

	for _, r := range records {
		s, ok := bySymbol[r.Symbol]
		if !ok {
			s = &series{}
			bySymbol[r.Symbol] = s
			order = append(order, r.Symbol)
		}
		s.prices = append(s.prices, r.Price)
		s.volumes = append(s.volumes, r.Volume)
	}

	rows := make([]models.IndicatorRow, 0, len(order))
	for _, symbol := range order {
		s := bySymbol[symbol]
		effective := period
		if n := len(s.prices); effective > n {
			effective = n
		}

		rows = append(rows, models.IndicatorRow{
			Symbol: symbol,
			SMA:    sma(s.prices, effective),
			RSI:    rsi(s.prices, effective),
			VWAP:   vwap(s.prices, s.volumes),
			Period: effective,
		})
	}

	return rows
}

// Signal classifies an RSI reading: OVERBOUGHT at 70 or above, OVERSOLD at
// 30 or below, NEUTRAL otherwise. It is an annotation, not part of the
// persisted row; the pipeline does not call it.
func Signal(rsiValue float64) string {
	switch {
	case rsiValue >= 70.0:
		return "OVERBOUGHT"
	case rsiValue <= 30.0:
		return "OVERSOLD"
	default:
		return "NEUTRAL"
	}
}

func sma(prices []float64, period int) float64 {
	if len(prices) == 0 || period <= 0 {
		return 0.0
	}
	window := prices[len(prices)-period:]
	var sum float64
	for _, p := range window {
		sum += p
	}
	return sum / float64(period)
}

func rsi(prices []float64, period int) float64 {
	if len(prices) < 2 || period <= 1 {
		return 50.0
	}

	startIdx := len(prices) - period - 1
	if startIdx < 0 {
		startIdx = 0
	}

	var avgGain, avgLoss float64
	count := 0
	for i := startIdx + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
		count++
	}

	if count == 0 {
		return 50.0
	}

	avgGain /= float64(count)
	avgLoss /= float64(count)

	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

func vwap(prices []float64, volumes []uint32) float64 {
	if len(prices) == 0 {
		return 0.0
	}

	var totalValue, totalVolume float64
	for i := range prices {
		totalValue += prices[i] * float64(volumes[i])
		totalVolume += float64(volumes[i])
	}

	if totalVolume == 0 {
		return 0.0
	}
	return totalValue / totalVolume
}
