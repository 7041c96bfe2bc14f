// Package bench times pipeline stages and renders the results as the
// fixed-width performance table the pipeline prints at the end of a run.
package bench

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

// Collector accumulates BenchmarkResults from one or more goroutines. The
// zero value is not usable; construct with NewCollector.
type Collector struct {
	mu      sync.Mutex
	results []models.BenchmarkResult
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Scope starts a timer for label and returns a stop function; calling it
// records the elapsed duration against itemCount and appends the result.
// The call is safe from any goroutine, so a stage that itself spawns
// concurrent work can still contribute a single measurement.
//
//	defer collector.Scope("Parse", int64(len(lines)))()
func (c *Collector) Scope(label string, itemCount int64) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		c.mu.Lock()
		c.results = append(c.results, models.BenchmarkResult{
			Label:      label,
			DurationNs: elapsed.Nanoseconds(),
			ItemCount:  itemCount,
		})
		c.mu.Unlock()
	}
}

// Results returns a snapshot of the measurements recorded so far.
func (c *Collector) Results() []models.BenchmarkResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.BenchmarkResult, len(c.results))
	copy(out, c.results)
	return out
}

// Report renders results as a fixed-width box-drawing performance table
// with a totals row summing every stage's duration.
func Report(results []models.BenchmarkResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("╔══════════════════════════════════════════════════════════════╗\n")
	b.WriteString("║           MarketStream ETL — Performance Report              ║\n")
	b.WriteString("╠══════════════════╦══════════════╦═════════════╦═════════════╣\n")
	b.WriteString("║ Stage            ║ Duration(ms) ║  ns/trade   ║ trades/sec  ║\n")
	b.WriteString("╠══════════════════╬══════════════╬═════════════╬═════════════╣\n")

	var totalNs int64
	for _, r := range results {
		totalNs += r.DurationNs
		fmt.Fprintf(&b, "║ %-16s ║ %12.3f ║ %11.1f ║ %11.0f ║\n",
			r.Label, r.DurationMs(), r.NsPerItem(), r.ItemsPerSecond())
	}

	b.WriteString("╠══════════════════╬══════════════╬═════════════╬═════════════╣\n")
	totalMs := float64(totalNs) / 1e6
	fmt.Fprintf(&b, "║ %-16s ║ %12.3f ║             ║             ║\n", "TOTAL PIPELINE", totalMs)
	b.WriteString("╚══════════════════╩══════════════╩═════════════╩═════════════╝\n")

	return b.String()
}
