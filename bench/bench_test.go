package bench

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeRecordsOneResult(t *testing.T) {
	c := NewCollector()
	stop := c.Scope("Parse", 100)
	time.Sleep(time.Millisecond)
	stop()

	results := c.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "Parse", results[0].Label)
	assert.EqualValues(t, 100, results[0].ItemCount)
	assert.Greater(t, results[0].DurationNs, int64(0))
}

func TestScopeIsSafeForConcurrentStages(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop := c.Scope("Stage", 1)
			stop()
		}()
	}
	wg.Wait()

	assert.Len(t, c.Results(), 20)
}

func TestReportContainsEveryLabelAndTotalsRow(t *testing.T) {
	c := NewCollector()
	c.Scope("Parse", 10)()
	c.Scope("Validate", 10)()

	out := Report(c.Results())
	assert.Contains(t, out, "Parse")
	assert.Contains(t, out, "Validate")
	assert.Contains(t, out, "TOTAL PIPELINE")
	assert.True(t, strings.Count(out, "\n") > 5)
}

func TestReportOnEmptyResultsStillRendersHeader(t *testing.T) {
	out := Report(nil)
	assert.Contains(t, out, "Performance Report")
	assert.Contains(t, out, "TOTAL PIPELINE")
}
