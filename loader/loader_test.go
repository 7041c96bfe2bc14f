package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionMatchesWorkedExample(t *testing.T) {
	spans := Partition(1_000_003, 4)
	require.Len(t, spans, 4)

	assert.Equal(t, Span{Offset: 0, Length: 250001}, spans[0])
	assert.Equal(t, Span{Offset: 250001, Length: 250001}, spans[1])
	assert.Equal(t, Span{Offset: 500002, Length: 250001}, spans[2])
	assert.Equal(t, Span{Offset: 750003, Length: 250000}, spans[3])

	var total int
	for _, s := range spans {
		total += s.Length
	}
	assert.Equal(t, 1_000_003, total)
}

func TestPartitionIsTotalNonOverlappingAndContiguous(t *testing.T) {
	cases := []struct{ n, workers int }{
		{0, 1}, {1, 1}, {7, 3}, {100, 7}, {1, 8}, {1_000_000, 16},
	}

	for _, tc := range cases {
		spans := Partition(tc.n, tc.workers)
		require.Len(t, spans, tc.workers)

		covered := 0
		for i, s := range spans {
			assert.Equal(t, covered, s.Offset, "span %d must start where the previous ended", i)
			assert.GreaterOrEqual(t, s.Length, 0)
			covered += s.Length
		}
		assert.Equal(t, tc.n, covered)
	}
}

func TestPartitionFirstRemainderWorkersGetOneExtra(t *testing.T) {
	spans := Partition(10, 3) // chunk=3, remainder=1
	require.Len(t, spans, 3)
	assert.Equal(t, 4, spans[0].Length)
	assert.Equal(t, 3, spans[1].Length)
	assert.Equal(t, 3, spans[2].Length)
}

func TestPartitionPanicsOnNonPositiveWorkerCount(t *testing.T) {
	assert.Panics(t, func() { Partition(10, 0) })
}
