package pool

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAndGet(t *testing.T) {
	p := New(4)
	defer p.Shutdown()

	fut, err := Submit(p, func() (int, error) { return 21 * 2, nil })
	require.NoError(t, err)

	v, err := fut.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSubmitPropagatesError(t *testing.T) {
	p := New(2)
	defer p.Shutdown()

	boom := errors.New("boom")
	fut, err := Submit(p, func() (int, error) { return 0, boom })
	require.NoError(t, err)

	_, err = fut.Get()
	assert.ErrorIs(t, err, boom)
}

func TestWaitAllBlocksUntilDrained(t *testing.T) {
	p := New(4)
	defer p.Shutdown()

	var completed atomic.Int64
	for i := 0; i < 50; i++ {
		_, err := Submit(p, func() (struct{}, error) {
			time.Sleep(time.Millisecond)
			completed.Add(1)
			return struct{}{}, nil
		})
		require.NoError(t, err)
	}

	p.WaitAll()
	assert.EqualValues(t, 50, completed.Load())
}

func TestSubmitAfterShutdownFails(t *testing.T) {
	p := New(2)
	p.Shutdown()

	_, err := Submit(p, func() (int, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestShutdownDrainsQueuedWork(t *testing.T) {
	p := New(1)

	var ran atomic.Bool
	_, err := Submit(p, func() (int, error) {
		time.Sleep(5 * time.Millisecond)
		ran.Store(true)
		return 0, nil
	})
	require.NoError(t, err)

	p.Shutdown()
	assert.True(t, ran.Load(), "shutdown must let already-queued work finish")
}
