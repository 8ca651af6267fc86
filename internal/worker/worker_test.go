package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/worker"
)

func TestWorkerRunsUnitsOneAtATime(t *testing.T) {
	w, err := worker.New(worker.Config{})
	require.NoError(t, err)
	defer w.Close()

	var running, maxRunning atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := w.Do(context.Background(), func(ctx context.Context) error {
				n := running.Add(1)
				for {
					m := maxRunning.Load()
					if n <= m || maxRunning.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				running.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestWorkerReturnsUnitError(t *testing.T) {
	w, err := worker.New(worker.Config{})
	require.NoError(t, err)
	defer w.Close()

	expErr := errors.New("whatever")
	err = w.Do(context.Background(), func(ctx context.Context) error { return expErr })
	assert.ErrorIs(t, err, expErr)
}

func TestWorkerSkipsCancelledUnits(t *testing.T) {
	w, err := worker.New(worker.Config{})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err = w.Do(ctx, func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWorkerClose(t *testing.T) {
	w, err := worker.New(worker.Config{})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	err = w.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, worker.ErrClosed)
}

func TestNewWorkerInvalidConfig(t *testing.T) {
	_, err := worker.New(worker.Config{QueueSize: -1})
	assert.Error(t, err)
}
