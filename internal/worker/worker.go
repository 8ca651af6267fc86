package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lybic/lybic-sdk-go/internal/log"
)

// ErrClosed is returned when a unit is sent to a closed worker.
var ErrClosed = errors.New("worker is closed")

// Config is the configuration of the worker.
type Config struct {
	// QueueSize is the number of units that can wait to be run.
	QueueSize int
	Logger    log.Logger
}

func (c *Config) defaults() error {
	if c.QueueSize < 0 {
		return errors.New("queue size can't be negative")
	}
	if c.QueueSize == 0 {
		c.QueueSize = 16
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "worker.Worker"})
	return nil
}

type unit struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

// Worker runs units of work one at a time on a single goroutine.
type Worker struct {
	queue     chan unit
	stopped   chan struct{}
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	logger    log.Logger
}

// New returns a started worker.
func New(cfg Config) (*Worker, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	w := &Worker{
		queue:   make(chan unit, cfg.QueueSize),
		stopped: make(chan struct{}),
		logger:  cfg.Logger,
	}
	go w.loop()

	return w, nil
}

func (w *Worker) loop() {
	defer close(w.stopped)
	for u := range w.queue {
		// Units whose caller already gave up are skipped.
		if err := u.ctx.Err(); err != nil {
			u.done <- err
			continue
		}
		u.done <- u.fn(u.ctx)
	}
	w.logger.Debugf("Worker stopped")
}

// Do enqueues fn and blocks until it has been run. If ctx is done before the
// unit starts, the unit is skipped and the context error returned.
func (w *Worker) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u := unit{ctx: ctx, fn: fn, done: make(chan error, 1)}

	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		return ErrClosed
	}
	select {
	case w.queue <- u:
		w.mu.RUnlock()
	case <-ctx.Done():
		w.mu.RUnlock()
		return ctx.Err()
	}

	return <-u.done
}

// Close stops accepting units, waits for the queued ones to finish and stops
// the worker. It's safe to call multiple times.
func (w *Worker) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.queue)
		w.mu.Unlock()
	})
	<-w.stopped
	return nil
}
