// Package worker defines the audit workers that drain the registration
// queue into the journal.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 2
	workerShutdownTimeout = 5 * time.Second
)

// Registration abstracts what workers read off the queue.
type Registration = model.Registration

// Queue defines how workers receive registration records.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Registration
}

// Sink receives drained registration records, typically the journal.
type Sink interface {
	Append(ctx context.Context, reg Registration) error
}

// Worker drains registration records from the queue into the sink.
type Worker struct {
	queue Queue
	sink  Sink
	name  string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a new audit worker with configuration options.
func NewWorker(queue Queue, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		sink:     sink,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop until ctx is canceled or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	records := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case reg, ok := <-records:
			if !ok {
				return
			}
			if err := w.process(ctx, reg); err != nil {
				w.logger.Error(ctx, "error recording registration", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process appends a single registration record to the sink.
func (w *Worker) process(ctx context.Context, reg Registration) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.sink.Append(ctx, reg); err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("append registration %s: %w", reg.ID, err)
	}

	w.logger.Debug(ctx, "registration recorded",
		logger.String("id", reg.ID),
		logger.String("activity", reg.Activity),
		logger.String("email", reg.Email),
		logger.String("action", string(reg.Action)),
	)
	return nil
}

// Pool manages multiple audit workers.
type Pool struct {
	workers []*Worker

	// Shutdown control
	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers:  make([]*Worker, workerCount),
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(queue, sink, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, w := range p.workers {
		select {
		case <-w.shutdown:
			// already signaled
		default:
			close(w.shutdown)
		}
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}

	metrics.UpdateWorkerActiveCount(0)
}
