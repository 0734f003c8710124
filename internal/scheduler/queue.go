// Package scheduler implements a bounded-concurrency task queue for
// background work (in this build its metrics feed the health endpoint;
// no caller submits tasks to it), plus the chunked-emission helper used
// by cancellable editor requests such as references and rename.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultConcurrency and DefaultTaskTimeout match the bounded-concurrency
// task queue's defaults: two workers, a minute per task.
const (
	DefaultConcurrency = 2
	DefaultTaskTimeout = 60 * time.Second
)

// Task is a unit of background work submitted to a Queue.
type Task struct {
	ID   string
	Name string
	Fn   func(ctx context.Context) error
}

// Queue runs submitted tasks on a fixed-size worker pool, cancelling any
// task that runs past its timeout.
type Queue struct {
	concurrency int
	timeout     time.Duration

	tasks  chan Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	started  bool
	shutdown bool

	onError func(task Task, err error)

	metrics *Metrics
}

// Option configures a Queue.
type Option func(*Queue)

// WithConcurrency overrides the default worker count.
func WithConcurrency(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.concurrency = n
		}
	}
}

// WithTaskTimeout overrides the default per-task timeout.
func WithTaskTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// WithErrorHandler registers a callback invoked when a task returns an
// error or times out. By default errors are only recorded in Metrics.
func WithErrorHandler(fn func(task Task, err error)) Option {
	return func(q *Queue) {
		q.onError = fn
	}
}

// New creates a queue with the given options, applying defaults for any
// unset concurrency or timeout.
func New(opts ...Option) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		concurrency: DefaultConcurrency,
		timeout:     DefaultTaskTimeout,
		tasks:       make(chan Task, 128),
		ctx:         ctx,
		cancel:      cancel,
		metrics:     newMetrics(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Start launches the worker pool. Calling Start more than once is a no-op.
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	for i := 0; i < q.concurrency; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case task, ok := <-q.tasks:
			if !ok {
				return
			}
			q.run(task)
		}
	}
}

func (q *Queue) run(task Task) {
	ctx, cancel := context.WithTimeout(q.ctx, q.timeout)
	defer cancel()

	start := time.Now()
	err := q.invoke(ctx, task)
	q.metrics.record(task.Name, err, time.Since(start))

	if err != nil && q.onError != nil {
		q.onError(task, err)
	}
}

// invoke calls the task function with panic recovery, and folds a
// deadline-exceeded context into the returned error.
func (q *Queue) invoke(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", task.Name, r)
		}
	}()

	done := make(chan error, 1)
	go func() { done <- task.Fn(ctx) }()

	select {
	case err = <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit enqueues a task and returns its generated ID. It blocks if the
// queue's internal buffer is full.
func (q *Queue) Submit(name string, fn func(ctx context.Context) error) (string, error) {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return "", fmt.Errorf("scheduler: queue not started")
	}
	if q.shutdown {
		q.mu.Unlock()
		return "", fmt.Errorf("scheduler: queue shut down")
	}
	q.mu.Unlock()

	task := Task{ID: uuid.NewString(), Name: name, Fn: fn}
	select {
	case q.tasks <- task:
		return task.ID, nil
	case <-q.ctx.Done():
		return "", fmt.Errorf("scheduler: queue closed")
	}
}

// Metrics returns a snapshot of queue statistics, for the health endpoint.
func (q *Queue) Metrics() Snapshot {
	return q.metrics.snapshot()
}

// Shutdown stops accepting new tasks and waits for in-flight ones to drain.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	if !q.started || q.shutdown {
		q.mu.Unlock()
		return
	}
	q.shutdown = true
	q.mu.Unlock()

	close(q.tasks)
	q.wg.Wait()
}

// Stop cancels in-flight tasks immediately rather than draining the queue.
func (q *Queue) Stop() {
	q.cancel()
	q.wg.Wait()
}
