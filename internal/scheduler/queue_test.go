package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueue_RunsTasksConcurrentlyUpToConcurrencyLimit(t *testing.T) {
	q := New(WithConcurrency(2))
	q.Start()
	defer q.Stop()

	var inFlight int32
	var maxSeen int32
	var wg sync.WaitGroup

	for i := 0; i < 6; i++ {
		wg.Add(1)
		if _, err := q.Submit("work", func(ctx context.Context) error {
			defer wg.Done()
			n := atomic.AddInt32(&inFlight, 1)
			for {
				cur := atomic.LoadInt32(&maxSeen)
				if n <= cur || atomic.CompareAndSwapInt32(&maxSeen, cur, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil
		}); err != nil {
			t.Fatalf("unexpected submit error: %v", err)
		}
	}

	wg.Wait()
	if atomic.LoadInt32(&maxSeen) > 2 {
		t.Fatalf("expected at most 2 concurrent tasks, saw %d", maxSeen)
	}
}

func TestQueue_SubmitBeforeStartFails(t *testing.T) {
	q := New()
	if _, err := q.Submit("work", func(ctx context.Context) error { return nil }); err == nil {
		t.Fatalf("expected an error submitting to a queue that hasn't started")
	}
}

func TestQueue_TaskTimeoutIsEnforced(t *testing.T) {
	var errMu sync.Mutex
	var gotErr error
	done := make(chan struct{})
	q2 := New(WithConcurrency(1), WithTaskTimeout(20*time.Millisecond), WithErrorHandler(func(task Task, err error) {
		errMu.Lock()
		gotErr = err
		errMu.Unlock()
		close(done)
	}))
	q2.Start()
	defer q2.Stop()

	if _, err := q2.Submit("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected the error handler to fire on timeout")
	}

	errMu.Lock()
	defer errMu.Unlock()
	if gotErr == nil {
		t.Fatalf("expected a timeout error")
	}
}

func TestQueue_RecoversFromPanickingTask(t *testing.T) {
	done := make(chan error, 1)
	q := New(WithConcurrency(1), WithErrorHandler(func(task Task, err error) {
		done <- err
	}))
	q.Start()
	defer q.Stop()

	if _, err := q.Submit("boom", func(ctx context.Context) error {
		panic("boom")
	}); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected a non-nil error recovered from the panic")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected the panicking task to be recovered and reported")
	}
}

func TestQueue_MetricsRecordSuccessAndFailure(t *testing.T) {
	q := New(WithConcurrency(1))
	q.Start()
	defer q.Stop()

	var wg sync.WaitGroup
	wg.Add(2)
	q.Submit("ok", func(ctx context.Context) error { defer wg.Done(); return nil })
	q.Submit("ok", func(ctx context.Context) error { defer wg.Done(); return errors.New("fail") })
	wg.Wait()
	time.Sleep(10 * time.Millisecond)

	snap := q.Metrics()
	if snap.Submitted["ok"] != 2 || snap.Succeeded["ok"] != 1 || snap.Failed["ok"] != 1 {
		t.Fatalf("unexpected metrics snapshot: %+v", snap)
	}
}

func TestQueue_ShutdownDrainsInFlightTasks(t *testing.T) {
	q := New(WithConcurrency(1))
	q.Start()

	var ran int32
	q.Submit("work", func(ctx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&ran, 1)
		return nil
	})

	q.Shutdown()
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatalf("expected the in-flight task to complete before Shutdown returns")
	}

	if _, err := q.Submit("work", func(ctx context.Context) error { return nil }); err == nil {
		t.Fatalf("expected submit to fail after shutdown")
	}
}
