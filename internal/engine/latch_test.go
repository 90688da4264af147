package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLatchRunsBootstrapOnce(t *testing.T) {
	var latch bootstrapLatch
	var calls atomic.Int32

	started := make(chan struct{})
	release := make(chan struct{})
	bootstrap := func(context.Context) error {
		calls.Add(1)
		close(started)
		<-release
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = latch.run(context.Background(), bootstrap)
	}()
	<-started

	for i := 1; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = latch.run(context.Background(), func(context.Context) error {
				t.Error("second bootstrap must not run while one is in flight")
				return nil
			})
		}(i)
	}

	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: %v", i, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("bootstrap ran %d times", calls.Load())
	}
	if !latch.ready() {
		t.Fatal("latch should be ready")
	}
}

func TestLatchRetriesAfterFailure(t *testing.T) {
	var latch bootstrapLatch
	boom := errors.New("boom")
	attempts := 0
	bootstrap := func(context.Context) error {
		attempts++
		if attempts == 1 {
			return boom
		}
		return nil
	}

	if err := latch.run(context.Background(), bootstrap); !errors.Is(err, boom) {
		t.Fatalf("first attempt: %v", err)
	}
	if latch.ready() {
		t.Fatal("latch must not be ready after failure")
	}
	if err := latch.run(context.Background(), bootstrap); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if !latch.ready() {
		t.Fatal("latch should be ready after retry")
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d", attempts)
	}
}

func TestLatchWaiterSeesSharedFailure(t *testing.T) {
	var latch bootstrapLatch
	boom := errors.New("boom")

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = latch.run(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return boom
		})
	}()
	<-started

	done := make(chan error, 1)
	go func() {
		done <- latch.run(context.Background(), func(context.Context) error {
			t.Error("waiter must not start its own attempt")
			return nil
		})
	}()

	close(release)
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("waiter error = %v, want shared failure", err)
	}
}

func TestLatchWaiterHonorsContext(t *testing.T) {
	var latch bootstrapLatch

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	go func() {
		_ = latch.run(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := latch.run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
