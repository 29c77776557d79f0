package eventloop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bowlrms/desktop/pkg/connection"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc, <-chan error) {
	t.Helper()
	l := New(0)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- l.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		l.Close()
	})
	return l, cancel, errCh
}

func TestPostRunsInOrder(t *testing.T) {
	l, _, _ := startLoop(t)

	results := make(chan int, 10)
	for i := 0; i < 10; i++ {
		i := i
		if !l.Post(func() { results <- i }) {
			t.Fatalf("Post(%d) = false", i)
		}
	}

	for want := 0; want < 10; want++ {
		select {
		case got := <-results:
			if got != want {
				t.Fatalf("task order: got %d, want %d", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for task")
		}
	}
}

func TestAfterFuncRunsOnLoop(t *testing.T) {
	l, _, _ := startLoop(t)

	// Both the timer callback and posted tasks mutate counter without locks;
	// the race detector flags this test if they ever run concurrently.
	counter := 0
	fired := make(chan int, 1)
	l.AfterFunc(20*time.Millisecond, func() {
		counter++
		fired <- counter
	})
	for i := 0; i < 5; i++ {
		l.Post(func() { counter++ })
	}

	select {
	case got := <-fired:
		if got != 6 {
			t.Errorf("counter = %d, want 6", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
}

func TestStoppedTimerNeverFires(t *testing.T) {
	l, _, _ := startLoop(t)

	fired := make(chan struct{}, 1)
	tm := l.AfterFunc(10*time.Millisecond, func() { fired <- struct{}{} })
	if !tm.Stop() {
		t.Error("Stop() = false for pending timer")
	}
	if tm.Stop() {
		t.Error("second Stop() = true")
	}

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStopWinsOverQueuedCallback(t *testing.T) {
	l, _, _ := startLoop(t)

	block := make(chan struct{})
	fired := make(chan struct{}, 1)
	stopped := make(chan bool, 1)

	var tm connection.Timer
	// Hold the loop until the runtime timer has fired and queued its task,
	// then stop the timer from the loop.
	l.Post(func() {
		<-block
		stopped <- tm.Stop()
	})
	tm = l.AfterFunc(time.Millisecond, func() { fired <- struct{}{} })
	time.Sleep(20 * time.Millisecond)
	close(block)

	if !<-stopped {
		t.Fatal("Stop() = false for a queued callback")
	}
	select {
	case <-fired:
		t.Fatal("callback ran after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStopAfterFire(t *testing.T) {
	l, _, _ := startLoop(t)

	fired := make(chan struct{})
	tm := l.AfterFunc(time.Millisecond, func() { close(fired) })
	<-fired

	stopped := make(chan bool, 1)
	l.Post(func() { stopped <- tm.Stop() })
	if <-stopped {
		t.Error("Stop() = true after the callback ran")
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	_, cancel, errCh := startLoop(t)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestCloseStopsRunAndRejectsPost(t *testing.T) {
	l, _, errCh := startLoop(t)
	l.Close()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	if l.Post(func() {}) {
		t.Error("Post() = true after Close")
	}
	select {
	case <-l.Done():
	default:
		t.Error("Done() not closed after Close")
	}

	// Close is idempotent.
	l.Close()
}
