// Package eventloop provides a single-goroutine task queue with timers whose
// callbacks run on the same goroutine.
package eventloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bowlrms/desktop/pkg/connection"
)

// DefaultQueueSize is used when New is given a non-positive size.
const DefaultQueueSize = 64

// Loop runs posted tasks one at a time, in post order, on the goroutine that
// calls Run.
type Loop struct {
	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Loop whose queue holds size pending tasks.
func New(size int) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Loop{
		tasks: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It blocks while the queue is full and returns false once the
// loop is closed. Tasks running on the loop must not Post into a full queue.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes tasks until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Close stops Run and rejects further tasks. Queued tasks are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// Done is closed when the loop is closed.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// AfterFunc schedules fn to run on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) connection.Timer {
	t := &timer{}
	t.rt = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Load() {
				return
			}
			t.fired.Store(true)
			fn()
		})
	})
	return t
}

// timer is a runtime timer whose callback is delivered through the loop.
// Stopping it on the loop wins even when the runtime timer has already
// fired and its task is queued.
type timer struct {
	rt      *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
}

func (t *timer) Stop() bool {
	if t.fired.Load() {
		return false
	}
	if t.stopped.Swap(true) {
		return false
	}
	t.rt.Stop()
	return true
}
