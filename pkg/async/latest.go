package async

import (
	"context"
	"fmt"
	"sync"
)

// Latest runs tasks where each new task supersedes the previous ones.
// Starting a task cancels the context of the one before it, and only the
// most recent task's result is delivered. A superseded future always
// completes with ErrSuperseded, whether or not its function got to run, and
// its deliver callback is skipped.
type Latest[U any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc

	// held across the staleness check and deliver
	deliverMu sync.Mutex
}

// Go starts fn. deliver runs on the task goroutine only if no newer task was
// started before fn returned. The returned generation identifies the task.
func (l *Latest[U]) Go(ctx context.Context, fn func(context.Context) (U, error), deliver func(U, error)) (*Future[U], uint64) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	taskCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	f := &Future[U]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer l.release(gen)

		f.result, f.err = l.run(taskCtx, fn)

		l.deliverMu.Lock()
		defer l.deliverMu.Unlock()
		if !l.current(gen) {
			f.err = ErrSuperseded
			return
		}
		if deliver != nil {
			deliver(f.result, f.err)
		}
	}()
	return f, gen
}

func (l *Latest[U]) run(ctx context.Context, fn func(context.Context) (U, error)) (v U, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("async: panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return v, err
	}
	return fn(ctx)
}

// release drops the cancel func of gen once it is done, unless a newer task owns it.
func (l *Latest[U]) release(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen == gen && l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Generation returns the generation of the most recently started task.
func (l *Latest[U]) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Cancel cancels the running task, if any, and marks its result stale.
func (l *Latest[U]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}

func (l *Latest[U]) current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen == gen
}
