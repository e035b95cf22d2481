// Package lock provides a mutex whose lock attempts can be abandoned
// through a context.
package lock

import (
	"context"

	"github.com/Invicton-Labs/go-stackerr"
)

// CtxMutex is a mutex where Lock operations use a context
// that can be cancelled/deadlined to terminate the lock
// attempt.
type CtxMutex interface {
	// Lock waits until either the mutex is locked or the context is
	// done. In the latter case it returns the context's error.
	Lock(ctx context.Context) (err stackerr.Error)

	// TryLock locks the mutex only if that is possible without waiting.
	TryLock() (locked bool)

	// Unlock panics if the mutex is not locked.
	Unlock()

	// Do runs f while holding the lock. If the lock cannot be acquired
	// before the context is done, f is not run and the context's error
	// is returned.
	Do(ctx context.Context, f func() stackerr.Error) stackerr.Error
}

type ctxMutex struct {
	// Holds one token while locked
	ch chan struct{}
}

func NewCtxMutex() CtxMutex {
	return &ctxMutex{
		ch: make(chan struct{}, 1),
	}
}

func (mu *ctxMutex) Lock(ctx context.Context) stackerr.Error {
	// Prefer a free lock over a done context
	if mu.TryLock() {
		return nil
	}
	select {
	case <-ctx.Done():
		return stackerr.Wrap(ctx.Err())
	case mu.ch <- struct{}{}:
		return nil
	}
}

func (mu *ctxMutex) TryLock() bool {
	select {
	case mu.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

func (mu *ctxMutex) Unlock() {
	select {
	case <-mu.ch:
	default:
		panic("unlock of unlocked mutex")
	}
}

func (mu *ctxMutex) Do(ctx context.Context, f func() stackerr.Error) stackerr.Error {
	if err := mu.Lock(ctx); err != nil {
		return err
	}
	defer mu.Unlock()
	return f()
}
