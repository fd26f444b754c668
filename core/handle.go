package core

import "context"

// Handle is the completion handle for an asynchronous call. The
// synchronous surface of the client is a blocking Wait on the same
// handle, so both calling conventions share one execution path.
//
// A Handle completes exactly once. Cancel aborts the underlying call,
// including any pending retry, and releases whatever concurrency slot
// the call holds.
type Handle[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc

	// Written once before done is closed, read only after.
	result T
	err    error
}

// Run starts fn on its own goroutine and returns a Handle that
// completes when fn returns. The context passed to fn is derived from
// ctx and is cancelled by Handle.Cancel.
func Run[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Handle[T] {
	callCtx, cancel := context.WithCancel(ctx)
	h := &Handle[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer cancel()
		h.result, h.err = fn(callCtx)
		close(h.done)
	}()
	return h
}

// Wait blocks until the call completes or ctx is done, whichever comes
// first. A ctx expiry does not cancel the underlying call; use Cancel
// for that.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-h.done:
		return h.result, h.err
	}
}

// Done returns a channel that is closed when the call completes.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Cancel aborts the in-flight call. The handle still completes, with
// the error the aborted call returned (typically context.Canceled).
// Cancel is safe to call multiple times and after completion.
func (h *Handle[T]) Cancel() {
	h.cancel()
}
