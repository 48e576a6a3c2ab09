// Package future provides a generic, single-assignment result holder used
// by the asynchronous clients.
//
// A Future is completed exactly once, either with a value or with an
// error. Later completions are ignored.
//
// # Usage
//
//	f := future.Go(func() (int, error) { return compute(), nil })
//	v, err := f.Await(ctx)
package future

import (
	"context"
	"sync"
)

// Future is a value of type T that becomes available later.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New creates an incomplete Future.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Completed returns a Future already completed with v.
func Completed[T any](v T) *Future[T] {
	f := New[T]()
	f.Complete(v)
	return f
}

// Failed returns a Future already failed with err.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)
	return f
}

// Go runs fn on a new goroutine and completes the returned Future with its
// result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := New[T]()
	go func() {
		v, err := fn()
		f.resolve(v, err)
	}()
	return f
}

// Complete sets the value. It reports whether this call completed the
// Future.
func (f *Future[T]) Complete(v T) bool {
	return f.resolve(v, nil)
}

// Fail sets the error. It reports whether this call completed the Future.
// A nil err is treated as completion with the zero value.
func (f *Future[T]) Fail(err error) bool {
	var zero T
	return f.resolve(zero, err)
}

func (f *Future[T]) resolve(v T, err error) bool {
	won := false
	f.once.Do(func() {
		f.value = v
		f.err = err
		won = true
		close(f.done)
	})
	return won
}

// Done returns a channel closed when the Future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsDone reports whether the Future has completed.
func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Await blocks until the Future completes or ctx is done. Cancelling ctx
// does not cancel the underlying work.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Get blocks until the Future completes.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// Then returns a Future completed with fn applied to the value of f. An
// error from f is propagated without calling fn.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	out := New[U]()
	go func() {
		v, err := f.Get()
		if err != nil {
			out.Fail(err)
			return
		}
		out.resolve(fn(v))
	}()
	return out
}
