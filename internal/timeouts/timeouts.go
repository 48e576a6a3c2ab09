// Package timeouts applies the per-call read and request timeouts to a
// request context.
//
// The request timeout bounds the whole exchange. The read timeout bounds
// the wait between the request being written and the first response byte;
// when it fires the context is cancelled with ErrReadTimeout as its cause.
package timeouts

import (
	"context"
	"errors"
	"net/http/httptrace"
	"sync"
	"time"
)

// ErrReadTimeout is the cancellation cause when no response byte arrived
// within the read timeout.
var ErrReadTimeout = errors.New("timeouts: read timeout waiting for response")

// WithDeadlines derives a context enforcing the given timeouts. Zero or
// negative durations are ignored. The returned cancel func must be called
// once the response body has been consumed.
func WithDeadlines(ctx context.Context, read, request time.Duration) (context.Context, context.CancelFunc) {
	var cancels []context.CancelFunc

	if request > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, request)
		cancels = append(cancels, cancel)
	}

	if read > 0 {
		var cancelCause context.CancelCauseFunc
		ctx, cancelCause = context.WithCancelCause(ctx)
		w := &readWatch{timeout: read, cancel: cancelCause}
		ctx = httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
			WroteRequest:         func(httptrace.WroteRequestInfo) { w.start() },
			GotFirstResponseByte: w.stop,
		})
		cancels = append(cancels, func() {
			w.finish()
			cancelCause(context.Canceled)
		})
	}

	return ctx, func() {
		for i := len(cancels) - 1; i >= 0; i-- {
			cancels[i]()
		}
	}
}

type readWatch struct {
	timeout time.Duration
	cancel  context.CancelCauseFunc

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func (w *readWatch) start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		// redirect or auth retry on the same context
		w.timer.Reset(w.timeout)
		return
	}
	w.timer = time.AfterFunc(w.timeout, func() { w.cancel(ErrReadTimeout) })
}

func (w *readWatch) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *readWatch) finish() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Cause returns ErrReadTimeout when ctx was cancelled by a read timeout and
// otherwise ctx.Err().
func Cause(ctx context.Context) error {
	if err := context.Cause(ctx); errors.Is(err, ErrReadTimeout) {
		return err
	}
	return ctx.Err()
}
