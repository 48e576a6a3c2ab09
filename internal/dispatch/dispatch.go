// Package dispatch runs backend calls on a bounded set of goroutines and
// resolves their futures.
package dispatch

import (
	"context"
	"sync"

	"github.com/kbukum/httpfacade/future"
)

// DefaultMaxConcurrent is the dispatcher width when none is configured.
const DefaultMaxConcurrent = 64

// Config configures a dispatcher.
type Config struct {
	// Name identifies this dispatcher for logging.
	Name string
	// MaxConcurrent is the maximum number of calls in flight.
	MaxConcurrent int
	// OnAcquire is called when a call takes a slot.
	OnAcquire func(name string)
	// OnRelease is called when a call returns its slot.
	OnRelease func(name string)
}

// Dispatcher limits concurrent calls with a semaphore. Calls beyond the
// limit wait for a slot on their own goroutine so submission never blocks.
type Dispatcher struct {
	config Config
	sem    chan struct{}
	wg     sync.WaitGroup
}

// New creates a dispatcher.
func New(config Config) *Dispatcher {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = DefaultMaxConcurrent
	}
	return &Dispatcher{
		config: config,
		sem:    make(chan struct{}, config.MaxConcurrent),
	}
}

// Dispatch runs fn once a slot is free and returns a future for its
// result. If ctx ends while waiting for a slot the future fails with
// ctx.Err() and fn is not called. Each finally func runs after fn returns
// or after the wait is abandoned, before the future resolves.
func Dispatch[T any](d *Dispatcher, ctx context.Context, fn func(context.Context) (T, error), finally ...func()) *future.Future[T] {
	f := future.New[T]()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		var (
			v   T
			err error
		)
		if err = d.acquire(ctx); err == nil {
			v, err = fn(ctx)
			d.release()
		}
		for _, fin := range finally {
			fin()
		}
		if err != nil {
			f.Fail(err)
			return
		}
		f.Complete(v)
	}()
	return f
}

// Wait blocks until every dispatched call has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) acquire(ctx context.Context) error {
	select {
	case d.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	if d.config.OnAcquire != nil {
		d.config.OnAcquire(d.config.Name)
	}
	return nil
}

func (d *Dispatcher) release() {
	<-d.sem
	if d.config.OnRelease != nil {
		d.config.OnRelease(d.config.Name)
	}
}

// Available returns the number of free slots.
func (d *Dispatcher) Available() int {
	return d.config.MaxConcurrent - len(d.sem)
}

// InUse returns the number of slots currently in use.
func (d *Dispatcher) InUse() int {
	return len(d.sem)
}

// MaxConcurrent returns the maximum concurrent calls allowed.
func (d *Dispatcher) MaxConcurrent() int {
	return d.config.MaxConcurrent
}
