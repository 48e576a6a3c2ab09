// Package engine is the execution pipeline shared by the backends:
// argument validation, translation on the caller's goroutine, dispatch,
// instrumentation and the open/closed state machine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/httpfacade/future"
	"github.com/kbukum/httpfacade/internal/dispatch"
	"github.com/kbukum/httpfacade/internal/instrument"
	"github.com/kbukum/httpfacade/internal/timeouts"
	"github.com/kbukum/httpfacade/logger"
	"github.com/kbukum/httpfacade/model"
)

// Native is a translated request ready for an engine.
type Native interface {
	// Method returns the HTTP method.
	Method() string
	// URL returns the absolute request URL.
	URL() string
	// Settings returns the per-call options.
	Settings() Settings
	// Release frees resources opened during translation, such as file
	// bodies. It is called exactly once.
	Release()
}

// Binding adapts one HTTP engine.
type Binding[N Native] interface {
	// Translate builds the native request. It runs on the caller's
	// goroutine and must not perform I/O beyond opening body files.
	Translate(host model.Host, req *model.Request, cc *model.ClientContext) (N, error)
	// Do executes n and returns a response whose body is fully buffered.
	// Errors are returned as produced by the engine.
	Do(ctx context.Context, n N) (model.Response, error)
	// Close releases the engine's resources.
	Close() error
}

// Options configures a Runner.
type Options struct {
	Backend        string
	Client         string
	MaxConcurrent  int
	// DefaultTimeout bounds calls that set no request timeout of their own.
	DefaultTimeout time.Duration
	Log            *logger.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Runner drives a Binding. It is safe for concurrent use.
type Runner[N Native] struct {
	binding Binding[N]
	disp    *dispatch.Dispatcher
	inst    *instrument.Instrument
	log     *logger.Logger
	timeout time.Duration

	closed    atomic.Bool
	closeOnce sync.Once
}

// New creates a Runner.
func New[N Native](opts Options, b Binding[N]) (*Runner[N], error) {
	log := opts.Log
	if log == nil {
		log = logger.Get(opts.Backend)
	}
	inst, err := instrument.New(instrument.Options{
		Backend:        opts.Backend,
		Client:         opts.Client,
		TracerProvider: opts.TracerProvider,
		MeterProvider:  opts.MeterProvider,
		Log:            log,
	})
	if err != nil {
		return nil, err
	}
	return &Runner[N]{
		binding: b,
		disp:    dispatch.New(dispatch.Config{Name: opts.Backend, MaxConcurrent: opts.MaxConcurrent}),
		inst:    inst,
		log:     log,
		timeout: opts.DefaultTimeout,
	}, nil
}

// Prepare validates the arguments and translates the request.
func (r *Runner[N]) Prepare(host model.Host, req *model.Request, cc *model.ClientContext) (N, error) {
	var zero N
	if r.closed.Load() {
		return zero, model.ErrClosed
	}
	if err := model.Validate(host, req); err != nil {
		return zero, err
	}
	if err := model.ValidateContext(cc); err != nil {
		return zero, err
	}
	return r.binding.Translate(host, req, cc)
}

// ExecuteWith translates req and dispatches it. Construction failures are
// returned directly; execution failures reject the future.
func (r *Runner[N]) ExecuteWith(ctx context.Context, host model.Host, req *model.Request, cc *model.ClientContext) (*future.Future[model.Response], error) {
	n, err := r.Prepare(host, req, cc)
	if err != nil {
		return nil, err
	}
	return dispatch.Dispatch(r.disp, ctx, func(ctx context.Context) (model.Response, error) {
		return r.run(ctx, n)
	}, n.Release), nil
}

// DoWith translates and executes req on the caller's goroutine.
func (r *Runner[N]) DoWith(ctx context.Context, host model.Host, req *model.Request, cc *model.ClientContext) (model.Response, error) {
	n, err := r.Prepare(host, req, cc)
	if err != nil {
		return nil, err
	}
	defer n.Release()
	return r.run(ctx, n)
}

func (r *Runner[N]) run(ctx context.Context, n N) (model.Response, error) {
	ctx, call := r.inst.Start(ctx, n.Method(), n.URL())
	callCtx, cancel := n.Settings().WithDefaultTimeout(r.timeout).Apply(ctx)
	defer cancel()

	resp, err := r.binding.Do(callCtx, n)
	if err != nil {
		if errors.Is(timeouts.Cause(callCtx), timeouts.ErrReadTimeout) && !errors.Is(err, timeouts.ErrReadTimeout) {
			err = fmt.Errorf("%w: %w", timeouts.ErrReadTimeout, err)
		}
		call.End(ctx, 0, err)
		return nil, err
	}
	call.End(ctx, resp.StatusCode(), nil)
	return resp, nil
}

// Close closes the binding exactly once and returns its error. Later
// calls return nil.
func (r *Runner[N]) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		err = r.binding.Close()
		r.log.Debug("client closed")
	})
	return err
}

// IsClosed reports whether Close has been called.
func (r *Runner[N]) IsClosed() bool {
	return r.closed.Load()
}

// InFlight returns the number of calls holding a dispatcher slot.
func (r *Runner[N]) InFlight() int {
	return r.disp.InUse()
}
