// Package instrument traces, measures and logs each call a backend
// executes.
package instrument

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/httpfacade/logger"
	"github.com/kbukum/httpfacade/version"
)

const scopeName = version.ModulePath

// Attribute keys recorded on spans and metrics.
const (
	AttrBackend    = attribute.Key("httpfacade.backend")
	AttrClient     = attribute.Key("httpfacade.client")
	AttrRequestID  = attribute.Key("httpfacade.request_id")
	AttrMethod     = attribute.Key("http.request.method")
	AttrURL        = attribute.Key("url.full")
	AttrStatusCode = attribute.Key("http.response.status_code")
)

// Options configures an Instrument.
type Options struct {
	// Backend is the engine name, e.g. "resty".
	Backend string
	// Client is the configured client name.
	Client string
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
	// MeterProvider defaults to the global provider.
	MeterProvider metric.MeterProvider
	// Log receives a debug line per call.
	Log *logger.Logger
}

// Instrument holds the tracer, metric instruments and logger of a backend.
type Instrument struct {
	attrs    []attribute.KeyValue
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
	log      *logger.Logger
}

// New creates the instruments for a backend.
func New(opts Options) (*Instrument, error) {
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := opts.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	meter := mp.Meter(scopeName, metric.WithInstrumentationVersion(version.Get()))

	requests, err := meter.Int64Counter("httpfacade.client.requests",
		metric.WithDescription("Number of executed requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("instrument: creating requests counter: %w", err)
	}
	duration, err := meter.Float64Histogram("httpfacade.client.duration",
		metric.WithDescription("Duration of executed requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("instrument: creating duration histogram: %w", err)
	}
	active, err := meter.Int64UpDownCounter("httpfacade.client.active",
		metric.WithDescription("Number of requests in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("instrument: creating active counter: %w", err)
	}

	attrs := []attribute.KeyValue{AttrBackend.String(opts.Backend)}
	if opts.Client != "" {
		attrs = append(attrs, AttrClient.String(opts.Client))
	}
	return &Instrument{
		attrs:    attrs,
		tracer:   tp.Tracer(scopeName, trace.WithInstrumentationVersion(version.Get())),
		requests: requests,
		duration: duration,
		active:   active,
		log:      log,
	}, nil
}

// Call tracks one request from dispatch to completion.
type Call struct {
	inst   *Instrument
	span   trace.Span
	id     string
	method string
	url    string
	start  time.Time
}

// Start opens a client span and returns the context to execute the
// request with.
func (i *Instrument) Start(ctx context.Context, method, url string) (context.Context, *Call) {
	c := &Call{
		inst:   i,
		id:     uuid.NewString(),
		method: method,
		url:    url,
		start:  time.Now(),
	}
	attrs := append([]attribute.KeyValue{
		AttrMethod.String(method),
		AttrURL.String(url),
		AttrRequestID.String(c.id),
	}, i.attrs...)
	ctx, c.span = i.tracer.Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	i.active.Add(ctx, 1, metric.WithAttributes(i.attrs...))
	return ctx, c
}

// ID returns the request id assigned to the call.
func (c *Call) ID() string {
	return c.id
}

// End records the outcome. status is ignored when err is non-nil.
func (c *Call) End(ctx context.Context, status int, err error) {
	elapsed := time.Since(c.start)
	i := c.inst

	attrs := append([]attribute.KeyValue{AttrMethod.String(c.method)}, i.attrs...)
	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, err.Error())
		attrs = append(attrs, attribute.String("error.type", fmt.Sprintf("%T", err)))
	} else {
		c.span.SetAttributes(AttrStatusCode.Int(status))
		if status >= 500 {
			c.span.SetStatus(codes.Error, "")
		}
		attrs = append(attrs, AttrStatusCode.Int(status))
	}
	c.span.End()

	opt := metric.WithAttributes(attrs...)
	i.requests.Add(ctx, 1, opt)
	i.duration.Record(ctx, elapsed.Seconds(), opt)
	i.active.Add(ctx, -1, metric.WithAttributes(i.attrs...))

	if !i.log.DebugEnabled() {
		return
	}
	fields := logger.Fields(
		logger.FieldRequestID, c.id,
		logger.FieldMethod, c.method,
		logger.FieldURI, c.url,
	)
	fields = logger.MergeWithDuration(fields, elapsed)
	if err != nil {
		i.log.Debug("request failed", logger.MergeWithError(fields, err))
		return
	}
	fields[logger.FieldStatus] = status
	i.log.Debug("request completed", fields)
}
