package instrument

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/httpfacade/logger"
	"github.com/kbukum/httpfacade/version"
)

type fixture struct {
	inst   *Instrument
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	logs   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()
	var logs bytes.Buffer

	inst, err := New(Options{
		Backend:        "nethttp",
		Client:         "billing",
		TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)),
		MeterProvider:  sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		Log:            logger.FromZerolog(zerolog.New(&logs).Level(zerolog.DebugLevel)),
	})
	require.NoError(t, err)
	return &fixture{inst: inst, spans: spans, reader: reader, logs: &logs}
}

func (f *fixture) requestCount(t *testing.T) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "httpfacade.client.requests" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestCall_Success(t *testing.T) {
	f := newFixture(t)
	ctx, call := f.inst.Start(context.Background(), "GET", "http://example.com:80/x")
	require.NotEmpty(t, call.ID())
	call.End(ctx, 200, nil)

	ended := f.spans.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, "HTTP GET", span.Name())
	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Equal(t, version.ModulePath, span.InstrumentationScope().Name)
	assert.Equal(t, version.Get(), span.InstrumentationScope().Version)

	attrs := map[string]string{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "nethttp", attrs[string(AttrBackend)])
	assert.Equal(t, "billing", attrs[string(AttrClient)])
	assert.Equal(t, "200", attrs[string(AttrStatusCode)])
	assert.Equal(t, call.ID(), attrs[string(AttrRequestID)])

	assert.Equal(t, int64(1), f.requestCount(t))
	assert.Contains(t, f.logs.String(), `"request_id":"`+call.ID()+`"`)
	assert.Contains(t, f.logs.String(), "request completed")
}

func TestCall_Error(t *testing.T) {
	f := newFixture(t)
	ctx, call := f.inst.Start(context.Background(), "POST", "http://example.com:80/y")
	call.End(ctx, 0, errors.New("connection refused"))

	ended := f.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Len(t, ended[0].Events(), 1)
	assert.True(t, strings.Contains(f.logs.String(), "connection refused"))
	assert.Equal(t, int64(1), f.requestCount(t))
}

func TestNew_GlobalProviders(t *testing.T) {
	inst, err := New(Options{Backend: "resty"})
	require.NoError(t, err)
	ctx, call := inst.Start(context.Background(), "GET", "http://h:1/")
	call.End(ctx, 204, nil)
}
