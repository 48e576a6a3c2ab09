package restyclient_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/httpfacade"
	"github.com/kbukum/httpfacade/internal/backendtest"
	"github.com/kbukum/httpfacade/model"
	"github.com/kbukum/httpfacade/restyclient"
	"github.com/kbukum/httpfacade/testutil"
)

func newBackend(t *testing.T, cfg httpfacade.Config) httpfacade.Backend {
	t.Helper()
	c, err := restyclient.New(cfg)
	require.NoError(t, err)
	return c
}

func TestConformance(t *testing.T) {
	backendtest.Run(t, newBackend, backendtest.Options{PartHeaders: false})
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, httpfacade.Backends(), restyclient.Name)

	b, err := httpfacade.NewAsyncClient(httpfacade.Config{Backend: "resty"})
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &restyclient.Client{}, b)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := restyclient.New(httpfacade.Config{Proxy: "gopher://proxy:70"})
	assert.Error(t, err)
}

func TestMultipartRequiresPayloadMethod(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := newBackend(t, httpfacade.Config{})
	defer c.Close()

	_, err := c.Execute(context.Background(), srv.Host(), model.NewRequest(http.MethodDelete, "/",
		model.WithParts(model.NewStringPart("a", "b"))))
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	assert.Empty(t, srv.Requests())
}

func TestGetWithBody(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := newBackend(t, httpfacade.Config{})
	defer c.Close()

	resp, err := c.Do(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "/search",
		model.WithString(`{"q":"x"}`)))
	require.NoError(t, err)
	assert.Equal(t, `{"q":"x"}`, testutil.DecodeEcho(t, resp.BodyBytes()).Body)
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(r)
}

func TestWithRestyClient(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	rt := &countingTransport{}
	rc := resty.New().SetTransport(rt)

	c, err := restyclient.New(httpfacade.Config{Headers: map[string]string{"X-Default": "yes"}},
		restyclient.WithRestyClient(rc))
	require.NoError(t, err)
	defer c.Close()
	assert.Same(t, rc, c.Resty())

	resp, err := c.Do(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "/custom"))
	require.NoError(t, err)
	assert.Equal(t, "yes", testutil.DecodeEcho(t, resp.BodyBytes()).Header("X-Default"))
	assert.Equal(t, int32(1), rt.calls.Load())
}

func TestResponse_Raw(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := newBackend(t, httpfacade.Config{})
	defer c.Close()

	resp, err := c.Do(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "/raw"))
	require.NoError(t, err)
	raw, ok := resp.(interface{ Raw() *resty.Response })
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, raw.Raw().StatusCode())
}
