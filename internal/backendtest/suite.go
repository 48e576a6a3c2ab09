// Package backendtest is the conformance suite every httpfacade backend
// runs from its own tests.
package backendtest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/httpfacade"
	"github.com/kbukum/httpfacade/internal/instrument"
	"github.com/kbukum/httpfacade/model"
	"github.com/kbukum/httpfacade/security"
	"github.com/kbukum/httpfacade/security/tlstest"
	"github.com/kbukum/httpfacade/testutil"
)

// Factory builds the backend under test.
type Factory func(t *testing.T, cfg httpfacade.Config) httpfacade.Backend

// Options describes engine capabilities that differ between backends.
type Options struct {
	// PartHeaders reports whether per-part Content-Transfer-Encoding and
	// Content-ID reach the server.
	PartHeaders bool
}

// Run executes the suite against the backend built by f.
func Run(t *testing.T, f Factory, opts Options) {
	s := &suite{factory: f, opts: opts}
	t.Run("ExecuteEcho", s.executeEcho)
	t.Run("ResponseHeaders", s.responseHeaders)
	t.Run("ErrorStatusResolves", s.errorStatusResolves)
	t.Run("Bodies", s.bodies)
	t.Run("BodyContentTypes", s.bodyContentTypes)
	t.Run("Multipart", s.multipart)
	t.Run("DefaultHeaders", s.defaultHeaders)
	t.Run("BasicAuth", s.basicAuth)
	t.Run("DigestAuth", s.digestAuth)
	t.Run("UnsupportedScheme", s.unsupportedScheme)
	t.Run("RequestTimeout", s.requestTimeout)
	t.Run("ConfigTimeout", s.configTimeout)
	t.Run("PerCallTimeoutOutlastsConfig", s.perCallTimeoutOutlastsConfig)
	t.Run("ReadTimeout", s.readTimeout)
	t.Run("PerRequestProxy", s.perRequestProxy)
	t.Run("ConstructionErrors", s.constructionErrors)
	t.Run("EngineError", s.engineError)
	t.Run("Blocking", s.blocking)
	t.Run("Concurrent", s.concurrent)
	t.Run("TLS", s.tls)
	t.Run("Tracing", s.tracing)
	t.Run("Close", s.close)
}

type suite struct {
	factory Factory
	opts    Options
}

func (s *suite) client(t *testing.T, cfg httpfacade.Config) httpfacade.Backend {
	t.Helper()
	c := s.factory(t, cfg)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func await(t *testing.T, c httpfacade.AsyncClient, host model.Host, req *model.Request, cc *model.ClientContext) model.Response {
	t.Helper()
	f, err := c.ExecuteWith(context.Background(), host, req, cc)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	resp, err := f.Await(ctx)
	require.NoError(t, err)
	return resp
}

func awaitErr(t *testing.T, c httpfacade.AsyncClient, host model.Host, req *model.Request, cc *model.ClientContext) error {
	t.Helper()
	f, err := c.ExecuteWith(context.Background(), host, req, cc)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = f.Await(ctx)
	require.Error(t, err)
	return err
}

func credentials(scheme, user, pass string) *model.ClientContext {
	cp := model.NewBasicCredentialsProvider()
	cp.SetCredentials(model.NewAuthScope(model.AnyRealm, scheme), model.Credentials{Username: user, Password: pass})
	return model.NewClientContext().WithCredentials(cp)
}

func (s *suite) executeEcho(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	req := model.NewRequest(http.MethodGet, "/v1/items?page=2&sort=name%20asc",
		model.WithHeader("X-Tag", "first"),
		model.WithHeader("X-Tag", "second"),
	)
	f, err := c.Execute(context.Background(), srv.Host(), req)
	require.NoError(t, err)
	resp, err := f.Get()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	line := resp.StatusLine()
	assert.Equal(t, "HTTP/1.1", line.Protocol)
	assert.Equal(t, "OK", line.ReasonPhrase)

	echo := testutil.DecodeEcho(t, resp.BodyBytes())
	assert.Equal(t, http.MethodGet, echo.Method)
	assert.Equal(t, "/v1/items?page=2&sort=name%20asc", echo.URI)
	assert.Equal(t, []string{"first", "second"}, echo.HeaderValues("X-Tag"))

	streamed, err := io.ReadAll(resp.BodyStream())
	require.NoError(t, err)
	assert.Equal(t, resp.BodyString(), string(streamed))
	again, _ := io.ReadAll(resp.BodyStream())
	assert.Equal(t, streamed, again, "body stream can be read more than once")
}

func (s *suite) responseHeaders(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	resp := await(t, c, srv.Host(), model.NewRequest(http.MethodGet,
		"/h?header=X-Multi:one&header=X-Multi:two&header=A-First:yes"), nil)

	assert.Equal(t, []model.Header{{Name: "X-Multi", Value: "one"}, {Name: "X-Multi", Value: "two"}}, resp.Headers("x-multi"))
	first, ok := resp.FirstHeader("X-MULTI")
	require.True(t, ok)
	assert.Equal(t, "one", first.Value)
	last, ok := resp.LastHeader("x-multi")
	require.True(t, ok)
	assert.Equal(t, "two", last.Value)
	_, ok = resp.FirstHeader("X-Absent")
	assert.False(t, ok)
	assert.Empty(t, resp.Headers("X-Absent"))

	all := resp.AllHeaders()
	require.NotEmpty(t, all)
	assert.Equal(t, "A-First", all[0].Name)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Name, all[i].Name)
	}
}

func (s *suite) errorStatusResolves(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	resp := await(t, c, srv.Host(), model.NewRequest(http.MethodDelete, "/gone?status=404"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, "Not Found", resp.StatusLine().ReasonPhrase)
}

func (s *suite) bodies(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("from a file"), 0o600))

	tests := []struct {
		name string
		opt  model.RequestOption
		want string
	}{
		{"bytes", model.WithBytes([]byte("raw bytes")), "raw bytes"},
		{"string", model.WithString("a string"), "a string"},
		{"file", model.WithFile(path), "from a file"},
		{"stream", model.WithStream(strings.NewReader("a stream")), "a stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := model.NewRequest(http.MethodPost, "/body",
				model.WithHeader("Content-Type", "text/plain"), tt.opt)
			resp := await(t, c, srv.Host(), req, nil)
			echo := testutil.DecodeEcho(t, resp.BodyBytes())
			assert.Equal(t, tt.want, echo.Body)
			assert.Equal(t, "text/plain", echo.ContentType)
		})
	}
}

func (s *suite) bodyContentTypes(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"from":"file"}`), 0o600))

	tests := []struct {
		name string
		opt  model.RequestOption
		want string
	}{
		{"bytes are sniffed", model.WithBytes([]byte(`{"a":1}`)), "application/json"},
		{"string is utf-8 text", model.WithString("a string"), "text/plain; charset=utf-8"},
		{"file by extension", model.WithFile(path), "application/json"},
		{"stream is octet stream", model.WithStream(strings.NewReader("a stream")), "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := await(t, c, srv.Host(), model.NewRequest(http.MethodPost, "/body", tt.opt), nil)
			assert.Equal(t, tt.want, testutil.DecodeEcho(t, resp.BodyBytes()).ContentType)
		})
	}

	t.Run("config default wins", func(t *testing.T) {
		c := s.client(t, httpfacade.Config{Headers: map[string]string{"Content-Type": "application/x-default"}})
		resp := await(t, c, srv.Host(), model.NewRequest(http.MethodPost, "/body", model.WithString("x")), nil)
		assert.Equal(t, "application/x-default", testutil.DecodeEcho(t, resp.BodyBytes()).ContentType)
	})
}

func (s *suite) multipart(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rows":2}`), 0o600))

	text := model.NewStringPart("title", "quarterly", model.WithContentType("text/plain", "UTF-8"),
		model.WithTransferEncoding("8bit"))
	text.ContentID = "<title@facade>"
	stream := model.NewInputStreamPart("notes", strings.NewReader("streamed notes"),
		model.WithContentType("text/markdown", ""))
	stream.FileName = "notes.md"

	req := model.NewRequest(http.MethodPost, "/upload", model.WithParts(
		text,
		model.NewByteArrayPart("blob", []byte("bytes"), model.WithContentType("application/x-blob", "")),
		stream,
		model.NewFilePart("report", path),
	))
	resp := await(t, c, srv.Host(), req, nil)
	echo := testutil.DecodeEcho(t, resp.BodyBytes())

	assert.True(t, strings.HasPrefix(echo.ContentType, "multipart/form-data; boundary="), echo.ContentType)
	require.Len(t, echo.Parts, 4)

	assert.Equal(t, "title", echo.Parts[0].Name)
	assert.Equal(t, "quarterly", echo.Parts[0].Body)
	assert.Equal(t, "text/plain; charset=UTF-8", echo.Parts[0].ContentType)

	assert.Equal(t, "blob", echo.Parts[1].Name)
	assert.Equal(t, "bytes", echo.Parts[1].Body)
	assert.Equal(t, "application/x-blob", echo.Parts[1].ContentType)

	assert.Equal(t, "notes", echo.Parts[2].Name)
	assert.Equal(t, "notes.md", echo.Parts[2].FileName)
	assert.Equal(t, "streamed notes", echo.Parts[2].Body)
	assert.Equal(t, "text/markdown", echo.Parts[2].ContentType)

	assert.Equal(t, "report", echo.Parts[3].Name)
	assert.Equal(t, "report.json", echo.Parts[3].FileName)
	assert.Equal(t, `{"rows":2}`, echo.Parts[3].Body)
	assert.Equal(t, "application/json", echo.Parts[3].ContentType)

	if s.opts.PartHeaders {
		assert.Equal(t, "8bit", echo.Parts[0].TransferEncoding)
		assert.Equal(t, "<title@facade>", echo.Parts[0].ContentID)
	} else {
		assert.Empty(t, echo.Parts[0].TransferEncoding)
		assert.Empty(t, echo.Parts[0].ContentID)
	}
}

func (s *suite) defaultHeaders(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{Headers: map[string]string{
		"X-Default": "from-config",
		"X-Client":  "facade",
	}})

	resp := await(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/",
		model.WithHeader("X-Client", "from-request")), nil)
	echo := testutil.DecodeEcho(t, resp.BodyBytes())
	assert.Equal(t, "from-config", echo.Header("X-Default"))
	assert.Equal(t, []string{"from-request"}, echo.HeaderValues("X-Client"))
}

func (s *suite) basicAuth(t *testing.T) {
	srv := testutil.NewEchoServer(t, testutil.WithBasic("alice", "s3cret"))
	c := s.client(t, httpfacade.Config{})

	resp := await(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/secure"),
		credentials("bogus-scheme", "alice", "s3cret"))
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Len(t, srv.Requests(), 1, "basic credentials are sent preemptively")

	resp = await(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/secure"), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func (s *suite) digestAuth(t *testing.T) {
	srv := testutil.NewEchoServer(t, testutil.WithDigest("facade", "bob", "pa55"))
	c := s.client(t, httpfacade.Config{})

	resp := await(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/digest?x=1"),
		credentials("Digest", "bob", "pa55"))
	require.Equal(t, http.StatusOK, resp.StatusCode())
	echo := testutil.DecodeEcho(t, resp.BodyBytes())
	assert.True(t, strings.HasPrefix(echo.Authorization, "Digest "), echo.Authorization)
	assert.Contains(t, echo.Authorization, `uri="/digest?x=1"`)

	requests := srv.Requests()
	require.Len(t, requests, 2)
	assert.Empty(t, requests[0].Authorization, "first attempt carries no credentials")

	resp = await(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/digest"),
		credentials("DIGEST", "bob", "wrong"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
}

func (s *suite) unsupportedScheme(t *testing.T) {
	srv := testutil.NewEchoServer(t, testutil.WithBasic("carol", "pw"))
	c := s.client(t, httpfacade.Config{})

	for _, scheme := range []string{model.AuthSchemeNTLM, model.AuthSchemeSPNEGO, model.AuthSchemeKerberos} {
		t.Run(scheme, func(t *testing.T) {
			srv.Reset()
			resp := await(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/"), credentials(scheme, "carol", "pw"))
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
			require.Len(t, srv.Requests(), 1)
			assert.Empty(t, srv.Requests()[0].Authorization)
		})
	}
}

func (s *suite) requestTimeout(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	// SocketTimeout bounds the whole exchange.
	cc := model.NewClientContext().WithRequestConfig(&model.RequestConfig{SocketTimeout: 50 * time.Millisecond})
	err := awaitErr(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/slow?delay=2s"), cc)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, model.IsValidation(err))
}

func (s *suite) configTimeout(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{Timeout: 100 * time.Millisecond})

	err := awaitErr(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/slow?delay=2s"), nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func (s *suite) perCallTimeoutOutlastsConfig(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{Timeout: 100 * time.Millisecond})

	// A per-call request timeout replaces the configured one, even when longer.
	cc := model.NewClientContext().WithRequestConfig(&model.RequestConfig{SocketTimeout: 5 * time.Second})
	resp := await(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/slow?delay=400ms"), cc)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err := c.DoWith(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "/slow?delay=400ms"), cc)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func (s *suite) readTimeout(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	// ConnectTimeout bounds the wait for the first response byte.
	cc := model.NewClientContext().WithRequestConfig(&model.RequestConfig{ConnectTimeout: 50 * time.Millisecond})
	err := awaitErr(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/slow?delay=2s"), cc)
	assert.ErrorIs(t, err, httpfacade.ErrReadTimeout)

	resp := await(t, c, srv.Host(), model.NewRequest(http.MethodGet, "/fast"), cc)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func (s *suite) perRequestProxy(t *testing.T) {
	var seen atomic.Value
	px := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.URL.String())
		_, _ = io.WriteString(w, "via proxy")
	}))
	t.Cleanup(px.Close)
	u, err := url.Parse(px.URL)
	require.NoError(t, err)
	port, _ := strconv.Atoi(u.Port())

	c := s.client(t, httpfacade.Config{})
	cc := model.NewClientContext().WithRequestConfig(&model.RequestConfig{
		Proxy: &model.Host{Scheme: "http", Hostname: u.Hostname(), Port: port},
	})
	resp := await(t, c, model.NewHost("http", "upstream.invalid", 8080), model.NewRequest(http.MethodGet, "/through?q=1"), cc)

	assert.Equal(t, "via proxy", resp.BodyString())
	assert.Equal(t, "http://upstream.invalid:8080/through?q=1", seen.Load())
}

func (s *suite) constructionErrors(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	_, err := c.Execute(context.Background(), model.NewHost("ftp", "x", 21), model.NewRequest(http.MethodGet, "/"))
	assert.True(t, model.IsValidation(err), "bad scheme: %v", err)

	_, err = c.Execute(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "no-slash"))
	assert.True(t, model.IsValidation(err), "relative uri: %v", err)

	_, err = c.Execute(context.Background(), srv.Host(), model.NewRequest(http.MethodPost, "/",
		model.WithFile(filepath.Join(t.TempDir(), "missing"))))
	assert.True(t, model.IsBody(err), "missing file: %v", err)

	_, err = c.Execute(context.Background(), srv.Host(), model.NewRequest(http.MethodPost, "/",
		model.WithParts(model.NewStringPart("a", "b"), nil)))
	assert.True(t, model.IsValidation(err), "nil part: %v", err)

	cc := model.NewClientContext().WithRequestConfig(&model.RequestConfig{Proxy: &model.Host{}})
	_, err = c.ExecuteWith(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "/"), cc)
	assert.True(t, model.IsValidation(err), "zero proxy host: %v", err)
	_, err = c.DoWith(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "/"), cc)
	assert.True(t, model.IsValidation(err), "zero proxy host: %v", err)

	assert.Empty(t, srv.Requests(), "nothing reaches the server")
}

func (s *suite) engineError(t *testing.T) {
	srv := testutil.NewUnstartedEchoServer()
	require.NoError(t, srv.Start(context.Background()))
	host := srv.Host()
	require.NoError(t, srv.Stop(context.Background()))

	c := s.client(t, httpfacade.Config{})
	err := awaitErr(t, c, host, model.NewRequest(http.MethodGet, "/"), nil)

	var me *model.Error
	assert.False(t, errors.As(err, &me), "engine errors are not wrapped: %v", err)
}

func (s *suite) blocking(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{})

	resp, err := c.Do(context.Background(), srv.Host(), model.NewRequest(http.MethodPut, "/sync", model.WithString("x")))
	require.NoError(t, err)
	assert.Equal(t, "x", testutil.DecodeEcho(t, resp.BodyBytes()).Body)

	cc := model.NewClientContext().WithRequestConfig(&model.RequestConfig{SocketTimeout: 50 * time.Millisecond})
	_, err = c.DoWith(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "/?delay=2s"), cc)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func (s *suite) concurrent(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.client(t, httpfacade.Config{MaxConcurrent: 4})

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uri := "/c/" + strconv.Itoa(i)
			f, err := c.Execute(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, uri))
			if err != nil {
				errs <- err
				return
			}
			resp, err := f.Get()
			if err != nil {
				errs <- err
				return
			}
			var echo testutil.Echo
			if err := json.Unmarshal(resp.BodyBytes(), &echo); err != nil {
				errs <- err
				return
			}
			if echo.URI != uri {
				errs <- errors.New("got " + echo.URI + ", want " + uri)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	assert.Len(t, srv.Requests(), n)
}

func (s *suite) tls(t *testing.T) {
	srv, certs := tlstest.NewServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "secure "+r.URL.RequestURI())
	}))
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, _ := strconv.Atoi(u.Port())
	host := model.NewHost("https", "localhost", port)

	trusted := s.client(t, httpfacade.Config{TLS: security.TLSConfig{CAFile: certs.CAFile}})
	resp := await(t, trusted, host, model.NewRequest(http.MethodGet, "/tls"), nil)
	assert.Equal(t, "secure /tls", resp.BodyString())

	untrusted := s.client(t, httpfacade.Config{})
	err = awaitErr(t, untrusted, host, model.NewRequest(http.MethodGet, "/tls"), nil)
	assert.Contains(t, err.Error(), "certificate")
}

func (s *suite) tracing(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	spans := tracetest.NewSpanRecorder()
	c := s.client(t, httpfacade.Config{
		Name:           "traced",
		TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)),
	})

	await(t, c, srv.Host(), model.NewRequest(http.MethodPatch, "/span"), nil)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "HTTP PATCH", ended[0].Name())
	var backend string
	for _, kv := range ended[0].Attributes() {
		if kv.Key == instrument.AttrBackend {
			backend = kv.Value.AsString()
		}
	}
	assert.Equal(t, c.Name(), backend)
}

func (s *suite) close(t *testing.T) {
	srv := testutil.NewEchoServer(t)
	c := s.factory(t, httpfacade.Config{})

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "second close is a no-op")

	_, err := c.Execute(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "/"))
	assert.ErrorIs(t, err, model.ErrClosed)
	_, err = c.Do(context.Background(), srv.Host(), model.NewRequest(http.MethodGet, "/"))
	assert.True(t, model.IsClosed(err))
	assert.Empty(t, srv.Requests())
}
