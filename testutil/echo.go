package testutil

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/httpfacade/component"
	"github.com/kbukum/httpfacade/model"
)

// Echo is the JSON document the server answers with.
type Echo struct {
	Method        string              `json:"method"`
	URL           string              `json:"url"`
	URI           string              `json:"uri"`
	Proto         string              `json:"proto"`
	Headers       map[string][]string `json:"headers"`
	ContentType   string              `json:"content_type"`
	Body          string              `json:"body"`
	Parts         []EchoPart          `json:"parts,omitempty"`
	Authorization string              `json:"authorization,omitempty"`
}

// EchoPart describes one multipart part as received.
type EchoPart struct {
	Name             string `json:"name"`
	FileName         string `json:"file_name,omitempty"`
	ContentType      string `json:"content_type,omitempty"`
	TransferEncoding string `json:"transfer_encoding,omitempty"`
	ContentID        string `json:"content_id,omitempty"`
	Body             string `json:"body"`
}

// Header returns the first value of the named request header.
func (e Echo) Header(name string) string {
	vals := e.Headers[http.CanonicalHeaderKey(name)]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// HeaderValues returns every value of the named request header in order.
func (e Echo) HeaderValues(name string) []string {
	return e.Headers[http.CanonicalHeaderKey(name)]
}

// DecodeEcho parses an echo response body.
func DecodeEcho(t testing.TB, body []byte) Echo {
	t.Helper()
	var e Echo
	if err := json.Unmarshal(body, &e); err != nil {
		t.Fatalf("testutil: decode echo %q: %v", body, err)
	}
	return e
}

// Option configures an EchoServer.
type Option func(*EchoServer)

// WithBasic demands Basic credentials.
func WithBasic(user, pass string) Option {
	return func(s *EchoServer) {
		s.basic = &credentials{user: user, pass: pass}
	}
}

// WithDigest demands Digest credentials (MD5, qop=auth) for realm.
func WithDigest(realm, user, pass string) Option {
	return func(s *EchoServer) {
		s.digest = &credentials{realm: realm, user: user, pass: pass}
	}
}

// WithName sets the component name.
func WithName(name string) Option {
	return func(s *EchoServer) {
		s.name = name
	}
}

type credentials struct {
	realm, user, pass string
}

const digestNonce = "7f3c9a1e5b"

// EchoServer is a gin-backed HTTP server that reports what it received.
// It implements component.Component.
type EchoServer struct {
	name   string
	basic  *credentials
	digest *credentials
	engine *gin.Engine

	mu       sync.Mutex
	srv      *httptest.Server
	received []Echo
}

var _ component.Component = (*EchoServer)(nil)

// NewEchoServer starts a server that is closed when the test ends.
func NewEchoServer(t testing.TB, opts ...Option) *EchoServer {
	t.Helper()
	s := NewUnstartedEchoServer(opts...)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("testutil: start echo server: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop(context.Background()) })
	return s
}

// NewUnstartedEchoServer creates a server without starting it.
func NewUnstartedEchoServer(opts ...Option) *EchoServer {
	gin.SetMode(gin.TestMode)
	s := &EchoServer{name: "echo"}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.NoRoute(s.handle)
	return s
}

// --- component.Component ---

// Name returns the component name.
func (s *EchoServer) Name() string { return s.name }

// Start begins listening on a loopback port.
func (s *EchoServer) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		s.srv = httptest.NewServer(s.engine)
	}
	return nil
}

// Stop closes the listener.
func (s *EchoServer) Stop(_ context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Health reports whether the server is listening.
func (s *EchoServer) Health(_ context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return component.Health{Name: s.name, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.name, Status: component.StatusHealthy}
}

// --- accessors ---

// URL returns the base URL, e.g. http://127.0.0.1:54321.
func (s *EchoServer) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

// Host returns the server address as a neutral Host.
func (s *EchoServer) Host() model.Host {
	u, err := url.Parse(s.URL())
	if err != nil {
		return model.Host{}
	}
	port, _ := strconv.Atoi(u.Port())
	return model.NewHost(u.Scheme, u.Hostname(), port)
}

// Requests returns every request received so far, including rejected
// authentication attempts.
func (s *EchoServer) Requests() []Echo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Echo, len(s.received))
	copy(out, s.received)
	return out
}

// Reset forgets received requests.
func (s *EchoServer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = nil
}

// --- handler ---

func (s *EchoServer) handle(c *gin.Context) {
	e, err := capture(c.Request)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	s.received = append(s.received, e)
	s.mu.Unlock()

	if !s.authorized(c, e) {
		return
	}

	if d, err := time.ParseDuration(c.Query("delay")); err == nil && d > 0 {
		select {
		case <-time.After(d):
		case <-c.Request.Context().Done():
			return
		}
	}
	for _, h := range c.QueryArray("header") {
		if name, value, ok := strings.Cut(h, ":"); ok {
			c.Writer.Header().Add(strings.TrimSpace(name), strings.TrimSpace(value))
		}
	}
	status := http.StatusOK
	if v, err := strconv.Atoi(c.Query("status")); err == nil {
		status = v
	}
	c.JSON(status, e)
}

func (s *EchoServer) authorized(c *gin.Context, e Echo) bool {
	switch {
	case s.basic != nil:
		user, pass, ok := c.Request.BasicAuth()
		if ok && user == s.basic.user && pass == s.basic.pass {
			return true
		}
		c.Header("WWW-Authenticate", `Basic realm="echo"`)
		c.AbortWithStatus(http.StatusUnauthorized)
		return false
	case s.digest != nil:
		if s.digest.verify(c.Request.Method, e.Authorization) {
			return true
		}
		if e.Authorization != "" {
			c.AbortWithStatus(http.StatusForbidden)
			return false
		}
		c.Header("WWW-Authenticate", `Digest realm="`+s.digest.realm+`", qop="auth", nonce="`+digestNonce+`"`)
		c.AbortWithStatus(http.StatusUnauthorized)
		return false
	default:
		return true
	}
}

func (d *credentials) verify(method, header string) bool {
	rest, ok := strings.CutPrefix(header, "Digest ")
	if !ok {
		return false
	}
	p := map[string]string{}
	for _, kv := range strings.Split(rest, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(kv), "=")
		if ok {
			p[k] = strings.Trim(v, `"`)
		}
	}
	h := func(s string) string {
		sum := md5.Sum([]byte(s))
		return hex.EncodeToString(sum[:])
	}
	ha1 := h(d.user + ":" + d.realm + ":" + d.pass)
	ha2 := h(method + ":" + p["uri"])
	want := h(ha1 + ":" + digestNonce + ":" + p["nc"] + ":" + p["cnonce"] + ":auth:" + ha2)
	return p["username"] == d.user && p["response"] == want
}

func capture(r *http.Request) (Echo, error) {
	e := Echo{
		Method:        r.Method,
		URL:           r.URL.String(),
		URI:           r.URL.RequestURI(),
		Proto:         r.Proto,
		Headers:       r.Header.Clone(),
		ContentType:   r.Header.Get("Content-Type"),
		Authorization: r.Header.Get("Authorization"),
	}
	if r.Body == nil {
		return e, nil
	}
	if strings.HasPrefix(e.ContentType, "multipart/") {
		parts, err := readParts(r)
		if err != nil {
			return e, err
		}
		e.Parts = parts
		return e, nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return e, err
	}
	e.Body = string(body)
	return e, nil
}

// readParts uses NextRawPart so quoted-printable parts are reported as
// sent, with their Content-Transfer-Encoding header intact.
func readParts(r *http.Request) ([]EchoPart, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	var parts []EchoPart
	for {
		p, err := mr.NextRawPart()
		if err == io.EOF {
			return parts, nil
		}
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, EchoPart{
			Name:             p.FormName(),
			FileName:         p.FileName(),
			ContentType:      p.Header.Get("Content-Type"),
			TransferEncoding: p.Header.Get("Content-Transfer-Encoding"),
			ContentID:        p.Header.Get("Content-ID"),
			Body:             string(body),
		})
	}
}
