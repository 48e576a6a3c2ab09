// Package transport builds the http.RoundTripper shared by the backends:
// pooled connections, TLS, an optional engine-wide proxy, a per-request
// proxy read from the request context, and Digest realm handling.
package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"

	"github.com/kbukum/httpfacade/internal/realm"
	"github.com/kbukum/httpfacade/logger"
	"github.com/kbukum/httpfacade/security"
)

// Options configures a transport.
type Options struct {
	// Proxy is the engine-wide proxy URL. http, https and socks5 schemes
	// are supported. Empty means the environment proxy settings apply.
	Proxy string
	// TLS configures server verification and client certificates.
	TLS security.TLSConfig
	// MaxIdleConns bounds the idle connection pool. Zero keeps the default.
	MaxIdleConns int
	// Log receives warnings about realms the engines cannot answer.
	Log *logger.Logger
}

// New creates the round tripper stack used by a backend. The returned
// transport's CloseIdleConnections releases pooled connections.
func New(opts Options) (*realm.Transport, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("transport: unexpected default transport %T", http.DefaultTransport)
	}
	t := base.Clone()

	tlsCfg, err := opts.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		t.TLSClientConfig = tlsCfg
	}

	if opts.MaxIdleConns > 0 {
		t.MaxIdleConns = opts.MaxIdleConns
		t.MaxIdleConnsPerHost = opts.MaxIdleConns
	}

	fallback := http.ProxyFromEnvironment
	if opts.Proxy != "" {
		u, err := ParseProxy(opts.Proxy)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "socks5" {
			dialer, err := socksDialer(u)
			if err != nil {
				return nil, err
			}
			t.DialContext = dialer
			fallback = nil
		} else {
			fallback = http.ProxyURL(u)
		}
	}
	t.Proxy = func(req *http.Request) (*url.URL, error) {
		if u, ok := ProxyFromContext(req.Context()); ok {
			return u, nil
		}
		if fallback == nil {
			return nil, nil
		}
		return fallback(req)
	}

	return &realm.Transport{Base: t, Log: opts.Log}, nil
}

// ParseProxy validates a proxy URL.
func ParseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid proxy %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return nil, fmt.Errorf("transport: unsupported proxy scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("transport: proxy %q has no host", raw)
	}
	return u, nil
}

func socksDialer(u *url.URL) (func(ctx context.Context, network, addr string) (net.Conn, error), error) {
	var auth *proxy.Auth
	if u.User != nil {
		pass, _ := u.User.Password()
		auth = &proxy.Auth{User: u.User.Username(), Password: pass}
	}
	forward := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}
	d, err := proxy.SOCKS5("tcp", u.Host, auth, forward)
	if err != nil {
		return nil, fmt.Errorf("transport: socks5 proxy: %w", err)
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return func(_ context.Context, network, addr string) (net.Conn, error) {
			return d.Dial(network, addr)
		}, nil
	}
	return cd.DialContext, nil
}

type proxyKey struct{}

// WithProxy returns a context routing its request through u. A nil u
// leaves ctx unchanged.
func WithProxy(ctx context.Context, u *url.URL) context.Context {
	if u == nil {
		return ctx
	}
	return context.WithValue(ctx, proxyKey{}, u)
}

// ProxyFromContext returns the per-request proxy carried by ctx.
func ProxyFromContext(ctx context.Context) (*url.URL, bool) {
	u, ok := ctx.Value(proxyKey{}).(*url.URL)
	return u, ok && u != nil
}
