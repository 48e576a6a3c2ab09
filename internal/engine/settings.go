package engine

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/kbukum/httpfacade/internal/realm"
	"github.com/kbukum/httpfacade/internal/timeouts"
	"github.com/kbukum/httpfacade/internal/transport"
	"github.com/kbukum/httpfacade/model"
)

// Settings are the per-call options resolved from a ClientContext.
type Settings struct {
	// ReadTimeout bounds the wait for the first response byte.
	ReadTimeout time.Duration
	// RequestTimeout bounds the whole exchange.
	RequestTimeout time.Duration
	// Realm is the authentication attached to the call, if any.
	Realm *realm.Realm
	// Proxy routes the call through an HTTP proxy when set.
	Proxy *url.URL
}

// Resolve reads the request config and credentials of cc. A nil cc yields
// empty settings.
//
// The neutral connect timeout becomes the read timeout and the neutral
// socket timeout becomes the request timeout. Existing callers depend on
// this mapping.
func Resolve(cc *model.ClientContext) Settings {
	var s Settings
	if cc == nil {
		return s
	}
	if rc := cc.RequestConfig; rc != nil {
		s.ReadTimeout = rc.ConnectTimeout
		s.RequestTimeout = rc.SocketTimeout
		if rc.Proxy != nil {
			s.Proxy = ProxyURL(*rc.Proxy)
		}
	}
	s.Realm = realm.FromProvider(cc.CredentialsProvider)
	return s
}

// ProxyURL converts a neutral proxy host into a URL.
func ProxyURL(h model.Host) *url.URL {
	scheme := h.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return &url.URL{Scheme: scheme, Host: h.Hostname + ":" + strconv.Itoa(h.Port)}
}

// WithDefaultTimeout returns s with d as the request timeout when s has
// none. A per-call timeout always wins, even when it is longer than d.
func (s Settings) WithDefaultTimeout(d time.Duration) Settings {
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = d
	}
	return s
}

// Apply returns a context carrying the realm, proxy and deadlines of s.
// cancel must be called once the response has been read.
func (s Settings) Apply(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = realm.NewContext(ctx, s.Realm)
	ctx = transport.WithProxy(ctx, s.Proxy)
	return timeouts.WithDeadlines(ctx, s.ReadTimeout, s.RequestTimeout)
}
