package nethttp

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kbukum/httpfacade"
	"github.com/kbukum/httpfacade/future"
	"github.com/kbukum/httpfacade/internal/engine"
	"github.com/kbukum/httpfacade/internal/realm"
	"github.com/kbukum/httpfacade/internal/transport"
	"github.com/kbukum/httpfacade/logger"
	"github.com/kbukum/httpfacade/model"
)

// Name is the backend name used in the registry.
const Name = "nethttp"

// Client is an httpfacade backend executing requests with an *http.Client.
type Client struct {
	hc     *http.Client
	cfg    httpfacade.Config
	runner *engine.Runner[*nativeRequest]
}

var _ httpfacade.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient executes requests with hc instead of a client built from
// the configuration. Digest handling is layered over hc's transport; the
// TLS, proxy and pool settings of the configuration are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// New creates a Client.
func New(cfg httpfacade.Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Get(Name)
	}
	if cfg.Name != "" {
		log = log.WithFields(logger.Fields(logger.FieldClient, cfg.Name))
	}

	hc, err := buildHTTPClient(cfg, o.httpClient, log)
	if err != nil {
		return nil, err
	}

	c := &Client{hc: hc, cfg: cfg}
	c.runner, err = engine.New[*nativeRequest](engine.Options{
		Backend:        Name,
		Client:         cfg.Name,
		MaxConcurrent:  cfg.MaxConcurrent,
		DefaultTimeout: cfg.Timeout,
		Log:            log,
		TracerProvider: cfg.TracerProvider,
		MeterProvider:  cfg.MeterProvider,
	}, (*binding)(c))
	if err != nil {
		return nil, fmt.Errorf("nethttp: %w", err)
	}
	log.Debug("client created", logger.Fields(logger.FieldBackend, Name))
	return c, nil
}

func buildHTTPClient(cfg httpfacade.Config, custom *http.Client, log *logger.Logger) (*http.Client, error) {
	if custom != nil {
		hc := *custom
		hc.Transport = &realm.Transport{Base: custom.Transport, Log: log}
		return &hc, nil
	}
	t, err := transport.New(transport.Options{
		Proxy:        cfg.Proxy,
		TLS:          cfg.TLS,
		MaxIdleConns: cfg.MaxIdleConns,
		Log:          log,
	})
	if err != nil {
		return nil, fmt.Errorf("nethttp: %w", err)
	}
	// cfg.Timeout is enforced per call by the runner.
	return &http.Client{Transport: t}, nil
}

// Name returns the backend name.
func (c *Client) Name() string { return Name }

// HTTPClient returns the underlying *http.Client.
func (c *Client) HTTPClient() *http.Client { return c.hc }

// Execute sends req without a client context.
func (c *Client) Execute(ctx context.Context, host model.Host, req *model.Request) (*future.Future[model.Response], error) {
	return c.runner.ExecuteWith(ctx, host, req, nil)
}

// ExecuteWith sends req with the settings of cc.
func (c *Client) ExecuteWith(ctx context.Context, host model.Host, req *model.Request, cc *model.ClientContext) (*future.Future[model.Response], error) {
	return c.runner.ExecuteWith(ctx, host, req, cc)
}

// Do sends req and waits for the response.
func (c *Client) Do(ctx context.Context, host model.Host, req *model.Request) (model.Response, error) {
	return c.runner.DoWith(ctx, host, req, nil)
}

// DoWith sends req with the settings of cc and waits for the response.
func (c *Client) DoWith(ctx context.Context, host model.Host, req *model.Request, cc *model.ClientContext) (model.Response, error) {
	return c.runner.DoWith(ctx, host, req, cc)
}

// Close releases idle connections. Requests already dispatched complete
// normally; new ones fail with model.ErrClosed.
func (c *Client) Close() error {
	return c.runner.Close()
}

// IsClosed reports whether Close has been called.
func (c *Client) IsClosed() bool { return c.runner.IsClosed() }

// InFlight returns the number of requests being executed.
func (c *Client) InFlight() int { return c.runner.InFlight() }

// binding adapts the client to engine.Binding.
type binding Client

func (b *binding) Translate(host model.Host, req *model.Request, cc *model.ClientContext) (*nativeRequest, error) {
	return translate(host, req, cc, b.cfg.Headers)
}

func (b *binding) Do(ctx context.Context, n *nativeRequest) (model.Response, error) {
	resp, err := b.hc.Do(n.req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &response{raw: resp, body: data}, nil
}

func (b *binding) Close() error {
	b.hc.CloseIdleConnections()
	return nil
}
