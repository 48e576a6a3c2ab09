package restyclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/httpfacade"
	"github.com/kbukum/httpfacade/future"
	"github.com/kbukum/httpfacade/internal/engine"
	"github.com/kbukum/httpfacade/internal/realm"
	"github.com/kbukum/httpfacade/internal/transport"
	"github.com/kbukum/httpfacade/logger"
	"github.com/kbukum/httpfacade/model"
)

// Name is the backend name used in the registry.
const Name = "resty"

// Client is an httpfacade backend executing requests with a resty client.
type Client struct {
	rc     *resty.Client
	log    *logger.Logger
	runner *engine.Runner[*nativeRequest]
}

var _ httpfacade.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*options)

type options struct {
	resty *resty.Client
	debug bool
}

// WithRestyClient executes requests with rc. Digest handling is layered
// over rc's transport and the default headers are applied to rc. The
// configured timeout is enforced per call. The TLS, proxy and pool
// settings of the configuration are ignored.
func WithRestyClient(rc *resty.Client) Option {
	return func(o *options) {
		o.resty = rc
	}
}

// WithDebug turns on resty's request and response dumps, written to the
// client logger at debug level.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
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

	rc, err := buildRestyClient(cfg, o.resty, log)
	if err != nil {
		return nil, err
	}
	rc.SetLogger(restyLogger{log: log}).
		SetDebug(o.debug).
		SetAllowGetMethodPayload(true)
	if len(cfg.Headers) > 0 {
		rc.SetHeaders(cfg.Headers)
	}

	c := &Client{rc: rc, log: log}
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
		return nil, fmt.Errorf("restyclient: %w", err)
	}
	log.Debug("client created", logger.Fields(logger.FieldBackend, Name))
	return c, nil
}

func buildRestyClient(cfg httpfacade.Config, custom *resty.Client, log *logger.Logger) (*resty.Client, error) {
	if custom != nil {
		base := custom.GetClient().Transport
		if base == nil {
			base = http.DefaultTransport
		}
		return custom.SetTransport(&realm.Transport{Base: base, Log: log}), nil
	}
	t, err := transport.New(transport.Options{
		Proxy:        cfg.Proxy,
		TLS:          cfg.TLS,
		MaxIdleConns: cfg.MaxIdleConns,
		Log:          log,
	})
	if err != nil {
		return nil, fmt.Errorf("restyclient: %w", err)
	}
	return resty.NewWithClient(&http.Client{Transport: t}), nil
}

// Name returns the backend name.
func (c *Client) Name() string { return Name }

// Resty returns the underlying resty client.
func (c *Client) Resty() *resty.Client { return c.rc }

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
	return translate(b.rc, host, req, cc, b.log)
}

func (b *binding) Do(ctx context.Context, n *nativeRequest) (model.Response, error) {
	resp, err := n.r.SetContext(ctx).Execute(n.method, n.url)
	if err != nil {
		return nil, err
	}
	return &response{raw: resp}, nil
}

func (b *binding) Close() error {
	b.rc.GetClient().CloseIdleConnections()
	return nil
}
