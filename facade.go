package httpfacade

import (
	"context"

	"github.com/kbukum/httpfacade/future"
	"github.com/kbukum/httpfacade/internal/timeouts"
	"github.com/kbukum/httpfacade/model"
)

// ErrReadTimeout is wrapped into the execution error when no response byte
// arrived within the read timeout.
var ErrReadTimeout = timeouts.ErrReadTimeout

// AsyncClient executes requests without blocking the caller.
//
// The error returned by Execute reports construction-time failures only:
// invalid arguments, an unreadable body file, or a closed client.
// Failures while the request is in flight reject the future with the
// engine's own error.
type AsyncClient interface {
	// Execute is ExecuteWith with no client context.
	Execute(ctx context.Context, host model.Host, req *model.Request) (*future.Future[model.Response], error)
	// ExecuteWith applies the timeouts, proxy and credentials of cc. cc
	// may be nil and is not retained.
	ExecuteWith(ctx context.Context, host model.Host, req *model.Request, cc *model.ClientContext) (*future.Future[model.Response], error)
	// Close releases the engine. It is safe to call more than once.
	Close() error
}

// Client executes requests on the caller's goroutine.
type Client interface {
	Do(ctx context.Context, host model.Host, req *model.Request) (model.Response, error)
	DoWith(ctx context.Context, host model.Host, req *model.Request, cc *model.ClientContext) (model.Response, error)
	Close() error
}

// Backend is an engine binding offering both calling styles.
type Backend interface {
	AsyncClient
	Client
	// Name returns the registered backend name.
	Name() string
}
