package httpfacade

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/kbukum/httpfacade/component"
	"github.com/kbukum/httpfacade/version"
)

// Component wraps a Backend with lifecycle management.
// Use this when the client is part of a managed application.
type Component struct {
	config Config

	mu      sync.RWMutex
	backend Backend
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a client component. The backend is created in
// Start.
func NewComponent(cfg Config) *Component {
	return &Component{config: cfg}
}

// Name returns the component name.
func (c *Component) Name() string {
	if c.config.Name != "" {
		return c.config.Name
	}
	return "http-client"
}

// Start creates the backend.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend != nil {
		return nil
	}
	b, err := New(c.config)
	if err != nil {
		return err
	}
	c.backend = b
	return nil
}

// Stop closes the backend.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	b := c.backend
	c.backend = nil
	c.mu.Unlock()
	if b == nil {
		return nil
	}
	return b.Close()
}

// Health reports healthy while the backend is open, and degraded when
// every dispatcher slot is taken.
func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.backend == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "closed"}
	}
	if f, ok := c.backend.(inFlighter); ok {
		cfg := c.config
		cfg.ApplyDefaults()
		if n := f.InFlight(); n >= cfg.MaxConcurrent {
			return component.Health{
				Name:    c.Name(),
				Status:  component.StatusDegraded,
				Message: fmt.Sprintf("dispatcher saturated (%d in flight)", n),
			}
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// inFlighter is implemented by backends that report dispatcher usage.
type inFlighter interface {
	InFlight() int
}

// Describe returns a one-line summary.
func (c *Component) Describe() component.Description {
	cfg := c.config
	cfg.ApplyDefaults()
	details := fmt.Sprintf("backend=%s timeout=%s max_concurrent=%d version=%s", cfg.Backend, cfg.Timeout, cfg.MaxConcurrent, version.Get())
	if u, err := url.Parse(cfg.Proxy); err == nil && cfg.Proxy != "" {
		details += " proxy=" + u.Redacted()
	}
	return component.Description{
		Name:    c.Name(),
		Type:    "http-client",
		Details: details,
	}
}

// Backend returns the running backend, or nil before Start and after
// Stop.
func (c *Component) Backend() Backend {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend
}
