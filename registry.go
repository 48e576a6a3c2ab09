package httpfacade

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a backend from configuration.
type Factory func(cfg Config) (Backend, error)

var backends = struct {
	mu        sync.RWMutex
	factories map[string]Factory
}{factories: make(map[string]Factory)}

// Register makes a backend available under name. Backend packages call it
// from init. Registering a name twice panics.
func Register(name string, f Factory) {
	backends.mu.Lock()
	defer backends.mu.Unlock()
	if f == nil {
		panic("httpfacade: Register factory is nil")
	}
	if _, dup := backends.factories[name]; dup {
		panic("httpfacade: Register called twice for backend " + name)
	}
	backends.factories[name] = f
}

// Backends returns the sorted names of all registered backends.
func Backends() []string {
	backends.mu.RLock()
	defer backends.mu.RUnlock()
	names := make([]string, 0, len(backends.factories))
	for name := range backends.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a backend from cfg. When cfg.Backend is empty and exactly
// one backend is registered, that backend is used.
func New(cfg Config) (Backend, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	name := cfg.Backend
	backends.mu.RLock()
	if name == "" && len(backends.factories) == 1 {
		for only := range backends.factories {
			name = only
		}
	}
	f, ok := backends.factories[name]
	backends.mu.RUnlock()

	if !ok {
		if name == "" {
			return nil, fmt.Errorf("httpfacade: no backend selected (registered: %v)", Backends())
		}
		return nil, fmt.Errorf("httpfacade: backend %q not registered (forgotten import?)", name)
	}
	cfg.Backend = name
	return f(cfg)
}

// NewAsyncClient creates an asynchronous client.
func NewAsyncClient(cfg Config) (AsyncClient, error) {
	return New(cfg)
}

// NewClient creates a blocking client.
func NewClient(cfg Config) (Client, error) {
	return New(cfg)
}
