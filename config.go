package httpfacade

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/httpfacade/config"
	"github.com/kbukum/httpfacade/internal/dispatch"
	"github.com/kbukum/httpfacade/internal/transport"
	"github.com/kbukum/httpfacade/logger"
	"github.com/kbukum/httpfacade/model"
	"github.com/kbukum/httpfacade/security"
)

const (
	defaultTimeout = 30 * time.Second

	// EnvPrefix prefixes environment overrides read by LoadConfig.
	EnvPrefix = "HTTPFACADE"
)

// Config configures a backend.
type Config struct {
	// Name identifies the client in logs, traces and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// Backend selects the engine, e.g. "resty" or "nethttp".
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Timeout bounds every call that sets no request timeout of its own.
	// Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// MaxConcurrent bounds calls in flight per client. Defaults to 64.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent" validate:"gte=0"`

	// MaxIdleConns bounds the idle connection pool. Zero keeps the engine
	// default.
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns" validate:"gte=0"`

	// Proxy is an engine-wide proxy URL (http, https or socks5).
	Proxy string `yaml:"proxy" mapstructure:"proxy"`

	// TLS configures server verification and client certificates.
	TLS security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are sent with every request that does not set them itself.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Logger overrides the logger registered under the backend name.
	Logger *logger.Logger `yaml:"-" mapstructure:"-"`

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider `yaml:"-" mapstructure:"-"`

	// MeterProvider defaults to the global provider.
	MeterProvider metric.MeterProvider `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = dispatch.DefaultMaxConcurrent
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := model.ValidateStruct(c); err != nil {
		return fmt.Errorf("httpfacade: invalid config: %w", err)
	}
	if c.Proxy != "" {
		if _, err := transport.ParseProxy(c.Proxy); err != nil {
			return err
		}
	}
	return c.TLS.Validate()
}

// LoadConfig reads a Config from the "http" section of a YAML file, a .env
// file and HTTPFACADE_* environment variables, then applies defaults.
func LoadConfig(opts ...config.LoaderOption) (Config, error) {
	var cfg Config
	opts = append([]config.LoaderOption{config.WithEnvPrefix(EnvPrefix), config.WithKey("http")}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}
