package security

import (
	"crypto/tls"
	"strings"
	"testing"

	"github.com/kbukum/httpfacade/security/tlstest"
)

func TestTLSConfig_Build_Disabled(t *testing.T) {
	var nilCfg *TLSConfig
	for _, cfg := range []*TLSConfig{nilCfg, {}} {
		got, err := cfg.Build()
		if err != nil || got != nil {
			t.Errorf("Build() = %v, %v; want nil, nil", got, err)
		}
	}
}

func TestTLSConfig_Build_Options(t *testing.T) {
	tests := []struct {
		name  string
		cfg   TLSConfig
		check func(*testing.T, *tls.Config)
	}{
		{"skip verify", TLSConfig{SkipVerify: true}, func(t *testing.T, c *tls.Config) {
			if !c.InsecureSkipVerify {
				t.Error("expected InsecureSkipVerify")
			}
			if c.MinVersion != tls.VersionTLS12 {
				t.Errorf("default MinVersion = %x", c.MinVersion)
			}
		}},
		{"server name", TLSConfig{ServerName: "api.internal"}, func(t *testing.T, c *tls.Config) {
			if c.ServerName != "api.internal" {
				t.Errorf("ServerName = %q", c.ServerName)
			}
		}},
		{"tls 1.3", TLSConfig{MinVersion: TLS13}, func(t *testing.T, c *tls.Config) {
			if c.MinVersion != tls.VersionTLS13 {
				t.Errorf("MinVersion = %x", c.MinVersion)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestTLSConfig_Build_Files(t *testing.T) {
	certs := tlstest.Generate(t)
	cfg := TLSConfig{CAFile: certs.CAFile, CertFile: certs.CertFile, KeyFile: certs.KeyFile}
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RootCAs == nil {
		t.Error("expected RootCAs")
	}
	if len(got.Certificates) != 1 {
		t.Errorf("expected one client certificate, got %d", len(got.Certificates))
	}
}

func TestTLSConfig_Build_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  TLSConfig
		want string
	}{
		{"missing CA", TLSConfig{CAFile: "/nonexistent/ca.pem"}, "read CA file"},
		{"invalid CA", TLSConfig{CAFile: tlstest.WriteInvalidPEM(t, "ca.pem")}, "no certificates"},
		{"missing cert", TLSConfig{CertFile: "/nonexistent/c.pem", KeyFile: "/nonexistent/k.pem"}, "load client certificate"},
		{"cert without key", TLSConfig{CertFile: "/c.pem"}, "provided together"},
		{"bad version", TLSConfig{MinVersion: "1.1"}, "min_version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Build()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Build() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestTLSConfig_IsEnabled(t *testing.T) {
	var nilCfg *TLSConfig
	if nilCfg.IsEnabled() || (&TLSConfig{}).IsEnabled() {
		t.Error("empty config should be disabled")
	}
	if !(&TLSConfig{CAFile: "x"}).IsEnabled() {
		t.Error("expected enabled")
	}
}
