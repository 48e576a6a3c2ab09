package model

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_OK(t *testing.T) {
	err := Validate(NewHost("http", "example.com", 8080), NewRequest(http.MethodGet, "/v1/x?y=1"))
	assert.NoError(t, err)
}

func TestValidate_Failures(t *testing.T) {
	okHost := NewHost("http", "example.com", 80)
	okReq := NewRequest(http.MethodGet, "/")

	tests := []struct {
		name  string
		host  Host
		req   *Request
		field string
	}{
		{"nil request", okHost, nil, "request"},
		{"bad scheme", NewHost("ftp", "example.com", 21), okReq, "host.scheme"},
		{"missing hostname", NewHost("http", "", 80), okReq, "host.hostname"},
		{"zero port", NewHost("http", "example.com", 0), okReq, "host.port"},
		{"port too large", NewHost("http", "example.com", 70000), okReq, "host.port"},
		{"missing method", okHost, NewRequest("", "/"), "request.method"},
		{"missing uri", okHost, NewRequest(http.MethodGet, ""), "request.uri"},
		{"absolute uri", okHost, NewRequest(http.MethodGet, "http://other/x"), "request.uri"},
		{"nil part", okHost, NewRequest(http.MethodPost, "/", WithParts(nil)), "request.parts"},
		{"typed nil part", okHost, NewRequest(http.MethodPost, "/", WithParts((*FilePart)(nil))), "request.parts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.host, tt.req)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.field, e.Field)
		})
	}
}

func TestValidateContext(t *testing.T) {
	withProxy := func(h Host) *ClientContext {
		return NewClientContext().WithRequestConfig(&RequestConfig{Proxy: &h})
	}

	for name, cc := range map[string]*ClientContext{
		"nil context":    nil,
		"empty context":  NewClientContext(),
		"no proxy":       NewClientContext().WithRequestConfig(&RequestConfig{}),
		"http proxy":     withProxy(NewHost("http", "proxy.local", 3128)),
		"default scheme": withProxy(Host{Hostname: "proxy.local", Port: 3128}),
		"socks5 proxy":   withProxy(NewHost("socks5", "proxy.local", 1080)),
	} {
		assert.NoError(t, ValidateContext(cc), name)
	}

	tests := []struct {
		name  string
		proxy Host
		field string
	}{
		{"zero host", Host{}, "requestconfig.proxy.hostname"},
		{"missing port", Host{Hostname: "proxy.local"}, "requestconfig.proxy.port"},
		{"port too large", NewHost("http", "proxy.local", 70000), "requestconfig.proxy.port"},
		{"bad scheme", NewHost("ftp", "proxy.local", 21), "requestconfig.proxy.scheme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContext(withProxy(tt.proxy))
			require.Error(t, err)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.field, e.Field)
		})
	}
}
