package model

import "time"

// ClientContext carries optional per-call settings. It is owned by the
// caller and is not retained after the call is translated.
type ClientContext struct {
	RequestConfig       *RequestConfig
	CredentialsProvider CredentialsProvider
}

// RequestConfig holds per-call transport settings.
type RequestConfig struct {
	// ConnectTimeout bounds connection setup. Zero means unset.
	ConnectTimeout time.Duration
	// SocketTimeout bounds waiting for data. Zero means unset.
	SocketTimeout time.Duration
	// Proxy routes this call through an HTTP proxy when set.
	Proxy *Host
}

// NewClientContext creates an empty client context.
func NewClientContext() *ClientContext {
	return &ClientContext{}
}

// WithRequestConfig sets the request config and returns the receiver.
func (c *ClientContext) WithRequestConfig(rc *RequestConfig) *ClientContext {
	c.RequestConfig = rc
	return c
}

// WithCredentials sets the credentials provider and returns the receiver.
func (c *ClientContext) WithCredentials(cp CredentialsProvider) *ClientContext {
	c.CredentialsProvider = cp
	return c
}

// ConnectTimeoutMillis returns the connect timeout in milliseconds.
func (rc *RequestConfig) ConnectTimeoutMillis() int64 {
	return rc.ConnectTimeout.Milliseconds()
}

// SocketTimeoutMillis returns the socket timeout in milliseconds.
func (rc *RequestConfig) SocketTimeoutMillis() int64 {
	return rc.SocketTimeout.Milliseconds()
}
