package model

import (
	"io"
	"strings"
)

// Header is a single request or response header line.
type Header struct {
	Name  string
	Value string
}

// Request is an engine-neutral HTTP request.
//
// At most one body representation should be set. When several are set,
// Body picks the first in the order ByteData, StringData, FilePath,
// InputStream, Parts.
type Request struct {
	// Method is the HTTP method (GET, POST, ...).
	Method string `validate:"required"`
	// URI is the path and query in relative form, e.g. "/v1/items?page=2".
	URI string `validate:"required,startswith=/"`
	// Headers are sent in order; duplicate names are allowed.
	Headers []Header
	// ByteData is a raw byte body.
	ByteData []byte
	// StringData is a string body. Nil means unset; a pointer to "" is an
	// empty body.
	StringData *string
	// FilePath is the path of a file streamed as the body.
	FilePath string
	// InputStream is a streamed body.
	InputStream io.Reader
	// Parts is a multipart/form-data body, sent in order.
	Parts []Part
}

// RequestOption configures a Request built by NewRequest.
type RequestOption func(*Request)

// NewRequest creates a request for method and uri.
func NewRequest(method, uri string, opts ...RequestOption) *Request {
	r := &Request{Method: method, URI: uri}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithHeader appends a header. Calling it twice with the same name sends
// both values.
func WithHeader(name, value string) RequestOption {
	return func(r *Request) {
		r.Headers = append(r.Headers, Header{Name: name, Value: value})
	}
}

// WithBytes sets a raw byte body.
func WithBytes(data []byte) RequestOption {
	return func(r *Request) {
		r.ByteData = data
	}
}

// WithString sets a string body.
func WithString(s string) RequestOption {
	return func(r *Request) {
		r.StringData = &s
	}
}

// WithFile sets a file body read from path when the request is sent.
func WithFile(path string) RequestOption {
	return func(r *Request) {
		r.FilePath = path
	}
}

// WithStream sets a streamed body.
func WithStream(rd io.Reader) RequestOption {
	return func(r *Request) {
		r.InputStream = rd
	}
}

// WithParts appends multipart parts.
func WithParts(parts ...Part) RequestOption {
	return func(r *Request) {
		r.Parts = append(r.Parts, parts...)
	}
}

// AddHeader appends a header to the request.
func (r *Request) AddHeader(name, value string) {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
}

// HeaderValues returns the values of every header named name
// (case-insensitive), in order.
func (r *Request) HeaderValues(name string) []string {
	var values []string
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			values = append(values, h.Value)
		}
	}
	return values
}

// Body resolves the request's body representations into a single variant.
// It returns nil when the request has no body.
func (r *Request) Body() Body {
	switch {
	case r.ByteData != nil:
		return BytesBody(r.ByteData)
	case r.StringData != nil:
		return StringBody(*r.StringData)
	case r.FilePath != "":
		return FileBody(r.FilePath)
	case r.InputStream != nil:
		return StreamBody{Reader: r.InputStream}
	case len(r.Parts) > 0:
		return MultipartBody(r.Parts)
	default:
		return nil
	}
}
