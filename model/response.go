package model

import "io"

// StatusLine is the first line of an HTTP response.
type StatusLine struct {
	Protocol     string
	StatusCode   int
	ReasonPhrase string
}

// Response is a read-only view over an engine's completed response.
// Implementations delegate to the engine's own response object.
type Response interface {
	StatusLine() StatusLine
	StatusCode() int
	// AllHeaders returns every header; names are sorted and values keep
	// their received order.
	AllHeaders() []Header
	// Headers returns every header named name (case-insensitive).
	Headers(name string) []Header
	FirstHeader(name string) (Header, bool)
	LastHeader(name string) (Header, bool)
	// BodyStream returns a new reader over the body on every call.
	BodyStream() io.Reader
	BodyBytes() []byte
	BodyString() string
}
