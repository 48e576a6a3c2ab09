package model

import "io"

// Body is the resolved body of a request. The variants are BytesBody,
// StringBody, FileBody, StreamBody and MultipartBody.
type Body interface {
	isBody()
}

// BytesBody is a raw byte body.
type BytesBody []byte

// StringBody is a string body.
type StringBody string

// FileBody is the path of a file sent as the body.
type FileBody string

// StreamBody is a body read from an io.Reader.
type StreamBody struct {
	io.Reader
}

// MultipartBody is an ordered list of multipart/form-data parts.
type MultipartBody []Part

func (BytesBody) isBody()     {}
func (StringBody) isBody()    {}
func (FileBody) isBody()      {}
func (StreamBody) isBody()    {}
func (MultipartBody) isBody() {}
