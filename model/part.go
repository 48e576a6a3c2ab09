package model

import (
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// ContentType is a MIME type with an optional charset.
type ContentType struct {
	MimeType string
	Charset  string
}

// NewContentType creates a ContentType.
func NewContentType(mimeType, charset string) *ContentType {
	return &ContentType{MimeType: mimeType, Charset: charset}
}

// String renders the content type as a header value.
func (c *ContentType) String() string {
	if c == nil || c.MimeType == "" {
		return ""
	}
	if c.Charset == "" {
		return c.MimeType
	}
	if v := mime.FormatMediaType(c.MimeType, map[string]string{"charset": c.Charset}); v != "" {
		return v
	}
	return c.MimeType + "; charset=" + c.Charset
}

// PartInfo holds the fields shared by every multipart part.
type PartInfo struct {
	// Name is the form field name.
	Name string
	// ContentType is optional; nil leaves the choice to the engine.
	ContentType *ContentType
	// TransferEncoding is the part's Content-Transfer-Encoding, if any.
	TransferEncoding string
}

// Info returns the shared part fields.
func (p *PartInfo) Info() *PartInfo { return p }

// MimeType returns the part's MIME type, or "" when unset.
func (p *PartInfo) MimeType() string {
	if p.ContentType == nil {
		return ""
	}
	return p.ContentType.MimeType
}

// Charset returns the part's charset, or "" when unset.
func (p *PartInfo) Charset() string {
	if p.ContentType == nil {
		return ""
	}
	return p.ContentType.Charset
}

func (p *PartInfo) isPart() {}

// Part is one segment of a multipart/form-data body. The set of parts is
// closed: *StringPart, *ByteArrayPart, *InputStreamPart and *FilePart.
type Part interface {
	Info() *PartInfo
	isPart()
}

// PartOption configures the shared fields of a part.
type PartOption func(*PartInfo)

// WithContentType sets the part's MIME type and charset. Either may be empty.
func WithContentType(mimeType, charset string) PartOption {
	return func(p *PartInfo) {
		p.ContentType = NewContentType(mimeType, charset)
	}
}

// WithTransferEncoding sets the part's Content-Transfer-Encoding.
func WithTransferEncoding(enc string) PartOption {
	return func(p *PartInfo) {
		p.TransferEncoding = enc
	}
}

// StringPart is a text form field.
type StringPart struct {
	PartInfo
	Value     string
	ContentID string
}

// ByteArrayPart is an in-memory binary field.
type ByteArrayPart struct {
	PartInfo
	Bytes []byte
}

// InputStreamPart is a field streamed from a reader.
type InputStreamPart struct {
	PartInfo
	Reader io.Reader
	// FileName is sent in the Content-Disposition header when set.
	FileName string
	// ContentLength is the stream length, or -1 when unknown.
	ContentLength int64
	ContentID     string
}

// FilePart is a field whose payload is read from a file.
type FilePart struct {
	PartInfo
	Path string
}

// NewStringPart creates a text part.
func NewStringPart(name, value string, opts ...PartOption) *StringPart {
	p := &StringPart{PartInfo: PartInfo{Name: name}, Value: value}
	applyPartOptions(&p.PartInfo, opts)
	return p
}

// NewByteArrayPart creates a binary part.
func NewByteArrayPart(name string, data []byte, opts ...PartOption) *ByteArrayPart {
	p := &ByteArrayPart{PartInfo: PartInfo{Name: name}, Bytes: data}
	applyPartOptions(&p.PartInfo, opts)
	return p
}

// NewInputStreamPart creates a streamed part of unknown length.
func NewInputStreamPart(name string, r io.Reader, opts ...PartOption) *InputStreamPart {
	p := &InputStreamPart{PartInfo: PartInfo{Name: name}, Reader: r, ContentLength: -1}
	applyPartOptions(&p.PartInfo, opts)
	return p
}

// NewFilePart creates a file-backed part.
func NewFilePart(name, path string, opts ...PartOption) *FilePart {
	p := &FilePart{PartInfo: PartInfo{Name: name}, Path: path}
	applyPartOptions(&p.PartInfo, opts)
	return p
}

// FileName returns the base name of the file.
func (p *FilePart) FileName() string {
	return filepath.Base(p.Path)
}

// Extension returns the file extension without the leading dot, or "" when
// the file name has none.
func (p *FilePart) Extension() string {
	return ExtractFileExtension(p.Path)
}

// ExtractFileExtension returns the extension of the last path element
// without the leading dot: "a/b/report.pdf" yields "pdf".
func ExtractFileExtension(path string) string {
	ext := filepath.Ext(filepath.Base(path))
	return strings.TrimPrefix(ext, ".")
}

func applyPartOptions(p *PartInfo, opts []PartOption) {
	for _, opt := range opts {
		opt(p)
	}
}
