package engine

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kbukum/httpfacade/model"
)

// Default part content types.
const (
	TextPlain   = "text/plain"
	OctetStream = "application/octet-stream"
)

// TextPlainUTF8 is the content type of string bodies.
const TextPlainUTF8 = "text/plain; charset=utf-8"

// BodyContentType is the Content-Type sent with a single-part body when
// neither the request nor the default headers set one. String bodies are
// UTF-8 text and streams are octet streams. Byte and file bodies are
// sniffed. Multipart bodies return "" since the engine adds the boundary.
func BodyContentType(b model.Body) string {
	switch v := b.(type) {
	case model.BytesBody:
		if len(v) == 0 {
			return OctetStream
		}
		return mimetype.Detect(v).String()
	case model.StringBody:
		return TextPlainUTF8
	case model.FileBody:
		path := string(v)
		return SniffFileType(path, strings.TrimPrefix(filepath.Ext(path), "."))
	case model.StreamBody:
		return OctetStream
	default:
		return ""
	}
}

// PartContentType renders the content type of info. A part without a MIME
// type gets fallback, keeping its charset if it has one.
func PartContentType(info *model.PartInfo, fallback string) string {
	return contentType(info.ContentType, func() string { return fallback })
}

func contentType(ct *model.ContentType, fallback func() string) string {
	if ct == nil {
		return fallback()
	}
	if ct.MimeType != "" {
		return ct.String()
	}
	if ct.Charset != "" {
		return model.NewContentType(fallback(), ct.Charset).String()
	}
	return fallback()
}

// SniffFileType guesses the MIME type of a file part from its extension,
// then from its content, falling back to application/octet-stream.
func SniffFileType(path, ext string) string {
	if ext != "" {
		if t := mime.TypeByExtension("." + ext); t != "" {
			return t
		}
	}
	if m, err := mimetype.DetectFile(path); err == nil {
		return m.String()
	}
	return OctetStream
}

// FilePartContentType is PartContentType for file parts, sniffing the MIME
// type when the part sets none.
func FilePartContentType(p *model.FilePart) string {
	return contentType(p.ContentType, func() string {
		return SniffFileType(p.Path, p.Extension())
	})
}
