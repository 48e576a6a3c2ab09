package nethttp

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"

	"github.com/kbukum/httpfacade/internal/engine"
	"github.com/kbukum/httpfacade/model"
)

// body is a request body prepared at translation time.
type body struct {
	// open returns a fresh reader over the payload.
	open func() (io.ReadCloser, error)
	// replayable reports whether open may be called more than once.
	replayable bool
	// length is the payload size, or -1 when unknown.
	length      int64
	contentType string
	files       []*os.File
}

func (b *body) release() {
	for _, f := range b.files {
		_ = f.Close()
	}
	b.files = nil
}

// newBody prepares the body selected by req.Body. It returns nil when the
// request has none.
func newBody(req *model.Request) (*body, error) {
	switch v := req.Body().(type) {
	case nil:
		return nil, nil
	case model.BytesBody:
		return bytesBody(v), nil
	case model.StringBody:
		return stringBody(string(v)), nil
	case model.FileBody:
		return fileBody(string(v))
	case model.StreamBody:
		return streamBody(v.Reader), nil
	case model.MultipartBody:
		return multipartBody(v)
	default:
		return nil, model.NewValidationError("request.body", fmt.Sprintf("unsupported body %T", v))
	}
}

func bytesBody(data []byte) *body {
	return &body{
		open:       func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
		replayable: true,
		length:     int64(len(data)),
	}
}

func stringBody(s string) *body {
	return &body{
		open:       func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(s)), nil },
		replayable: true,
		length:     int64(len(s)),
	}
}

func streamBody(r io.Reader) *body {
	used := false
	return &body{
		open: func() (io.ReadCloser, error) {
			if used {
				return nil, fmt.Errorf("nethttp: stream body already consumed")
			}
			used = true
			return io.NopCloser(r), nil
		},
		length: -1,
	}
}

func fileBody(path string) (*body, error) {
	f, size, err := engine.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &body{
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(io.NewSectionReader(f, 0, size)), nil
		},
		replayable: true,
		length:     size,
		files:      []*os.File{f},
	}, nil
}

// formPart is a multipart part with its headers resolved.
type formPart struct {
	name   string
	header textproto.MIMEHeader
	// payload returns the part's content for one write of the body.
	payload func() io.Reader
}

func multipartBody(parts model.MultipartBody) (*body, error) {
	b := &body{length: -1, replayable: true}
	formParts := make([]formPart, 0, len(parts))
	for i, p := range parts {
		fp, err := b.mapPart(i, p)
		if err != nil {
			b.release()
			return nil, err
		}
		formParts = append(formParts, fp)
	}

	boundary := multipart.NewWriter(io.Discard).Boundary()
	b.contentType = "multipart/form-data; boundary=" + boundary
	b.open = func() (io.ReadCloser, error) {
		pr, pw := io.Pipe()
		go func() {
			pw.CloseWithError(writeParts(pw, boundary, formParts))
		}()
		return pr, nil
	}
	return b, nil
}

func (b *body) mapPart(i int, p model.Part) (formPart, error) {
	if p == nil {
		return formPart{}, model.NewValidationError(fmt.Sprintf("request.parts[%d]", i), "part is nil")
	}
	info := p.Info()
	switch v := p.(type) {
	case *model.StringPart:
		h := partHeader(info, "", engine.PartContentType(info, engine.TextPlain), v.ContentID)
		return formPart{name: info.Name, header: h, payload: func() io.Reader { return strings.NewReader(v.Value) }}, nil
	case *model.ByteArrayPart:
		h := partHeader(info, "", engine.PartContentType(info, engine.OctetStream), "")
		return formPart{name: info.Name, header: h, payload: func() io.Reader { return bytes.NewReader(v.Bytes) }}, nil
	case *model.InputStreamPart:
		b.replayable = false
		h := partHeader(info, v.FileName, engine.PartContentType(info, engine.OctetStream), v.ContentID)
		r := v.Reader
		if v.ContentLength >= 0 {
			r = io.LimitReader(r, v.ContentLength)
		}
		return formPart{name: info.Name, header: h, payload: func() io.Reader { return r }}, nil
	case *model.FilePart:
		f, size, err := engine.OpenFile(v.Path)
		if err != nil {
			return formPart{}, err
		}
		b.files = append(b.files, f)
		h := partHeader(info, v.FileName(), engine.FilePartContentType(v), "")
		return formPart{name: info.Name, header: h, payload: func() io.Reader { return io.NewSectionReader(f, 0, size) }}, nil
	default:
		return formPart{}, model.NewValidationError(fmt.Sprintf("request.parts[%d]", i), fmt.Sprintf("unsupported part %T", p))
	}
}

func partHeader(info *model.PartInfo, fileName, contentType, contentID string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	disposition := `form-data; name="` + escapeQuotes(info.Name) + `"`
	if fileName != "" {
		disposition += `; filename="` + escapeQuotes(fileName) + `"`
	}
	h.Set("Content-Disposition", disposition)
	h.Set("Content-Type", contentType)
	if info.TransferEncoding != "" {
		h.Set("Content-Transfer-Encoding", info.TransferEncoding)
	}
	if contentID != "" {
		h.Set("Content-ID", contentID)
	}
	return h
}

func writeParts(w io.Writer, boundary string, parts []formPart) error {
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(boundary); err != nil {
		return err
	}
	for _, p := range parts {
		pw, err := mw.CreatePart(p.header)
		if err != nil {
			return err
		}
		if _, err := io.Copy(pw, p.payload()); err != nil {
			return fmt.Errorf("nethttp: write part %q: %w", p.name, err)
		}
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
