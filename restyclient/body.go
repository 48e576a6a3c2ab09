package restyclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/httpfacade/internal/engine"
	"github.com/kbukum/httpfacade/logger"
	"github.com/kbukum/httpfacade/model"
)

// attachBody sets the body selected by req.Body on r. Files opened for the
// body are returned so they can be closed once the call completes.
func attachBody(r *resty.Request, req *model.Request, log *logger.Logger) ([]*os.File, error) {
	switch v := req.Body().(type) {
	case nil:
		return nil, nil
	case model.BytesBody:
		r.SetBody([]byte(v))
		return nil, nil
	case model.StringBody:
		r.SetBody(string(v))
		return nil, nil
	case model.FileBody:
		f, size, err := engine.OpenFile(string(v))
		if err != nil {
			return nil, err
		}
		r.SetBody(io.NewSectionReader(f, 0, size))
		return []*os.File{f}, nil
	case model.StreamBody:
		r.SetBody(v.Reader)
		return nil, nil
	case model.MultipartBody:
		return attachParts(r, req.Method, v, log)
	default:
		return nil, model.NewValidationError("request.body", fmt.Sprintf("unsupported body %T", v))
	}
}

func attachParts(r *resty.Request, method string, parts model.MultipartBody, log *logger.Logger) ([]*os.File, error) {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return nil, model.NewValidationError("request.method", "multipart body requires POST, PUT or PATCH, got "+method)
	}

	var files []*os.File
	fields := make([]*resty.MultipartField, 0, len(parts))
	for i, p := range parts {
		field, f, err := mapPart(i, p)
		if err != nil {
			closeFiles(files)
			return nil, err
		}
		if f != nil {
			files = append(files, f)
		}
		if dropped := droppedHeaders(p); len(dropped) > 0 && log.DebugEnabled() {
			log.Debug("multipart part headers not supported by resty, dropped",
				logger.Fields(logger.FieldPart, p.Info().Name, "headers", strings.Join(dropped, ",")))
		}
		fields = append(fields, field)
	}
	r.SetMultipartFields(fields...)
	return files, nil
}

func mapPart(i int, p model.Part) (*resty.MultipartField, *os.File, error) {
	if p == nil {
		return nil, nil, model.NewValidationError(fmt.Sprintf("request.parts[%d]", i), "part is nil")
	}
	info := p.Info()
	switch v := p.(type) {
	case *model.StringPart:
		return &resty.MultipartField{
			Param:       info.Name,
			ContentType: engine.PartContentType(info, engine.TextPlain),
			Reader:      strings.NewReader(v.Value),
		}, nil, nil
	case *model.ByteArrayPart:
		return &resty.MultipartField{
			Param:       info.Name,
			ContentType: engine.PartContentType(info, engine.OctetStream),
			Reader:      bytes.NewReader(v.Bytes),
		}, nil, nil
	case *model.InputStreamPart:
		r := v.Reader
		if v.ContentLength >= 0 {
			r = io.LimitReader(r, v.ContentLength)
		}
		return &resty.MultipartField{
			Param:       info.Name,
			FileName:    v.FileName,
			ContentType: engine.PartContentType(info, engine.OctetStream),
			Reader:      r,
		}, nil, nil
	case *model.FilePart:
		f, size, err := engine.OpenFile(v.Path)
		if err != nil {
			return nil, nil, err
		}
		return &resty.MultipartField{
			Param:       info.Name,
			FileName:    v.FileName(),
			ContentType: engine.FilePartContentType(v),
			Reader:      io.NewSectionReader(f, 0, size),
		}, f, nil
	default:
		return nil, nil, model.NewValidationError(fmt.Sprintf("request.parts[%d]", i), fmt.Sprintf("unsupported part %T", p))
	}
}

// droppedHeaders lists the part headers resty cannot send.
func droppedHeaders(p model.Part) []string {
	var out []string
	if p.Info().TransferEncoding != "" {
		out = append(out, "Content-Transfer-Encoding")
	}
	switch v := p.(type) {
	case *model.StringPart:
		if v.ContentID != "" {
			out = append(out, "Content-ID")
		}
	case *model.InputStreamPart:
		if v.ContentID != "" {
			out = append(out, "Content-ID")
		}
	}
	return out
}

func closeFiles(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
