package restyclient

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/httpfacade/internal/engine"
	"github.com/kbukum/httpfacade/model"
)

// response adapts a *resty.Response. Resty reads the body before Execute
// returns.
type response struct {
	raw *resty.Response
}

var _ model.Response = (*response)(nil)

// Raw returns the underlying resty response.
func (r *response) Raw() *resty.Response { return r.raw }

func (r *response) StatusLine() model.StatusLine {
	code := r.raw.StatusCode()
	phrase, ok := strings.CutPrefix(r.raw.Status(), strconv.Itoa(code)+" ")
	if !ok {
		phrase = http.StatusText(code)
	}
	return model.StatusLine{Protocol: r.raw.Proto(), StatusCode: code, ReasonPhrase: phrase}
}

func (r *response) StatusCode() int { return r.raw.StatusCode() }

func (r *response) AllHeaders() []model.Header { return engine.AllHeaders(r.raw.Header()) }

func (r *response) Headers(name string) []model.Header {
	return engine.HeaderValues(r.raw.Header(), name)
}

func (r *response) FirstHeader(name string) (model.Header, bool) {
	return engine.FirstHeader(r.raw.Header(), name)
}

func (r *response) LastHeader(name string) (model.Header, bool) {
	return engine.LastHeader(r.raw.Header(), name)
}

func (r *response) BodyStream() io.Reader { return bytes.NewReader(r.raw.Body()) }

func (r *response) BodyBytes() []byte { return r.raw.Body() }

func (r *response) BodyString() string { return string(r.raw.Body()) }
