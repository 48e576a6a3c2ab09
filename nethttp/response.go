package nethttp

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/kbukum/httpfacade/internal/engine"
	"github.com/kbukum/httpfacade/model"
)

// response adapts an *http.Response whose body has been read into body.
type response struct {
	raw  *http.Response
	body []byte
}

var _ model.Response = (*response)(nil)

// Raw returns the underlying response. Its Body has already been consumed.
func (r *response) Raw() *http.Response { return r.raw }

func (r *response) StatusLine() model.StatusLine {
	return model.StatusLine{
		Protocol:     r.raw.Proto,
		StatusCode:   r.raw.StatusCode,
		ReasonPhrase: reasonPhrase(r.raw),
	}
}

func (r *response) StatusCode() int { return r.raw.StatusCode }

func (r *response) AllHeaders() []model.Header { return engine.AllHeaders(r.raw.Header) }

func (r *response) Headers(name string) []model.Header {
	return engine.HeaderValues(r.raw.Header, name)
}

func (r *response) FirstHeader(name string) (model.Header, bool) {
	return engine.FirstHeader(r.raw.Header, name)
}

func (r *response) LastHeader(name string) (model.Header, bool) {
	return engine.LastHeader(r.raw.Header, name)
}

func (r *response) BodyStream() io.Reader { return bytes.NewReader(r.body) }

func (r *response) BodyBytes() []byte { return r.body }

func (r *response) BodyString() string { return string(r.body) }

// reasonPhrase strips the status code from Status, which reads "200 OK".
func reasonPhrase(resp *http.Response) string {
	if phrase, ok := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); ok {
		return phrase
	}
	return http.StatusText(resp.StatusCode)
}
