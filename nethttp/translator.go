package nethttp

import (
	"context"
	"net/http"

	"github.com/kbukum/httpfacade/internal/engine"
	"github.com/kbukum/httpfacade/internal/realm"
	"github.com/kbukum/httpfacade/model"
)

// nativeRequest is a translated request awaiting execution.
type nativeRequest struct {
	req      *http.Request
	body     *body
	settings engine.Settings
}

func (n *nativeRequest) Method() string            { return n.req.Method }
func (n *nativeRequest) URL() string               { return n.req.URL.String() }
func (n *nativeRequest) Settings() engine.Settings { return n.settings }

// Release closes the body handed to the transport, which stops a pending
// multipart writer, then closes any files opened for the body.
func (n *nativeRequest) Release() {
	if n.body == nil {
		return
	}
	if n.req.Body != nil {
		_ = n.req.Body.Close()
	}
	n.body.release()
}

// translate builds the *http.Request for req. Default headers fill in
// names the request does not set.
func translate(host model.Host, req *model.Request, cc *model.ClientContext, defaults map[string]string) (*nativeRequest, error) {
	b, err := newBody(req)
	if err != nil {
		return nil, err
	}

	hreq, err := http.NewRequestWithContext(context.Background(), req.Method, host.URI()+req.URI, nil)
	if err != nil {
		if b != nil {
			b.release()
		}
		return nil, model.NewValidationError("request.uri", err.Error())
	}

	for _, h := range req.Headers {
		hreq.Header.Add(h.Name, h.Value)
	}
	engine.ApplyDefaultHeaders(hreq.Header, defaults)
	if hreq.Header.Get("Content-Type") == "" {
		if ct := engine.BodyContentType(req.Body()); ct != "" {
			hreq.Header.Set("Content-Type", ct)
		}
	}

	if b != nil {
		attachBody(hreq, b)
	}

	n := &nativeRequest{req: hreq, body: b, settings: engine.Resolve(cc)}
	if r := n.settings.Realm; r != nil && r.Scheme == realm.Basic {
		hreq.SetBasicAuth(r.Username, r.Password)
	}
	return n, nil
}

func attachBody(hreq *http.Request, b *body) {
	// open never fails on its first call
	rc, _ := b.open()
	hreq.Body = rc
	if b.length >= 0 {
		hreq.ContentLength = b.length
	} else {
		hreq.ContentLength = -1
	}
	if b.length == 0 {
		hreq.Body = http.NoBody
	}
	if b.replayable {
		hreq.GetBody = b.open
	}
	if b.contentType != "" {
		hreq.Header.Set("Content-Type", b.contentType)
	}
}
