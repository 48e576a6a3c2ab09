package restyclient

import (
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/httpfacade/internal/engine"
	"github.com/kbukum/httpfacade/internal/realm"
	"github.com/kbukum/httpfacade/logger"
	"github.com/kbukum/httpfacade/model"
)

// nativeRequest is a resty request awaiting execution.
type nativeRequest struct {
	r        *resty.Request
	method   string
	url      string
	settings engine.Settings
	files    []*os.File
}

func (n *nativeRequest) Method() string            { return n.method }
func (n *nativeRequest) URL() string               { return n.url }
func (n *nativeRequest) Settings() engine.Settings { return n.settings }

// Release closes files opened for the body.
func (n *nativeRequest) Release() {
	closeFiles(n.files)
	n.files = nil
}

// translate builds a resty request on rc. The client's default headers
// are merged by resty and never override request headers.
func translate(rc *resty.Client, host model.Host, req *model.Request, cc *model.ClientContext, log *logger.Logger) (*nativeRequest, error) {
	r := rc.R()
	for _, h := range req.Headers {
		r.Header.Add(h.Name, h.Value)
	}

	files, err := attachBody(r, req, log)
	if err != nil {
		return nil, err
	}
	// resty guesses a Content-Type from the Go type of the body when none is
	// set, which differs from the other backends.
	if r.Header.Get("Content-Type") == "" && rc.Header.Get("Content-Type") == "" {
		if ct := engine.BodyContentType(req.Body()); ct != "" {
			r.Header.Set("Content-Type", ct)
		}
	}
	if r.Body != nil && (req.Method == http.MethodHead || req.Method == http.MethodOptions) {
		log.Debug("resty does not send a body with "+req.Method, logger.Fields(logger.FieldMethod, req.Method))
	}

	n := &nativeRequest{
		r:        r,
		method:   req.Method,
		url:      host.URI() + req.URI,
		settings: engine.Resolve(cc),
		files:    files,
	}
	if rl := n.settings.Realm; rl != nil && rl.Scheme == realm.Basic {
		r.SetBasicAuth(rl.Username, rl.Password)
	}
	return n, nil
}
