package realm

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/kbukum/httpfacade/logger"
)

// Transport answers Digest challenges for requests whose context carries a
// Digest realm and warns about realms the engines cannot answer. Other
// requests pass through to Base unchanged.
type Transport struct {
	Base http.RoundTripper
	Log  *logger.Logger

	nc atomic.Uint32
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r, ok := FromContext(req.Context())
	if !ok {
		return t.base().RoundTrip(req)
	}
	if !r.Scheme.Answerable() {
		if t.Log != nil {
			t.Log.Warn("auth scheme not supported by engine, sending without credentials",
				logger.Fields(logger.FieldScheme, r.Scheme.String(), logger.FieldURI, req.URL.Redacted()))
		}
		return t.base().RoundTrip(req)
	}
	if r.Scheme != Digest {
		return t.base().RoundTrip(req)
	}

	resp, err := t.base().RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	ch, ok := parseChallenge(resp.Header.Values("WWW-Authenticate"))
	if !ok {
		return resp, nil
	}
	if r.Name != "" && ch.realm != r.Name {
		return resp, nil
	}
	if req.Body != nil && req.GetBody == nil {
		// body already consumed and cannot be replayed
		return resp, nil
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return resp, nil
		}
		retry.Body = body
	}
	auth, err := ch.authorize(r, req.Method, req.URL.RequestURI(), t.nc.Add(1))
	if err != nil {
		return resp, nil
	}
	drain(resp)
	retry.Header.Set("Authorization", auth)
	return t.base().RoundTrip(retry)
}

// CloseIdleConnections forwards to the base transport.
func (t *Transport) CloseIdleConnections() {
	type closeIdler interface{ CloseIdleConnections() }
	if c, ok := t.base().(closeIdler); ok {
		c.CloseIdleConnections()
	}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

type challenge struct {
	realm     string
	nonce     string
	opaque    string
	algorithm string
	qop       string
}

// parseChallenge picks the first Digest challenge among the header values.
func parseChallenge(values []string) (challenge, bool) {
	for _, v := range values {
		scheme, rest, _ := strings.Cut(strings.TrimSpace(v), " ")
		if !strings.EqualFold(scheme, "Digest") {
			continue
		}
		params := parseParams(rest)
		ch := challenge{
			realm:     params["realm"],
			nonce:     params["nonce"],
			opaque:    params["opaque"],
			algorithm: params["algorithm"],
			qop:       params["qop"],
		}
		if ch.nonce == "" {
			continue
		}
		return ch, true
	}
	return challenge{}, false
}

func parseParams(s string) map[string]string {
	params := make(map[string]string)
	for len(s) > 0 {
		s = strings.TrimLeft(s, " ,")
		key, rest, ok := strings.Cut(s, "=")
		if !ok {
			break
		}
		key = strings.ToLower(strings.TrimSpace(key))
		var val string
		if strings.HasPrefix(rest, `"`) {
			end := strings.Index(rest[1:], `"`)
			if end < 0 {
				val, s = rest[1:], ""
			} else {
				val, s = rest[1:end+1], rest[end+2:]
			}
		} else {
			val, s, _ = strings.Cut(rest, ",")
			val = strings.TrimSpace(val)
		}
		params[key] = val
	}
	return params
}

func (c challenge) hasher() (func() hash.Hash, bool) {
	switch strings.ToUpper(c.algorithm) {
	case "", "MD5":
		return md5.New, true
	case "SHA-256":
		return sha256.New, true
	default:
		return nil, false
	}
}

func (c challenge) authorize(r *Realm, method, uri string, nc uint32) (string, error) {
	newHash, ok := c.hasher()
	if !ok {
		return "", fmt.Errorf("realm: unsupported digest algorithm %q", c.algorithm)
	}
	h := func(s string) string {
		sum := newHash()
		_, _ = io.WriteString(sum, s)
		return hex.EncodeToString(sum.Sum(nil))
	}

	ha1 := h(r.Username + ":" + c.realm + ":" + r.Password)
	ha2 := h(method + ":" + uri)

	var b strings.Builder
	fmt.Fprintf(&b, `Digest username="%s", realm="%s", nonce="%s", uri="%s"`, r.Username, c.realm, c.nonce, uri)

	if hasQOPAuth(c.qop) {
		cnonce, err := cnonceFunc()
		if err != nil {
			return "", err
		}
		ncs := fmt.Sprintf("%08x", nc)
		resp := h(ha1 + ":" + c.nonce + ":" + ncs + ":" + cnonce + ":auth:" + ha2)
		fmt.Fprintf(&b, `, qop=auth, nc=%s, cnonce="%s", response="%s"`, ncs, cnonce, resp)
	} else {
		fmt.Fprintf(&b, `, response="%s"`, h(ha1+":"+c.nonce+":"+ha2))
	}
	if c.algorithm != "" {
		fmt.Fprintf(&b, ", algorithm=%s", c.algorithm)
	}
	if c.opaque != "" {
		fmt.Fprintf(&b, `, opaque="%s"`, c.opaque)
	}
	return b.String(), nil
}

func hasQOPAuth(qop string) bool {
	for _, q := range strings.Split(qop, ",") {
		if strings.TrimSpace(q) == "auth" {
			return true
		}
	}
	return false
}

var cnonceFunc = newCnonce

func newCnonce() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
