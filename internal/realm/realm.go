// Package realm turns neutral credentials into the authentication realm
// attached to a single request, and answers Digest challenges for it.
package realm

import (
	"context"
	"strings"

	"github.com/kbukum/httpfacade/model"
)

// Scheme is an authentication scheme known to the backends.
type Scheme int

const (
	Basic Scheme = iota
	Digest
	NTLM
	SPNEGO
	Kerberos
)

var schemeNames = map[Scheme]string{
	Basic:    model.AuthSchemeBasic,
	Digest:   model.AuthSchemeDigest,
	NTLM:     model.AuthSchemeNTLM,
	SPNEGO:   model.AuthSchemeSPNEGO,
	Kerberos: model.AuthSchemeKerberos,
}

var schemesByName = map[string]Scheme{
	model.AuthSchemeBasic:    Basic,
	model.AuthSchemeDigest:   Digest,
	model.AuthSchemeNTLM:     NTLM,
	model.AuthSchemeSPNEGO:   SPNEGO,
	model.AuthSchemeKerberos: Kerberos,
}

// String returns the upper-case scheme name.
func (s Scheme) String() string {
	if n, ok := schemeNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// Answerable reports whether the Go engines can produce credentials for
// the scheme. NTLM, SPNEGO and Kerberos need engine support that neither
// backend has.
func (s Scheme) Answerable() bool {
	return s == Basic || s == Digest
}

// SchemeFor maps a scheme name case-insensitively. Empty and unknown names
// map to Basic.
func SchemeFor(name string) Scheme {
	if s, ok := schemesByName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return s
	}
	return Basic
}

// Realm is the authentication attached to one request.
type Realm struct {
	Scheme   Scheme
	Username string
	Password string
	Domain   string
	// Name is the realm name from the scope. Empty matches any realm.
	Name string
}

// Build creates one realm per credentials entry, in order.
func Build(entries []model.ScopedCredentials) []Realm {
	realms := make([]Realm, 0, len(entries))
	for _, e := range entries {
		realms = append(realms, Realm{
			Scheme:   SchemeFor(e.Scope.Scheme),
			Username: e.Credentials.Username,
			Password: e.Credentials.Password,
			Domain:   e.Credentials.Domain,
			Name:     e.Scope.Realm,
		})
	}
	return realms
}

// FromProvider builds realms for every entry of cp and returns the first.
// It returns nil when cp is nil or empty. The remaining realms are
// discarded.
func FromProvider(cp model.CredentialsProvider) *Realm {
	if cp == nil {
		return nil
	}
	realms := Build(cp.Credentials())
	if len(realms) == 0 {
		return nil
	}
	return &realms[0]
}

type contextKey struct{}

// NewContext returns a context carrying r.
func NewContext(ctx context.Context, r *Realm) context.Context {
	if r == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the realm carried by ctx.
func FromContext(ctx context.Context) (*Realm, bool) {
	r, ok := ctx.Value(contextKey{}).(*Realm)
	return r, ok && r != nil
}
