package model

import (
	"strings"
	"sync"
)

// Authentication scheme names understood by the backends. Matching is
// case-insensitive.
const (
	AuthSchemeBasic    = "BASIC"
	AuthSchemeDigest   = "DIGEST"
	AuthSchemeNTLM     = "NTLM"
	AuthSchemeSPNEGO   = "SPNEGO"
	AuthSchemeKerberos = "KERBEROS"
)

// AnyHost, AnyPort and AnyRealm widen an AuthScope.
const (
	AnyHost  = ""
	AnyPort  = -1
	AnyRealm = ""
)

// AuthScope identifies where a set of credentials applies.
type AuthScope struct {
	Host   string
	Port   int
	Realm  string
	Scheme string
}

// NewAuthScope creates a scope for the given realm and scheme on any host.
func NewAuthScope(realm, scheme string) AuthScope {
	return AuthScope{Host: AnyHost, Port: AnyPort, Realm: realm, Scheme: scheme}
}

// Key returns the scheme and realm identifying the scope.
func (s AuthScope) Key() string {
	return strings.ToUpper(s.Scheme) + "/" + s.Realm
}

// Credentials is a principal and password pair. Domain is used by NTLM.
type Credentials struct {
	Username string
	Password string
	Domain   string
}

// ScopedCredentials binds credentials to a scope.
type ScopedCredentials struct {
	Scope       AuthScope
	Credentials Credentials
}

// CredentialsProvider supplies credentials in a stable order.
type CredentialsProvider interface {
	Credentials() []ScopedCredentials
}

// BasicCredentialsProvider is an in-memory provider that keeps entries in
// insertion order. Setting an existing scope replaces its credentials in
// place.
type BasicCredentialsProvider struct {
	mu      sync.RWMutex
	entries []ScopedCredentials
}

// NewBasicCredentialsProvider creates an empty provider.
func NewBasicCredentialsProvider() *BasicCredentialsProvider {
	return &BasicCredentialsProvider{}
}

// SetCredentials stores creds for scope.
func (p *BasicCredentialsProvider) SetCredentials(scope AuthScope, creds Credentials) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.entries {
		if p.entries[i].Scope == scope {
			p.entries[i].Credentials = creds
			return
		}
	}
	p.entries = append(p.entries, ScopedCredentials{Scope: scope, Credentials: creds})
}

// Credentials returns a copy of the stored entries.
func (p *BasicCredentialsProvider) Credentials() []ScopedCredentials {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]ScopedCredentials, len(p.entries))
	copy(out, p.entries)
	return out
}

// Clear removes all entries.
func (p *BasicCredentialsProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = nil
}
