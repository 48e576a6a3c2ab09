package realm

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kbukum/httpfacade/logger"
)

func TestAuthorize_RFC2617Vector(t *testing.T) {
	orig := cnonceFunc
	cnonceFunc = func() (string, error) { return "0a4f113b", nil }
	defer func() { cnonceFunc = orig }()

	ch := challenge{
		realm:  "testrealm@host.com",
		nonce:  "dcd98b7102dd2f0e8b11d0f600bfb0c093",
		opaque: "5ccc069c403ebaf9f0171e9517f40e41",
		qop:    "auth,auth-int",
	}
	r := &Realm{Scheme: Digest, Username: "Mufasa", Password: "Circle Of Life"}
	got, err := ch.authorize(r, http.MethodGet, "/dir/index.html", 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`username="Mufasa"`,
		`nc=00000001`,
		`cnonce="0a4f113b"`,
		`response="6629fae49393a05397450978507c4ef1"`,
		`opaque="5ccc069c403ebaf9f0171e9517f40e41"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("header %q missing %q", got, want)
		}
	}
}

func TestAuthorize_UnsupportedAlgorithm(t *testing.T) {
	ch := challenge{realm: "r", nonce: "n", algorithm: "SHA-512-256"}
	if _, err := ch.authorize(&Realm{}, http.MethodGet, "/", 1); err == nil {
		t.Error("expected error")
	}
}

func TestParseChallenge(t *testing.T) {
	ch, ok := parseChallenge([]string{
		`Basic realm="b"`,
		`Digest realm="api, v1", qop="auth", nonce="abc", algorithm=SHA-256, opaque="xyz"`,
	})
	if !ok {
		t.Fatal("expected digest challenge")
	}
	if ch.realm != "api, v1" || ch.nonce != "abc" || ch.algorithm != "SHA-256" || ch.opaque != "xyz" || ch.qop != "auth" {
		t.Errorf("parsed %+v", ch)
	}
	if _, ok := parseChallenge([]string{`Basic realm="b"`}); ok {
		t.Error("basic challenge should not parse as digest")
	}
}

// digestServer answers 401 with a digest challenge until a request carries
// an Authorization header whose MD5 response checks out.
func digestServer(t *testing.T, user, pass string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	const realmName, nonce = "files", "n0nce"
	md5hex := func(s string) string {
		sum := md5.Sum([]byte(s))
		return hex.EncodeToString(sum[:])
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, _ := io.ReadAll(r.Body)
		auth := r.Header.Get("Authorization")
		if auth == "" {
			w.Header().Set("WWW-Authenticate", `Digest realm="`+realmName+`", qop="auth", nonce="`+nonce+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		p := parseParams(strings.TrimPrefix(auth, "Digest "))
		ha1 := md5hex(user + ":" + realmName + ":" + pass)
		ha2 := md5hex(r.Method + ":" + p["uri"])
		want := md5hex(ha1 + ":" + nonce + ":" + p["nc"] + ":" + p["cnonce"] + ":auth:" + ha2)
		if p["response"] != want || p["uri"] != r.URL.RequestURI() {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write(body)
	}))
}

func TestTransport_DigestRoundTrip(t *testing.T) {
	var hits atomic.Int32
	srv := digestServer(t, "alice", "secret", &hits)
	defer srv.Close()

	client := &http.Client{Transport: &Transport{}}
	ctx := NewContext(context.Background(), &Realm{Scheme: Digest, Username: "alice", Password: "secret"})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/upload?x=1", bytes.NewReader([]byte("payload")))

	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if string(body) != "payload" {
		t.Errorf("body was not replayed, got %q", body)
	}
	if hits.Load() != 2 {
		t.Errorf("expected challenge plus retry, got %d hits", hits.Load())
	}
}

func TestTransport_WrongPassword(t *testing.T) {
	var hits atomic.Int32
	srv := digestServer(t, "alice", "secret", &hits)
	defer srv.Close()

	client := &http.Client{Transport: &Transport{}}
	ctx := NewContext(context.Background(), &Realm{Scheme: Digest, Username: "alice", Password: "wrong"})
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/", nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestTransport_RealmNameMismatch(t *testing.T) {
	var hits atomic.Int32
	srv := digestServer(t, "alice", "secret", &hits)
	defer srv.Close()

	client := &http.Client{Transport: &Transport{}}
	ctx := NewContext(context.Background(), &Realm{Scheme: Digest, Username: "alice", Password: "secret", Name: "other"})
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/", nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized || hits.Load() != 1 {
		t.Errorf("status = %d hits = %d", resp.StatusCode, hits.Load())
	}
}

func TestTransport_UnsupportedSchemeWarns(t *testing.T) {
	var seen atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	log := logger.FromZerolog(zerolog.New(&buf))
	client := &http.Client{Transport: &Transport{Log: log}}
	ctx := NewContext(context.Background(), &Realm{Scheme: NTLM, Username: "u", Password: "p", Domain: "CORP"})
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/", nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if v, _ := seen.Load().(string); v != "" {
		t.Errorf("expected no credentials, got %q", v)
	}
	if !strings.Contains(buf.String(), `"scheme":"NTLM"`) || !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected warning, got %q", buf.String())
	}
}
