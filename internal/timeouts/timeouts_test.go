package timeouts

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func slowServer(delay time.Duration) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
}

func do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}

func TestWithDeadlines_NoTimeouts(t *testing.T) {
	parent := context.Background()
	ctx, cancel := WithDeadlines(parent, 0, 0)
	defer cancel()
	if ctx != parent {
		t.Error("expected the parent context when no timeout is set")
	}
	if _, ok := ctx.Deadline(); ok {
		t.Error("expected no deadline")
	}
}

func TestWithDeadlines_RequestTimeoutSetsDeadline(t *testing.T) {
	ctx, cancel := WithDeadlines(context.Background(), 0, time.Second)
	defer cancel()
	dl, ok := ctx.Deadline()
	if !ok || time.Until(dl) > time.Second {
		t.Errorf("unexpected deadline %v %v", dl, ok)
	}
}

func TestWithDeadlines_ReadTimeoutFires(t *testing.T) {
	srv := slowServer(500 * time.Millisecond)
	defer srv.Close()

	ctx, cancel := WithDeadlines(context.Background(), 50*time.Millisecond, 0)
	defer cancel()

	_, err := do(ctx, srv.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(Cause(ctx), ErrReadTimeout) {
		t.Errorf("Cause() = %v, want ErrReadTimeout", Cause(ctx))
	}
}

func TestWithDeadlines_RequestTimeoutFires(t *testing.T) {
	srv := slowServer(500 * time.Millisecond)
	defer srv.Close()

	ctx, cancel := WithDeadlines(context.Background(), 0, 50*time.Millisecond)
	defer cancel()

	_, err := do(ctx, srv.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if errors.Is(Cause(ctx), ErrReadTimeout) {
		t.Error("request timeout must not report a read timeout")
	}
}

func TestWithDeadlines_ReadTimeoutStopsAtFirstByte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		time.Sleep(150 * time.Millisecond)
		_, _ = io.WriteString(w, "late body")
	}))
	defer srv.Close()

	ctx, cancel := WithDeadlines(context.Background(), 50*time.Millisecond, 0)
	defer cancel()

	resp, err := do(ctx, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("body read failed after first byte: %v", err)
	}
	if string(body) != "late body" {
		t.Errorf("body = %q", body)
	}
}

func TestWithDeadlines_CancelIsIdempotent(t *testing.T) {
	ctx, cancel := WithDeadlines(context.Background(), time.Second, time.Second)
	cancel()
	cancel()
	if ctx.Err() == nil {
		t.Error("expected cancelled context")
	}
	if errors.Is(Cause(ctx), ErrReadTimeout) {
		t.Error("explicit cancel is not a read timeout")
	}
}
