package component

import (
	"context"
	"errors"
	"testing"
)

type mockComponent struct {
	name      string
	startErr  error
	stopErr   error
	health    Health
	order     *[]string
	describes bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.order != nil {
		*m.order = append(*m.order, "start:"+m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.order != nil {
		*m.order = append(*m.order, "stop:"+m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health { return m.health }

type describedComponent struct{ mockComponent }

func (d *describedComponent) Describe() Description {
	return Description{Type: "http-client", Details: "backend=nethttp"}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&mockComponent{name: "api"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "api"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
	if r.Get("api") == nil || r.Get("missing") != nil {
		t.Error("unexpected lookup result")
	}
}

func TestStartStopOrder(t *testing.T) {
	r := NewRegistry()
	var order []string
	_ = r.Register(&mockComponent{name: "a", order: &order})
	_ = r.Register(&describedComponent{mockComponent{name: "b", order: &order}})
	_ = r.Register(&mockComponent{name: "c", order: &order})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := []string{"start:a", "start:b", "start:c", "stop:c", "stop:b", "stop:a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestStartAllError_StopsOnlyStarted(t *testing.T) {
	r := NewRegistry()
	var order []string
	_ = r.Register(&mockComponent{name: "a", order: &order})
	_ = r.Register(&mockComponent{name: "b", order: &order, startErr: errors.New("refused")})
	_ = r.Register(&mockComponent{name: "c", order: &order})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	order = order[:0]
	_ = r.StopAll(context.Background())
	if len(order) != 1 || order[0] != "stop:a" {
		t.Errorf("expected only a to stop, got %v", order)
	}
}

func TestStopAllJoinsErrors(t *testing.T) {
	r := NewRegistry()
	errA, errB := errors.New("a failed"), errors.New("b failed")
	_ = r.Register(&mockComponent{name: "a", stopErr: errA})
	_ = r.Register(&mockComponent{name: "b", stopErr: errB})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both errors, got %v", err)
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&mockComponent{name: "a", health: Health{Name: "a", Status: StatusHealthy}})
	_ = r.Register(&mockComponent{name: "b", health: Health{Name: "b", Status: StatusUnhealthy}})

	h := r.HealthAll(context.Background())
	if len(h) != 2 || h[0].Status != StatusHealthy || h[1].Status != StatusUnhealthy {
		t.Errorf("HealthAll() = %v", h)
	}
}
