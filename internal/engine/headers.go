package engine

import (
	"net/http"
	"sort"

	"github.com/kbukum/httpfacade/model"
)

// AllHeaders flattens h into neutral headers ordered by canonical name,
// keeping the received order of repeated values.
func AllHeaders(h http.Header) []model.Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.Header, 0, len(h))
	for _, name := range names {
		for _, v := range h[name] {
			out = append(out, model.Header{Name: name, Value: v})
		}
	}
	return out
}

// HeaderValues returns the values of name in received order.
func HeaderValues(h http.Header, name string) []model.Header {
	vals := h.Values(name)
	if len(vals) == 0 {
		return nil
	}
	key := http.CanonicalHeaderKey(name)
	out := make([]model.Header, len(vals))
	for i, v := range vals {
		out[i] = model.Header{Name: key, Value: v}
	}
	return out
}

// FirstHeader returns the first value of name.
func FirstHeader(h http.Header, name string) (model.Header, bool) {
	vals := h.Values(name)
	if len(vals) == 0 {
		return model.Header{}, false
	}
	return model.Header{Name: http.CanonicalHeaderKey(name), Value: vals[0]}, true
}

// LastHeader returns the last value of name.
func LastHeader(h http.Header, name string) (model.Header, bool) {
	vals := h.Values(name)
	if len(vals) == 0 {
		return model.Header{}, false
	}
	return model.Header{Name: http.CanonicalHeaderKey(name), Value: vals[len(vals)-1]}, true
}

// ApplyDefaultHeaders sets each default that h does not already carry.
func ApplyDefaultHeaders(h http.Header, defaults map[string]string) {
	for name, value := range defaults {
		if _, ok := h[http.CanonicalHeaderKey(name)]; !ok {
			h.Set(name, value)
		}
	}
}
