package model

import "strconv"

// Host identifies the target server of a request.
type Host struct {
	// Scheme is the URI scheme, "http" or "https".
	Scheme string `validate:"required,oneof=http https"`
	// Hostname is a DNS name or IP address.
	Hostname string `validate:"required"`
	// Port is always written into the request URI, even when it is the
	// scheme's default.
	Port int `validate:"min=1,max=65535"`
}

// NewHost creates a Host.
func NewHost(scheme, hostname string, port int) Host {
	return Host{Scheme: scheme, Hostname: hostname, Port: port}
}

// URI returns scheme://hostname:port.
func (h Host) URI() string {
	return h.Scheme + "://" + h.Hostname + ":" + strconv.Itoa(h.Port)
}

// Address returns hostname:port.
func (h Host) Address() string {
	return h.Hostname + ":" + strconv.Itoa(h.Port)
}

// String implements fmt.Stringer.
func (h Host) String() string {
	return h.URI()
}
