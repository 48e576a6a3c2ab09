// Package security holds the TLS settings applied to the transports of
// every httpfacade backend.
//
// # TLS Configuration
//
//	tls:
//	  ca_file: /etc/ssl/internal-ca.pem
//	  cert_file: /etc/ssl/client.pem
//	  key_file: /etc/ssl/client-key.pem
//	  min_version: "1.3"
//
// # Usage
//
//	tlsConfig, err := cfg.TLS.Build()
package security
