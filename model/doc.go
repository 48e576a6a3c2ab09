// Package model defines the engine-neutral HTTP types shared by every
// httpfacade backend: hosts, requests with their body variants and
// multipart parts, per-call client context (timeouts, proxy, credentials)
// and the read-only response view.
//
// Backends translate these types into their engine's native request and
// wrap the engine's response behind Response. Nothing in this package
// performs I/O.
//
// # Usage
//
//	host := model.Host{Scheme: "https", Hostname: "api.example.com", Port: 443}
//	req := model.NewRequest(http.MethodPost, "/v1/upload",
//	    model.WithHeader("X-Trace", "abc"),
//	    model.WithParts(
//	        model.NewStringPart("title", "report"),
//	        model.NewFilePart("file", "/tmp/report.pdf"),
//	    ),
//	)
package model
