// Package nethttp is the httpfacade backend built on net/http.
//
// Importing the package registers it under the name "nethttp":
//
//	import _ "github.com/kbukum/httpfacade/nethttp"
//
//	client, err := httpfacade.NewAsyncClient(httpfacade.Config{Backend: "nethttp"})
//
// Requests are translated into *http.Request values on the caller's
// goroutine and executed by a bounded dispatcher. Multipart bodies are
// streamed with mime/multipart, so every part keeps its Content-Type,
// Content-Transfer-Encoding and Content-ID headers.
package nethttp
