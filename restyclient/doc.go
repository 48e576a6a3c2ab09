// Package restyclient is the httpfacade backend built on go-resty/resty.
//
// Importing the package registers it under the name "resty":
//
//	import _ "github.com/kbukum/httpfacade/restyclient"
//
//	client, err := httpfacade.NewAsyncClient(httpfacade.Config{Backend: "resty"})
//
// Each call is translated into a *resty.Request on the caller's goroutine
// and executed by a bounded dispatcher. Multipart bodies map onto
// resty.MultipartField, which carries a field name, file name and content
// type only: per-part Content-Transfer-Encoding and Content-ID are not
// sent. Resty accepts multipart bodies on POST, PUT and PATCH only.
package restyclient
