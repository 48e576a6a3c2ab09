// Package httpfacade puts several HTTP engines behind one neutral request
// and response model so calling code can switch engines without changing
// call sites.
//
// A backend package registers itself on import. The resty backend wraps
// go-resty; the nethttp backend wraps net/http.
//
// # Usage
//
//	import (
//	    "github.com/kbukum/httpfacade"
//	    "github.com/kbukum/httpfacade/model"
//	    _ "github.com/kbukum/httpfacade/restyclient"
//	)
//
//	client, err := httpfacade.NewAsyncClient(httpfacade.Config{Backend: "resty"})
//	defer client.Close()
//
//	host := model.NewHost("https", "api.example.com", 443)
//	f, err := client.Execute(ctx, host, model.NewRequest("GET", "/v1/items"))
//	resp, err := f.Await(ctx)
//
// Per-call timeouts, a proxy and credentials travel in a model.ClientContext
// passed to ExecuteWith.
package httpfacade
