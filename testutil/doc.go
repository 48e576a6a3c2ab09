// Package testutil provides an echo server for exercising httpfacade
// backends end to end.
//
// The server is built on gin and answers every request with a JSON Echo
// describing what it received: method, request URI, headers, body,
// multipart parts and the Authorization header. It can demand Basic or
// Digest credentials, and it acts as a forward proxy target because it
// records absolute-form request URLs as sent.
//
// Query parameters on the request steer the reply:
//
//	?status=404               respond with the given status code
//	?header=X-Trace:abc       add a response header (repeatable)
//	?delay=200ms              wait before answering
//
// # Usage
//
//	srv := testutil.NewEchoServer(t, testutil.WithDigest("files", "alice", "secret"))
//	resp, _ := client.Do(ctx, srv.Host(), model.NewRequest("GET", "/x"))
//	echo := testutil.DecodeEcho(t, resp.BodyBytes())
package testutil
