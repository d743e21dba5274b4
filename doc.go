// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package httpbuildr provides fluent, immutable builders for HTTP request and
// response messages along with a typed error pipeline for sending them.
//
// The module is split into a handful of small packages:
//
//   - request and response: message values whose With* methods always return
//     a new message, leaving any previously returned message untouched
//   - content: message bodies produced by a single codec (json, xml, text or form)
//   - header: typed values for the standard headers the builders set
//   - actionresult: renders a response through a [net/http.ResponseWriter]
//   - httpclient: a http.Client with retries, a circuit breaker and rate limiting
//   - httpruntime: resolves named clients and classifies call outcomes into a
//     closed set of error kinds
//
// # Building a request
//
//	req := request.To(http.MethodPost, "https://example.com/posts").
//	    WithBearerToken(token).
//	    WithJsonData(post)
//
// # Cloning
//
// Clone fully buffers the message body so the original and its clone can be
// mutated and read independently:
//
//	clone, err := req.Clone(ctx)
//
// # Calling a named client
//
//	rt, err := httpruntime.New(httpruntime.NewRegistry(
//	    httpruntime.WithHttpClient("blogs", httpclient.Timeout(5*time.Second)),
//	))
//	if err != nil {
//	    return err
//	}
//	ctx = httpruntime.NewContext(ctx, rt)
//
//	post, err := httpruntime.GetJson[Post](ctx, "blogs", "https://example.com/posts/1")
package httpbuildr
