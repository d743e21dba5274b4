// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package response provides an immutable builder for HTTP responses.
package response

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/z5labs/httpbuildr"
	"github.com/z5labs/httpbuildr/content"
	"github.com/z5labs/httpbuildr/header"
	"github.com/z5labs/httpbuildr/internal/message"
	"github.com/z5labs/httpbuildr/request"
)

// Response is an immutable HTTP response. Every With method returns a
// new Response and leaves the receiver untouched.
type Response struct {
	status int
	reason string

	// req is informational only and never sent or cloned deeply.
	req *request.Request

	msg message.Base
}

// Result creates a Response without headers or body using [httpbuildr.DefaultVersion].
func Result(statusCode int) Response {
	return Response{
		status: statusCode,
		msg:    message.New(),
	}
}

// FromHTTP converts a transport response. Content headers are moved onto
// the [content.Content] and the body is only read once it is needed.
func FromHTTP(resp *http.Response) Response {
	r := Result(resp.StatusCode)
	if _, reason, ok := strings.Cut(resp.Status, " "); ok {
		r.reason = reason
	}
	if resp.ProtoMajor > 0 {
		r.msg = r.msg.WithVersion(httpbuildr.Version{Major: resp.ProtoMajor, Minor: resp.ProtoMinor})
	}

	contentHeader := make(http.Header)
	r.msg = r.msg.Modify(func(h http.Header) {
		for name, values := range resp.Header {
			if header.IsContentHeader(name) {
				contentHeader[name] = append([]string(nil), values...)
				continue
			}
			h[name] = append([]string(nil), values...)
		}
	})
	if contentHeader.Get(header.ContentLength) == "" && resp.ContentLength >= 0 {
		contentHeader.Set(header.ContentLength, strconv.FormatInt(resp.ContentLength, 10))
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		r.msg = r.msg.WithContent(content.New(nil, contentHeader))
		return r
	}
	r.msg = r.msg.WithContent(content.New(resp.Body, contentHeader))
	return r
}

func (r Response) StatusCode() int {
	return r.status
}

// ReasonPhrase returns the explicit reason phrase or the standard text for the status code.
func (r Response) ReasonPhrase() string {
	if r.reason != "" {
		return r.reason
	}
	return http.StatusText(r.status)
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r Response) IsSuccess() bool {
	return r.status >= 200 && r.status <= 299
}

// Request returns the request which produced this response, if it was set.
func (r Response) Request() (request.Request, bool) {
	if r.req == nil {
		return request.Request{}, false
	}
	return *r.req, true
}

func (r Response) Version() httpbuildr.Version {
	return r.msg.Version()
}

// Header returns a copy of the message headers.
func (r Response) Header() http.Header {
	return r.msg.Header()
}

func (r Response) Content() *content.Content {
	return r.msg.Content()
}

// Err returns every error recorded while building the response joined together.
func (r Response) Err() error {
	return r.msg.Err()
}

func (r Response) WithReasonPhrase(reason string) Response {
	r.reason = reason
	return r
}

func (r Response) WithRequest(req request.Request) Response {
	r.req = &req
	return r
}

func (r Response) WithVersion(v httpbuildr.Version) Response {
	r.msg = r.msg.WithVersion(v)
	return r
}

// WithHeader appends values to the named header. An invalid name or value
// is recorded as a [header.InvalidHeaderError] and nothing is added.
func (r Response) WithHeader(name string, values ...string) Response {
	r.msg = r.msg.Add(name, values...)
	return r
}

// WithHeaderModifications hands f a private copy of the headers for bulk edits.
func (r Response) WithHeaderModifications(f func(http.Header)) Response {
	r.msg = r.msg.Modify(f)
	return r
}

func (r Response) set(name, value string) Response {
	r.msg = r.msg.Set(name, value)
	return r
}

func (r Response) del(name string) Response {
	r.msg = r.msg.Del(name)
	return r
}

// MergedHeader returns the message headers combined with the content headers.
func (r Response) MergedHeader() http.Header {
	return r.msg.MergedHeader()
}

// Clone returns an independent copy of r with a fully buffered body.
// The clone refers to the same originating request.
func (r Response) Clone(ctx context.Context) (Response, error) {
	msg, err := r.msg.Clone(ctx)
	if err != nil {
		return Response{}, err
	}
	return Response{
		status: r.status,
		reason: r.reason,
		req:    r.req,
		msg:    msg,
	}, nil
}
