// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package request provides an immutable builder for outgoing HTTP requests.
package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/z5labs/httpbuildr"
	"github.com/z5labs/httpbuildr/content"
	"github.com/z5labs/httpbuildr/header"
	"github.com/z5labs/httpbuildr/internal/message"
)

// Request is an immutable HTTP request. Every With method returns a new
// Request and leaves the receiver untouched, so a Request can be shared
// and extended from multiple places.
type Request struct {
	method string
	url    *url.URL
	msg    message.Base
}

// InvalidURLError occurs when the target of a request can not be parsed.
type InvalidURLError struct {
	URL   string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidURLError) Error() string {
	return fmt.Sprintf("invalid request url: %q: %s", e.URL, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidURLError) Unwrap() error {
	return e.Cause
}

// To creates a Request without headers or body using [httpbuildr.DefaultVersion].
func To(method, uri string) Request {
	r := Request{
		method: method,
		msg:    message.New(),
	}

	u, err := url.Parse(uri)
	if err != nil {
		r.msg = r.msg.WithError(InvalidURLError{URL: uri, Cause: err})
		return r
	}
	r.url = u
	return r
}

// ToURL is the same as [To] but for an already parsed URL.
func ToURL(method string, u *url.URL) Request {
	r := Request{
		method: method,
		msg:    message.New(),
	}
	if u == nil {
		r.msg = r.msg.WithError(InvalidURLError{Cause: errMissingURL})
		return r
	}
	r.url = cloneURL(u)
	return r
}

var errMissingURL = errors.New("url must not be nil")

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}

func (r Request) Method() string {
	return r.method
}

// URL returns a copy of the request target.
func (r Request) URL() *url.URL {
	return cloneURL(r.url)
}

func (r Request) Version() httpbuildr.Version {
	return r.msg.Version()
}

// Header returns a copy of the message headers. Content headers are
// available from [Request.Content].
func (r Request) Header() http.Header {
	return r.msg.Header()
}

func (r Request) Content() *content.Content {
	return r.msg.Content()
}

// Err returns every error recorded while building the request joined together.
func (r Request) Err() error {
	return r.msg.Err()
}

func (r Request) WithVersion(v httpbuildr.Version) Request {
	r.msg = r.msg.WithVersion(v)
	return r
}

// WithHeader appends values to the named header. An invalid name or value
// is recorded as a [header.InvalidHeaderError] and nothing is added.
func (r Request) WithHeader(name string, values ...string) Request {
	r.msg = r.msg.Add(name, values...)
	return r
}

// WithHeaderModifications hands f a private copy of the headers for bulk edits.
// Changes made by f are not validated.
func (r Request) WithHeaderModifications(f func(http.Header)) Request {
	r.msg = r.msg.Modify(f)
	return r
}

func (r Request) set(name, value string) Request {
	r.msg = r.msg.Set(name, value)
	return r
}

func (r Request) del(name string) Request {
	r.msg = r.msg.Del(name)
	return r
}

// Clone returns an independent copy of r. Headers are copied verbatim and
// the body is fully buffered so neither copy can drain the other.
func (r Request) Clone(ctx context.Context) (Request, error) {
	msg, err := r.msg.Clone(ctx)
	if err != nil {
		return Request{}, err
	}
	return Request{
		method: r.method,
		url:    cloneURL(r.url),
		msg:    msg,
	}, nil
}

// ToHTTP converts r into a [http.Request] bound to ctx. Any error recorded
// while building r is returned instead.
func (r Request) ToHTTP(ctx context.Context) (*http.Request, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	if r.url == nil {
		return nil, InvalidURLError{Cause: errMissingURL}
	}

	var body io.Reader
	var length int64
	if c := r.msg.Content(); c != nil {
		b, err := c.Bytes(ctx)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
		length = int64(len(b))
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url.String(), body)
	if err != nil {
		return nil, err
	}

	h := r.msg.MergedHeader()
	h.Del(header.ContentLength)
	if isChunked(h) {
		h.Del(header.TransferEncoding)
		req.TransferEncoding = []string{"chunked"}
		length = -1
	}
	if strings.EqualFold(h.Get(header.Connection), "close") {
		req.Close = true
	}
	if host := h.Get("Host"); host != "" {
		req.Host = host
		h.Del("Host")
	}

	v := r.Version()
	req.Proto = v.String()
	req.ProtoMajor = v.Major
	req.ProtoMinor = v.Minor
	req.Header = h
	if body != nil {
		req.ContentLength = length
	}
	return req, nil
}

func isChunked(h http.Header) bool {
	for _, v := range h.Values(header.TransferEncoding) {
		for _, enc := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(enc), "chunked") {
				return true
			}
		}
	}
	return false
}
