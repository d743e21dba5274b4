// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package content provides HTTP message bodies along with the headers describing them.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"sync"

	"github.com/z5labs/httpbuildr/header"
	"github.com/z5labs/httpbuildr/internal/ioutil"
)

// Common media types.
const (
	MediaTypeJson = "application/json"
	MediaTypeXml  = "text/xml"
	MediaTypeText = "text/plain"
	MediaTypeForm = "application/x-www-form-urlencoded"
)

// Content is a message body and its content headers.
//
// Content created from bytes can be read any number of times. Content created
// from an [io.Reader] is drained the first time it is read and served from
// memory afterwards. Content is safe for concurrent use.
type Content struct {
	header http.Header

	mu       sync.Mutex
	src      io.Reader
	b        []byte
	buffered bool
}

// New returns Content backed by the given reader. The header is
// copied and should only contain content headers e.g. Content-Type.
func New(r io.Reader, h http.Header) *Content {
	c := &Content{
		header: cloneHeader(h),
	}
	if r == nil {
		c.buffered = true
		return c
	}
	c.src = r
	return c
}

// Raw returns Content backed by a copy of b.
func Raw(b []byte, mediaType string) *Content {
	h := make(http.Header)
	if mediaType != "" {
		h.Set(header.ContentType, mediaType)
	}
	return &Content{
		header:   h,
		b:        bytes.Clone(b),
		buffered: true,
	}
}

// FromReader returns Content backed by r with the given media type.
func FromReader(r io.Reader, mediaType string) *Content {
	h := make(http.Header)
	if mediaType != "" {
		h.Set(header.ContentType, mediaType)
	}
	return New(r, h)
}

func cloneHeader(h http.Header) http.Header {
	if h == nil {
		return make(http.Header)
	}
	return h.Clone()
}

func withCharset(mediaType, charset string) string {
	mt, params, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return mediaType
	}
	if _, ok := params["charset"]; ok {
		return mediaType
	}
	params["charset"] = charset
	return mime.FormatMediaType(mt, params)
}

// Header returns a copy of the content headers. Once the body has been
// buffered the Content-Length reflects the buffered size.
func (c *Content) Header() http.Header {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := c.header.Clone()
	if c.buffered {
		h.Set(header.ContentLength, strconv.Itoa(len(c.b)))
	}
	return h
}

// ContentType returns the raw Content-Type header value.
func (c *Content) ContentType() string {
	return c.header.Get(header.ContentType)
}

// MediaType returns the media type without any parameters.
func (c *Content) MediaType() string {
	mt, _, err := mime.ParseMediaType(c.ContentType())
	if err != nil {
		return ""
	}
	return mt
}

// Charset returns the charset parameter of the Content-Type, if any.
func (c *Content) Charset() string {
	_, params, err := mime.ParseMediaType(c.ContentType())
	if err != nil {
		return ""
	}
	return params["charset"]
}

// Length returns the size of the body in bytes. The second return value
// is false when the size is not known without reading the body.
func (c *Content) Length() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffered {
		return int64(len(c.b)), true
	}
	n, err := strconv.ParseInt(c.header.Get(header.ContentLength), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ReadError occurs when the underlying body could not be drained.
type ReadError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ReadError) Error() string {
	return fmt.Sprintf("failed to read content: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ReadError) Unwrap() error {
	return e.Cause
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (r contextReader) Read(b []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(b)
}

func (r contextReader) Close() error {
	c, ok := r.r.(io.Closer)
	if !ok {
		return nil
	}
	return c.Close()
}

func (c *Content) buffer(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffered {
		return c.b, nil
	}

	b, err := ioutil.ReadAllAndTryClose(contextReader{ctx: ctx, r: c.src})
	if err != nil {
		return nil, ReadError{Cause: err}
	}
	c.b = b
	c.src = nil
	c.buffered = true
	return c.b, nil
}

// Bytes returns a copy of the body.
func (c *Content) Bytes(ctx context.Context) ([]byte, error) {
	b, err := c.buffer(ctx)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

// String returns the body as a string.
func (c *Content) String(ctx context.Context) (string, error) {
	b, err := c.buffer(ctx)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Reader returns a fresh reader over the body. Every call returns
// a reader positioned at the start of the body.
func (c *Content) Reader(ctx context.Context) (io.Reader, error) {
	b, err := c.buffer(ctx)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// Buffer returns an independent copy of c over its fully buffered body.
func (c *Content) Buffer(ctx context.Context) (*Content, error) {
	b, err := c.buffer(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	h := c.header.Clone()
	c.mu.Unlock()

	return &Content{
		header:   h,
		b:        bytes.Clone(b),
		buffered: true,
	}, nil
}
