// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package response

import (
	"strconv"
	"time"

	"github.com/z5labs/httpbuildr/content"
	"github.com/z5labs/httpbuildr/header"
)

// WithAge sets the Age header in whole seconds.
func (r Response) WithAge(d time.Duration) Response {
	return r.set(header.Age, strconv.FormatInt(int64(d/time.Second), 10))
}

func (r Response) WithETag(etag header.EntityTag) Response {
	return r.set(header.ETag, etag.String())
}

func (r Response) WithLocation(uri string) Response {
	return r.set(header.Location, uri)
}

// WithRetryAfter sets Retry-After as a delay in whole seconds,
// replacing any date.
func (r Response) WithRetryAfter(d time.Duration) Response {
	return r.set(header.RetryAfter, strconv.FormatInt(int64(d/time.Second), 10))
}

// WithRetryAfterDate sets Retry-After as a date, replacing any delay.
func (r Response) WithRetryAfterDate(t time.Time) Response {
	return r.set(header.RetryAfter, header.FormatTime(t))
}

// WithCacheControl removes the header if cc has no directives.
func (r Response) WithCacheControl(cc header.CacheControlValue) Response {
	s := cc.String()
	if s == "" {
		return r.del(header.CacheControl)
	}
	return r.set(header.CacheControl, s)
}

func (r Response) WithConnectionClose(close bool) Response {
	if !close {
		return r.del(header.Connection)
	}
	return r.set(header.Connection, "close")
}

func (r Response) WithDate(t time.Time) Response {
	return r.set(header.Date, header.FormatTime(t))
}

func (r Response) WithTransferEncodingChunked(chunked bool) Response {
	if !chunked {
		return r.del(header.TransferEncoding)
	}
	return r.set(header.TransferEncoding, "chunked")
}

// WithContent replaces the body. A nil Content removes it.
func (r Response) WithContent(c *content.Content) Response {
	r.msg = r.msg.WithContent(c)
	return r
}

// WithJsonContent replaces the body with v encoded as JSON. An encoding
// failure is recorded and returned by [Response.Err].
func (r Response) WithJsonContent(v any, opts ...content.JsonOption) Response {
	c, err := content.Json(v, opts...)
	if err != nil {
		r.msg = r.msg.WithError(err)
		return r
	}
	return r.WithContent(c)
}

func (r Response) WithXmlContent(v any, opts ...content.XmlOption) Response {
	c, err := content.Xml(v, opts...)
	if err != nil {
		r.msg = r.msg.WithError(err)
		return r
	}
	return r.WithContent(c)
}

func (r Response) WithTextContent(text string, mediaType ...string) Response {
	return r.WithContent(content.Text(text, mediaType...))
}

func (r Response) WithFormUrlContent(pairs ...content.Pair) Response {
	return r.WithContent(content.FormUrl(pairs...))
}
