// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package request

import (
	"strconv"
	"time"

	"github.com/z5labs/httpbuildr/header"
)

// The mutators below replace any existing value of their header
// instead of appending to it.

func (r Request) WithAuthorization(auth header.Authentication) Request {
	return r.set(header.Authorization, auth.String())
}

func (r Request) WithBearerToken(token string) Request {
	return r.WithAuthorization(header.Bearer(token))
}

// WithBasicToken sets an already encoded basic credential.
func (r Request) WithBasicToken(token string) Request {
	return r.WithAuthorization(header.Basic(token))
}

// WithBasicAuth encodes the credentials as a basic Authorization header.
func (r Request) WithBasicAuth(user, password string) Request {
	return r.WithAuthorization(header.BasicAuth(user, password))
}

func (r Request) WithProxyAuthorization(auth header.Authentication) Request {
	return r.set(header.ProxyAuthorization, auth.String())
}

// WithCacheControl removes the header if cc has no directives.
func (r Request) WithCacheControl(cc header.CacheControlValue) Request {
	s := cc.String()
	if s == "" {
		return r.del(header.CacheControl)
	}
	return r.set(header.CacheControl, s)
}

// WithConnectionClose sets "Connection: close" or removes the header.
func (r Request) WithConnectionClose(close bool) Request {
	if !close {
		return r.del(header.Connection)
	}
	return r.set(header.Connection, "close")
}

func (r Request) WithDate(t time.Time) Request {
	return r.set(header.Date, header.FormatTime(t))
}

// WithAccept sets the Accept header without a quality parameter.
func (r Request) WithAccept(mediaType string) Request {
	return r.set(header.Accept, header.Media(mediaType).String())
}

// WithAcceptQuality sets the Accept header with an explicit quality, even if it is 1.
func (r Request) WithAcceptQuality(mediaType string, q float64) Request {
	return r.set(header.Accept, header.MediaWithQuality(mediaType, q).String())
}

func (r Request) WithIfModifiedSince(t time.Time) Request {
	return r.set(header.IfModifiedSince, header.FormatTime(t))
}

// WithIfRangeDate sets If-Range to a date, replacing any entity tag.
func (r Request) WithIfRangeDate(t time.Time) Request {
	return r.set(header.IfRange, header.FormatTime(t))
}

// WithIfRangeETag sets If-Range to an entity tag, replacing any date.
func (r Request) WithIfRangeETag(etag header.EntityTag) Request {
	return r.set(header.IfRange, etag.String())
}

func (r Request) WithIfUnmodifiedSince(t time.Time) Request {
	return r.set(header.IfUnmodifiedSince, header.FormatTime(t))
}

func (r Request) WithMaxForwards(n int) Request {
	return r.set(header.MaxForwards, strconv.Itoa(n))
}

func (r Request) WithRange(rng header.RangeValue) Request {
	return r.set(header.Range, rng.String())
}

func (r Request) WithReferrer(uri string) Request {
	return r.set(header.Referer, uri)
}

// WithTransferEncodingChunked sets "Transfer-Encoding: chunked" or removes the header.
func (r Request) WithTransferEncodingChunked(chunked bool) Request {
	if !chunked {
		return r.del(header.TransferEncoding)
	}
	return r.set(header.TransferEncoding, "chunked")
}
