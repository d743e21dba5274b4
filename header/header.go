// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package header provides typed values for the standard HTTP headers
// set by the request and response builders.
package header

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/http/httpguts"
)

// Canonical names of the headers the builders know about.
const (
	Accept             = "Accept"
	AcceptCharset      = "Accept-Charset"
	Age                = "Age"
	Authorization      = "Authorization"
	CacheControl       = "Cache-Control"
	Connection         = "Connection"
	ContentLength      = "Content-Length"
	ContentType        = "Content-Type"
	Date               = "Date"
	ETag               = "Etag"
	IfModifiedSince    = "If-Modified-Since"
	IfRange            = "If-Range"
	IfUnmodifiedSince  = "If-Unmodified-Since"
	Location           = "Location"
	MaxForwards        = "Max-Forwards"
	ProxyAuthorization = "Proxy-Authorization"
	Range              = "Range"
	Referer            = "Referer"
	RetryAfter         = "Retry-After"
	SetCookie          = "Set-Cookie"
	TransferEncoding   = "Transfer-Encoding"
)

// FormatTime renders t as a HTTP date, always in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// ParseTime parses a HTTP date in any of the formats allowed by RFC 9110.
func ParseTime(s string) (time.Time, error) {
	return http.ParseTime(s)
}

// ValidName reports whether name is a valid header field name.
func ValidName(name string) bool {
	return httpguts.ValidHeaderFieldName(name)
}

// ValidValue reports whether value is a valid header field value.
func ValidValue(value string) bool {
	return httpguts.ValidHeaderFieldValue(value)
}

// IsContentHeader reports whether the header describes a message body
// rather than the message itself.
func IsContentHeader(name string) bool {
	switch http.CanonicalHeaderKey(name) {
	case ContentType, ContentLength, "Content-Encoding", "Content-Language",
		"Content-Location", "Content-Md5", "Content-Range", "Content-Disposition",
		"Expires", "Last-Modified", "Allow":
		return true
	default:
		return false
	}
}

// InvalidHeaderError occurs when a header name or value can not be
// represented on the wire.
type InvalidHeaderError struct {
	Name  string
	Value string
}

// Error implements the [builtin.error] interface.
func (e InvalidHeaderError) Error() string {
	if !ValidName(e.Name) {
		return fmt.Sprintf("invalid header name: %q", e.Name)
	}
	return fmt.Sprintf("invalid value for header %s: %q", e.Name, e.Value)
}
