// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package slogfield standardizes the attribute keys used when logging HTTP calls.
package slogfield

import (
	"log/slog"
	"net/http"
	"time"
)

// Error returns an slog.Attr for a error.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// String returns an slog.Attr for a string.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an slog.Attr for a int.
func Int(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Duration returns an slog.Attr for a time.Duration.
func Duration(key string, d time.Duration) slog.Attr {
	return slog.Duration(key, d)
}

// Client names the registered client a call went through.
func Client(name string) slog.Attr {
	return slog.String("http_client", name)
}

// CallID identifies a single pipeline invocation.
func CallID(id string) slog.Attr {
	return slog.String("call_id", id)
}

func Method(method string) slog.Attr {
	return slog.String("http_method", method)
}

func URL(url string) slog.Attr {
	return slog.String("http_url", url)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("http_status_code", code)
}

// ErrorCode is the numeric kind of a failed pipeline invocation.
func ErrorCode(code int) slog.Attr {
	return slog.Int("error_code", code)
}

// Elapsed returns the time taken by a call.
func Elapsed(d time.Duration) slog.Attr {
	return slog.Duration("elapsed", d)
}

// HeaderKey is the attribute key used by [Header]. Handlers which mask
// secrets should match on it.
const HeaderKey = "http_header"

// Header returns an slog.Attr grouping every header value by name.
// Multiple values are joined in the order they were added.
func Header(h http.Header) slog.Attr {
	attrs := make([]any, 0, len(h))
	for name, values := range h {
		if len(values) == 1 {
			attrs = append(attrs, slog.String(name, values[0]))
			continue
		}
		attrs = append(attrs, slog.Any(name, values))
	}
	return slog.Group(HeaderKey, attrs...)
}
