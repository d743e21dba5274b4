// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SerializationError occurs when a value could not be encoded into a body.
type SerializationError struct {
	Format string
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize %s content: %s", e.Format, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e SerializationError) Unwrap() error {
	return e.Cause
}

type jsonOptions struct {
	mediaType  string
	prefix     string
	indent     string
	escapeHTML bool
}

// JsonOption configures how [Json] encodes a value.
type JsonOption interface {
	ApplyJson(*jsonOptions)
}

type jsonOptionFunc func(*jsonOptions)

func (f jsonOptionFunc) ApplyJson(jo *jsonOptions) {
	f(jo)
}

// JsonMediaType overrides the default application/json media type.
func JsonMediaType(mediaType string) JsonOption {
	return jsonOptionFunc(func(jo *jsonOptions) {
		jo.mediaType = mediaType
	})
}

// JsonIndent pretty prints the encoded value.
func JsonIndent(prefix, indent string) JsonOption {
	return jsonOptionFunc(func(jo *jsonOptions) {
		jo.prefix = prefix
		jo.indent = indent
	})
}

// JsonEscapeHTML controls whether <, > and & are escaped inside strings.
// It defaults to true.
func JsonEscapeHTML(b bool) JsonOption {
	return jsonOptionFunc(func(jo *jsonOptions) {
		jo.escapeHTML = b
	})
}

// Json encodes v as a UTF-8 JSON body.
func Json(v any, opts ...JsonOption) (*Content, error) {
	jo := &jsonOptions{
		mediaType:  MediaTypeJson,
		escapeHTML: true,
	}
	for _, opt := range opts {
		opt.ApplyJson(jo)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(jo.escapeHTML)
	if jo.prefix != "" || jo.indent != "" {
		enc.SetIndent(jo.prefix, jo.indent)
	}

	err := enc.Encode(v)
	if err != nil {
		return nil, SerializationError{Format: "json", Cause: err}
	}

	b := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return Raw(b, withCharset(jo.mediaType, "utf-8")), nil
}
