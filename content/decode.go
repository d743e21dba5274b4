// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
)

// ErrEmptyBody is returned when decoding content without a body.
var ErrEmptyBody = errors.New("content: empty body")

// DecodeError occurs when a body could not be decoded into a value.
type DecodeError struct {
	Format string
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s content: %s", e.Format, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e DecodeError) Unwrap() error {
	return e.Cause
}

type decodeOptions struct {
	strict bool
}

// DecodeOption configures decoding.
type DecodeOption func(*decodeOptions)

// Strict rejects unknown fields and values which do not match
// the type of their target field.
func Strict() DecodeOption {
	return func(do *decodeOptions) {
		do.strict = true
	}
}

func body(ctx context.Context, c *Content) ([]byte, error) {
	if c == nil {
		return nil, ErrEmptyBody
	}
	b, err := c.buffer(ctx)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, ErrEmptyBody
	}
	return b, nil
}

// DecodeJson decodes a JSON body into a T.
//
// By default decoding is lenient: unknown fields are ignored and fields
// whose JSON value does not fit the target type are left unset. A body
// whose root does not fit T is always a [DecodeError].
func DecodeJson[T any](ctx context.Context, c *Content, opts ...DecodeOption) (T, error) {
	var v T
	b, err := body(ctx, c)
	if err != nil {
		return v, err
	}

	do := &decodeOptions{}
	for _, opt := range opts {
		opt(do)
	}

	if do.strict {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(&v)
		if err != nil {
			return v, DecodeError{Format: "json", Cause: err}
		}
		return v, nil
	}

	err = json.Unmarshal(b, &v)
	if err == nil {
		return v, nil
	}

	var ute *json.UnmarshalTypeError
	if !errors.As(err, &ute) || ute.Field == "" {
		var zero T
		return zero, DecodeError{Format: "json", Cause: err}
	}
	return v, nil
}

// DecodeXml decodes an XML body into a T.
func DecodeXml[T any](ctx context.Context, c *Content) (T, error) {
	var v T
	b, err := body(ctx, c)
	if err != nil {
		return v, err
	}

	err = xml.Unmarshal(b, &v)
	if err != nil {
		return v, DecodeError{Format: "xml", Cause: err}
	}
	return v, nil
}
