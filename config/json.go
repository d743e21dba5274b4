// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/z5labs/httpbuildr/internal/try"
)

// Json represents a Source where its underlying format is JSON.
type Json struct {
	r io.Reader
}

// FromJson returns a source which will apply its config
// from JSON values parsed from the given io.Reader.
func FromJson(r io.Reader) Json {
	return Json{r: r}
}

// InvalidJsonError occurs if the underlying io.Reader contains invalid JSON.
type InvalidJsonError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidJsonError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidJsonError) Unwrap() error {
	return e.Cause
}

// Apply implements the [Source] interface. An empty document sets nothing.
func (src Json) Apply(store Store) (err error) {
	defer try.Close(&err, src.r)

	var m map[string]any
	err = json.NewDecoder(src.r).Decode(&m)

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case err == nil:
		return Map(m).Apply(store)
	case errors.Is(err, io.EOF):
		return nil
	case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &serr), errors.As(err, &terr):
		return InvalidJsonError{Cause: err}
	default:
		return err
	}
}
