// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package ioutil holds small helpers for consuming message bodies.
package ioutil

import (
	"errors"
	"fmt"
	"io"
)

// maxDrain bounds how much of an unwanted body is read before closing it.
const maxDrain = 64 << 10

// CloseError occurs when a reader was consumed but could not be closed.
type CloseError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e CloseError) Error() string {
	return fmt.Sprintf("failed to close reader: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e CloseError) Unwrap() error {
	return e.Cause
}

// ReadAllAndTryClose reads r until EOF and closes it if it is an [io.ReadCloser].
func ReadAllAndTryClose(r io.Reader) (_ []byte, err error) {
	defer tryClose(&err, r)
	return io.ReadAll(r)
}

// DrainAndClose discards a bounded amount of rc before closing it so
// the underlying connection can be reused.
func DrainAndClose(rc io.ReadCloser) error {
	if rc == nil {
		return nil
	}
	_, _ = io.CopyN(io.Discard, rc, maxDrain)

	err := rc.Close()
	if err == nil {
		return nil
	}
	return CloseError{Cause: err}
}

func tryClose(err *error, r io.Reader) {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		return
	}

	closeErr := rc.Close()
	if closeErr == nil {
		return
	}

	cerr := CloseError{
		Cause: closeErr,
	}
	if *err == nil {
		*err = cerr
		return
	}
	*err = errors.Join(*err, cerr)
}
