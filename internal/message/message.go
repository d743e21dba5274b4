// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package message holds the state shared by requests and responses.
package message

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/z5labs/httpbuildr"
	"github.com/z5labs/httpbuildr/content"
	"github.com/z5labs/httpbuildr/header"
)

// Base is copied on every change. The header map and error slice
// are never mutated once a Base has been returned.
type Base struct {
	version httpbuildr.Version
	header  http.Header
	content *content.Content
	errs    []error
}

// New returns an empty Base with the default protocol version.
func New() Base {
	return Base{
		version: httpbuildr.DefaultVersion,
		header:  make(http.Header),
	}
}

func (b Base) Version() httpbuildr.Version {
	return b.version.OrDefault()
}

func (b Base) WithVersion(v httpbuildr.Version) Base {
	b.version = v.OrDefault()
	return b
}

// Header returns a copy of the message headers.
func (b Base) Header() http.Header {
	if b.header == nil {
		return make(http.Header)
	}
	return b.header.Clone()
}

func (b Base) Content() *content.Content {
	return b.content
}

// Err joins every error recorded while building the message.
func (b Base) Err() error {
	return errors.Join(b.errs...)
}

// WithError records a build error.
func (b Base) WithError(err error) Base {
	if err == nil {
		return b
	}
	b.errs = append(slices.Clip(b.errs), err)
	return b
}

// Add validates and appends values to the named header.
func (b Base) Add(name string, values ...string) Base {
	if !header.ValidName(name) {
		return b.WithError(header.InvalidHeaderError{Name: name})
	}
	for _, v := range values {
		if !header.ValidValue(v) {
			return b.WithError(header.InvalidHeaderError{Name: name, Value: v})
		}
	}

	h := b.Header()
	for _, v := range values {
		h.Add(name, v)
	}
	b.header = h
	return b
}

// Set replaces the named header with a single value.
func (b Base) Set(name, value string) Base {
	if !header.ValidValue(value) {
		return b.WithError(header.InvalidHeaderError{Name: name, Value: value})
	}

	h := b.Header()
	h.Set(name, value)
	b.header = h
	return b
}

// Del removes the named header.
func (b Base) Del(name string) Base {
	h := b.Header()
	h.Del(name)
	b.header = h
	return b
}

// Modify hands f a private copy of the headers.
func (b Base) Modify(f func(http.Header)) Base {
	h := b.Header()
	f(h)
	b.header = h
	return b
}

// WithContent replaces the body.
func (b Base) WithContent(c *content.Content) Base {
	b.content = c
	return b
}

// Clone copies b, including a freshly buffered copy of its body.
func (b Base) Clone(ctx context.Context) (Base, error) {
	clone := Base{
		version: b.version,
		header:  b.Header(),
		errs:    slices.Clone(b.errs),
	}
	if b.content == nil {
		return clone, nil
	}

	c, err := b.content.Buffer(ctx)
	if err != nil {
		return Base{}, err
	}
	clone.content = c
	return clone, nil
}

// MergedHeader returns the message headers with the content headers layered on top.
func (b Base) MergedHeader() http.Header {
	h := b.Header()
	if b.content == nil {
		return h
	}
	for name, values := range b.content.Header() {
		h[name] = slices.Clone(values)
	}
	return h
}
