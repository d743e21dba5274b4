// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package maskslog provides a slog.Handler which hides secrets before they are logged.
package maskslog

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/z5labs/httpbuildr/pkg/slogfield"
)

const masked = "****"

type options struct {
	attrTransformers map[string]func(slog.Attr) slog.Attr
	messageMask      func(string) string
}

// Option helps configure the Handler.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(opts *options) {
	f(opts)
}

// Message registers a function for masking slog.Record messages.
func Message(f func(string) string) Option {
	return optionFunc(func(o *options) {
		o.messageMask = f
	})
}

// Attr registers a function for masking a slog.Attr given its key.
// Attrs nested inside groups are matched by their own key.
func Attr(key string, f func(slog.Attr) slog.Attr) Option {
	return optionFunc(func(o *options) {
		o.attrTransformers[key] = f
	})
}

// Headers masks the values of the named headers inside attrs created
// by [slogfield.Header]. Names are matched case-insensitively.
func Headers(names ...string) Option {
	secret := make(map[string]bool, len(names))
	for _, name := range names {
		secret[http.CanonicalHeaderKey(name)] = true
	}

	return Attr(slogfield.HeaderKey, func(a slog.Attr) slog.Attr {
		if a.Value.Kind() != slog.KindGroup {
			return a
		}

		group := a.Value.Group()
		attrs := make([]any, len(group))
		for i, ha := range group {
			if secret[http.CanonicalHeaderKey(ha.Key)] {
				ha = AnonymousStringAttr(ha)
			}
			attrs[i] = ha
		}
		return slog.Group(a.Key, attrs...)
	})
}

// AnonymousStringAttr is a helper function for converting any slog.Attr
// into the anonymized string, "****". It completely ignores the given
// slog.Attr value type and always return a string value.
func AnonymousStringAttr(a slog.Attr) slog.Attr {
	return slog.String(a.Key, masked)
}

// Handler is an slog.Handler.
type Handler struct {
	slog slog.Handler

	attrTransformers map[string]func(slog.Attr) slog.Attr
	messageMask      func(string) string
}

// NewHandler returns a new Handler.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	o := &options{
		attrTransformers: make(map[string]func(slog.Attr) slog.Attr),
	}
	for _, opt := range opts {
		opt.applyOption(o)
	}
	return &Handler{
		slog:             h,
		attrTransformers: o.attrTransformers,
		messageMask:      o.messageMask,
	}
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	if f, exists := h.attrTransformers[a.Key]; exists {
		return f(a)
	}
	if a.Value.Kind() != slog.KindGroup {
		return a
	}

	group := a.Value.Group()
	attrs := make([]any, len(group))
	for i, ga := range group {
		attrs[i] = h.mask(ga)
	}
	return slog.Group(a.Key, attrs...)
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	msg := record.Message
	if h.messageMask != nil {
		msg = h.messageMask(msg)
	}

	nr := slog.NewRecord(record.Time, record.Level, msg, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.mask(a))
		return true
	})
	return h.slog.Handle(ctx, nr)
}

func (h *Handler) with(sh slog.Handler) *Handler {
	return &Handler{
		slog:             sh,
		attrTransformers: h.attrTransformers,
		messageMask:      h.messageMask,
	}
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nr := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		nr[i] = h.mask(a)
	}
	return h.with(h.slog.WithAttrs(nr))
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return h.with(h.slog.WithGroup(name))
}
