// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package actionresult adapts built responses into [http.Handler]s.
package actionresult

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/z5labs/httpbuildr/header"
	"github.com/z5labs/httpbuildr/pkg/noop"
	"github.com/z5labs/httpbuildr/pkg/slogfield"
	"github.com/z5labs/httpbuildr/response"
)

type options struct {
	cookies    []Cookie
	logHandler slog.Handler
}

// Option configures how a response is written.
type Option func(*options)

// SetCookies appends the cookies as Set-Cookie headers when the response is written.
func SetCookies(cookies ...Cookie) Option {
	return func(o *options) {
		o.cookies = append(o.cookies, cookies...)
	}
}

// LogHandler configures the handler used to log write failures.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

type handler struct {
	resp    response.Response
	cookies []Cookie
	log     *slog.Logger
}

// Handler returns a [http.Handler] which writes resp. The body is fully
// read before anything is written so a failure can still become a 500.
func Handler(resp response.Response, opts ...Option) http.Handler {
	o := &options{
		logHandler: noop.LogHandler{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return &handler{
		resp:    resp,
		cookies: o.cookies,
		log:     slog.New(o.logHandler),
	}
}

// ServeHTTP implements the [http.Handler] interface.
func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.resp.Err()
	if err != nil {
		h.log.ErrorContext(ctx, "response was not built successfully", slogfield.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var body []byte
	if c := h.resp.Content(); c != nil {
		body, err = c.Bytes(ctx)
		if err != nil {
			h.log.ErrorContext(ctx, "failed to read response content", slogfield.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	wh := w.Header()
	for name, values := range h.resp.MergedHeader() {
		wh[name] = values
	}
	for _, c := range h.cookies {
		wh.Add(header.SetCookie, c.String())
	}
	if wh.Get(header.TransferEncoding) == "" {
		wh.Set(header.ContentLength, strconv.Itoa(len(body)))
	} else {
		wh.Del(header.ContentLength)
	}

	w.WriteHeader(h.resp.StatusCode())
	if len(body) == 0 {
		return
	}

	_, err = w.Write(body)
	if err != nil {
		h.log.ErrorContext(
			ctx,
			"failed to write response body",
			slogfield.StatusCode(h.resp.StatusCode()),
			slogfield.Error(err),
		)
	}
}

// Ok returns a handler for a 200 response with v encoded as JSON.
func Ok[T any](v T, opts ...Option) http.Handler {
	return Handler(response.Result(http.StatusOK).WithJsonContent(v), opts...)
}
