// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpruntime

import (
	"context"
	"errors"
	"log/slog"

	"github.com/z5labs/httpbuildr/pkg/noop"
	"github.com/z5labs/httpbuildr/pkg/otelslog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/z5labs/httpbuildr/httpruntime"

// DefaultEncoding is the charset a [Runtime] asks servers to respond with.
const DefaultEncoding = "utf-8"

type options struct {
	logHandler slog.Handler
	tp         trace.TracerProvider
	reg        prometheus.Registerer
	encoding   string
}

// Option configures a [Runtime].
type Option func(*options)

// LogHandler sets the handler every call logs to. Records are annotated
// with the trace and span id of the call.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// TracerProvider sets where call spans are created. It defaults to the
// global provider.
func TracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tp = tp
	}
}

// Metrics registers call counters and durations with reg.
func Metrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.reg = reg
	}
}

// Encoding sets the Accept-Charset of every request. It defaults to [DefaultEncoding].
func Encoding(charset string) Option {
	return func(o *options) {
		o.encoding = charset
	}
}

// Runtime is the environment calls execute in. It is safe for concurrent use.
type Runtime struct {
	clients  ClientFactory
	log      *slog.Logger
	tracer   trace.Tracer
	metrics  *metrics
	encoding string
}

// ErrNilClientFactory is returned by [New] when no [ClientFactory] is given.
var ErrNilClientFactory = errors.New("httpruntime: client factory must not be nil")

// New returns a Runtime which resolves clients from clients.
func New(clients ClientFactory, opts ...Option) (*Runtime, error) {
	if clients == nil {
		return nil, ErrNilClientFactory
	}

	o := &options{
		logHandler: noop.LogHandler{},
		encoding:   DefaultEncoding,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tp == nil {
		o.tp = otel.GetTracerProvider()
	}

	rt := &Runtime{
		clients:  clients,
		log:      otelslog.New(o.logHandler),
		tracer:   o.tp.Tracer(instrumentationName),
		encoding: o.encoding,
	}
	if o.reg == nil {
		return rt, nil
	}

	m, err := newMetrics(o.reg)
	if err != nil {
		return nil, err
	}
	rt.metrics = m
	return rt, nil
}

// Encoding returns the charset requested by every call.
func (rt *Runtime) Encoding() string {
	return rt.encoding
}

type ctxKey struct{}

// NewContext returns a copy of ctx which carries rt.
func NewContext(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, ctxKey{}, rt)
}

// FromContext returns the Runtime carried by ctx, if any.
func FromContext(ctx context.Context) (*Runtime, bool) {
	rt, ok := ctx.Value(ctxKey{}).(*Runtime)
	return rt, ok && rt != nil
}

// LocalCancel derives a cancellation scope linked to ctx. Cancelling the
// returned context stops the calls running under it and nothing else,
// while cancelling ctx stops them as well.
func LocalCancel(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}
