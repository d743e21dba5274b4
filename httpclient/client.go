// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package httpclient provides a production ready http.Client which can
// be registered under a name and used by the call pipeline.
package httpclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/z5labs/httpbuildr/header"
	"github.com/z5labs/httpbuildr/pkg/maskslog"
	"github.com/z5labs/httpbuildr/pkg/noop"
	"github.com/z5labs/httpbuildr/pkg/slogfield"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

type retryOptions struct {
	maxRetries int
	waitMin    time.Duration
	waitMax    time.Duration
}

type rateOptions struct {
	limit rate.Limit
	burst int
}

type options struct {
	timeout time.Duration
	rt      http.RoundTripper

	name       string
	logHandler slog.Handler

	instrument bool
	otelOpts   []otelhttp.Option

	co *circuitOptions
	ro *retryOptions
	lo *rateOptions
}

// Option configures the http.Client returned by [New].
type Option func(*options)

// Name is attached to every log record and names the circuit breaker.
func Name(s string) Option {
	return func(o *options) {
		o.name = s
	}
}

// RoundTripper sets the transport every other layer wraps.
// It defaults to [http.DefaultTransport].
func RoundTripper(rt http.RoundTripper) Option {
	return func(o *options) {
		o.rt = rt
	}
}

// Timeout provides a global timeout value for the http.Client. When
// retries are enabled it applies to each attempt.
func Timeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// LogHandler logs every request and response. Authorization headers
// are masked before they reach h.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

func withRetryOption(f func(*retryOptions)) Option {
	return func(o *options) {
		if o.ro == nil {
			o.ro = &retryOptions{
				maxRetries: 4,
				waitMin:    time.Second,
				waitMax:    30 * time.Second,
			}
		}
		f(o.ro)
	}
}

// MaxRetries enables retrying failed requests up to n times.
func MaxRetries(n int) Option {
	return withRetryOption(func(ro *retryOptions) {
		ro.maxRetries = n
	})
}

// MinRetryWait is the smallest backoff between attempts.
func MinRetryWait(d time.Duration) Option {
	return withRetryOption(func(ro *retryOptions) {
		ro.waitMin = d
	})
}

// MaxRetryWait caps the backoff between attempts.
func MaxRetryWait(d time.Duration) Option {
	return withRetryOption(func(ro *retryOptions) {
		ro.waitMax = d
	})
}

// RateLimit allows at most limit requests per second with bursts of up to burst requests.
// Requests wait for their turn until their context is done. A burst below 1 is raised to 1.
func RateLimit(limit float64, burst int) Option {
	if burst < 1 {
		burst = 1
	}
	return func(o *options) {
		o.lo = &rateOptions{
			limit: rate.Limit(limit),
			burst: burst,
		}
	}
}

// Instrument wraps the transport with OpenTelemetry tracing and metrics.
func Instrument(opts ...otelhttp.Option) Option {
	return func(o *options) {
		o.instrument = true
		o.otelOpts = append(o.otelOpts, opts...)
	}
}

// New returns a http.Client with the configured layers. Going from the
// outermost in they are retries, the circuit breaker, rate limiting,
// logging, instrumentation and finally the base transport.
func New(opts ...Option) *http.Client {
	o := &options{
		rt:         http.DefaultTransport,
		logHandler: noop.LogHandler{},
	}
	for _, opt := range opts {
		opt(o)
	}

	logger := slog.New(maskslog.NewHandler(
		o.logHandler,
		maskslog.Headers(header.Authorization, header.ProxyAuthorization),
	))
	if o.name != "" {
		logger = logger.With(slogfield.Client(o.name))
	}

	rt := o.rt
	if o.instrument {
		otelOpts := o.otelOpts
		if o.name != "" {
			name := o.name
			otelOpts = append([]otelhttp.Option{
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return name + " " + r.Method
				}),
			}, otelOpts...)
		}
		rt = otelhttp.NewTransport(rt, otelOpts...)
	}

	rt = &logRoundTripper{
		base: rt,
		log:  logger,
	}

	if o.lo != nil {
		rt = &rateRoundTripper{
			base:    rt,
			limiter: rate.NewLimiter(o.lo.limit, o.lo.burst),
		}
	}

	if o.co != nil {
		rt = newCircuitRoundTripper(rt, o.name, o.co, logger)
	}

	if o.ro == nil {
		return &http.Client{
			Timeout:   o.timeout,
			Transport: rt,
		}
	}

	ro := o.ro
	rc := retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout:   o.timeout,
			Transport: rt,
		},
		Logger:       logger,
		RetryWaitMin: ro.waitMin,
		RetryWaitMax: ro.waitMax,
		RetryMax:     ro.maxRetries,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	return rc.StandardClient()
}

type logRoundTripper struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (rt *logRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()
	rt.log.InfoContext(
		ctx,
		"request sent",
		slogfield.Method(req.Method),
		slogfield.URL(req.URL.String()),
		slogfield.Header(req.Header),
	)
	resp, err := rt.base.RoundTrip(req)
	if err != nil {
		rt.log.ErrorContext(
			ctx,
			"request failed",
			slogfield.URL(req.URL.String()),
			slogfield.Elapsed(time.Since(start)),
			slogfield.Error(err),
		)
		return nil, err
	}
	rt.log.InfoContext(
		ctx,
		"response received",
		slogfield.URL(req.URL.String()),
		slogfield.StatusCode(resp.StatusCode),
		slogfield.Elapsed(time.Since(start)),
	)
	return resp, nil
}

type rateRoundTripper struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (rt *rateRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	err := rt.limiter.Wait(req.Context())
	if err != nil {
		return nil, err
	}
	return rt.base.RoundTrip(req)
}
