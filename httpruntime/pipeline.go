// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpruntime

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/z5labs/httpbuildr/content"
	"github.com/z5labs/httpbuildr/header"
	"github.com/z5labs/httpbuildr/internal/ioutil"
	"github.com/z5labs/httpbuildr/internal/try"
	"github.com/z5labs/httpbuildr/pkg/slogfield"
	"github.com/z5labs/httpbuildr/request"
	"github.com/z5labs/httpbuildr/response"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type callOptions[T any] struct {
	whenEmpty func() (T, error)
	strict    bool
	jsonOpts  []content.JsonOption
	modifiers []func(request.Request) request.Request
}

// CallOption configures a single call which decodes into a T.
type CallOption[T any] func(*callOptions[T])

// WhenEmpty is called instead of failing when the response has no body.
func WhenEmpty[T any](f func() (T, error)) CallOption[T] {
	return func(co *callOptions[T]) {
		co.whenEmpty = f
	}
}

// StrictDecoding fails the call on unknown fields or fields whose value
// does not fit the target type.
func StrictDecoding[T any]() CallOption[T] {
	return func(co *callOptions[T]) {
		co.strict = true
	}
}

// JsonOptions configures how the body of a [Post] is encoded.
func JsonOptions[T any](opts ...content.JsonOption) CallOption[T] {
	return func(co *callOptions[T]) {
		co.jsonOpts = append(co.jsonOpts, opts...)
	}
}

// RequestModifier is applied to the request after it is built and
// before it is sent. Modifiers run in the order given.
func RequestModifier[T any](f func(request.Request) request.Request) CallOption[T] {
	return func(co *callOptions[T]) {
		co.modifiers = append(co.modifiers, f)
	}
}

// GetJson sends a GET to url with the client registered as clientName
// and decodes the JSON response into a T.
//
// Expected failures are always an [Error]. A request which cannot be
// built is reported as a [BuildError] and a panic in a caller supplied
// option as a [try.PanicError].
func GetJson[T any](ctx context.Context, clientName, url string, opts ...CallOption[T]) (T, error) {
	build := func(*callOptions[T]) request.Request {
		return request.To(http.MethodGet, url).WithAccept(content.MediaTypeJson)
	}
	return call(ctx, "httpruntime.GetJson", clientName, build, opts...)
}

// Post sends body as JSON to url with the client registered as clientName
// and decodes the JSON response into a TResp. Failures are reported the
// same way as [GetJson].
func Post[TReq, TResp any](ctx context.Context, clientName, url string, body TReq, opts ...CallOption[TResp]) (TResp, error) {
	build := func(co *callOptions[TResp]) request.Request {
		return request.To(http.MethodPost, url).WithJsonData(body, co.jsonOpts...)
	}
	return call(ctx, "httpruntime.Post", clientName, build, opts...)
}

func call[T any](ctx context.Context, spanName, clientName string, build func(*callOptions[T]) request.Request, opts ...CallOption[T]) (v T, err error) {
	rt, ok := FromContext(ctx)
	if !ok {
		return v, Error{Kind: NoHttpFactory, Message: NoHttpFactory.String()}
	}

	ctx, span := rt.tracer.Start(
		ctx,
		spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("httpbuildr.client", clientName)),
	)
	defer span.End()

	log := rt.log.With(
		slogfield.CallID(uuid.NewString()),
		slogfield.Client(clientName),
	)
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		rt.metrics.observe(clientName, err, elapsed)
		if err == nil {
			log.DebugContext(ctx, "call succeeded", slogfield.Elapsed(elapsed))
			return
		}

		attrs := []any{slogfield.Elapsed(elapsed), slogfield.Error(err)}
		if code := CodeOf(err); code != 0 {
			span.SetAttributes(attribute.Int("httpbuildr.error_code", code))
			attrs = append(attrs, slogfield.ErrorCode(code))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorContext(ctx, "call failed", attrs...)
	}()
	defer try.Recover(&err)

	co := &callOptions[T]{}
	for _, opt := range opts {
		opt(co)
	}

	client, err := rt.clients.Client(clientName)
	if err != nil {
		return v, Error{Kind: UnregisteredClient, Message: UnregisteredClient.String(), Cause: err}
	}

	req := build(co)
	if rt.encoding != "" {
		req = req.WithHeaderModifications(func(h http.Header) {
			h.Set(header.AcceptCharset, rt.encoding)
		})
	}
	for _, modify := range co.modifiers {
		req = modify(req)
	}

	hreq, err := req.ToHTTP(ctx)
	if err != nil {
		return v, BuildError{Cause: err}
	}

	log.DebugContext(
		ctx,
		"sending request",
		slogfield.Method(hreq.Method),
		slogfield.URL(hreq.URL.String()),
	)
	hresp, err := client.Do(hreq)
	if err != nil {
		return v, Error{Kind: InvalidEndpoint, Message: InvalidEndpoint.String(), Cause: err}
	}

	resp := response.FromHTTP(hresp).WithRequest(req)
	if !resp.IsSuccess() {
		drainErr := ioutil.DrainAndClose(hresp.Body)
		if drainErr != nil {
			log.WarnContext(ctx, "failed to discard response body", slogfield.Error(drainErr))
		}
		return v, Error{
			Kind:    FailedApiCall,
			Message: resp.ReasonPhrase(),
			Cause: StatusCodeError{
				StatusCode:   resp.StatusCode(),
				ReasonPhrase: resp.ReasonPhrase(),
			},
		}
	}

	return decode(ctx, log, resp, co)
}

func decode[T any](ctx context.Context, log *slog.Logger, resp response.Response, co *callOptions[T]) (T, error) {
	var decodeOpts []content.DecodeOption
	if co.strict {
		decodeOpts = append(decodeOpts, content.Strict())
	}

	v, err := content.DecodeJson[T](ctx, resp.Content(), decodeOpts...)
	if err == nil {
		return v, nil
	}

	var zero T
	if errors.Is(err, content.ErrEmptyBody) && co.whenEmpty != nil {
		log.DebugContext(ctx, "response body is empty, using fallback")
		return co.whenEmpty()
	}
	return zero, Error{Kind: IncompatibleResponse, Message: IncompatibleResponse.String(), Cause: err}
}
