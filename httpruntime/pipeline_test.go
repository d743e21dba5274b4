// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpruntime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/z5labs/httpbuildr/content"
	"github.com/z5labs/httpbuildr/internal/try"
	"github.com/z5labs/httpbuildr/request"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func serve(t *testing.T, f http.HandlerFunc) string {
	t.Helper()

	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return srv.URL
}

func withRuntime(t *testing.T, clients ClientFactory, opts ...Option) context.Context {
	t.Helper()

	rt, err := New(clients, opts...)
	require.NoError(t, err)
	return NewContext(context.Background(), rt)
}

func blogRuntime(t *testing.T, opts ...Option) context.Context {
	t.Helper()

	return withRuntime(t, NewRegistry(WithDoer("blog", http.DefaultClient)), opts...)
}

func TestGetJson(t *testing.T) {
	t.Run("will return the decoded value", func(t *testing.T) {
		t.Run("if the server responds with a JSON body", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					w.WriteHeader(http.StatusMethodNotAllowed)
					return
				}
				if r.Header.Get("Accept") != "application/json" || r.Header.Get("Accept-Charset") != "utf-8" {
					w.WriteHeader(http.StatusNotAcceptable)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, `{"id":1,"title":"hello"}`)
			})

			ctx := blogRuntime(t)

			p, err := GetJson[post](ctx, "blog", addr)

			require.NoError(t, err)
			require.Equal(t, post{ID: 1, Title: "hello"}, p)
		})

		t.Run("if some fields do not fit the target type", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"id":"one","title":"hello"}`)
			})

			ctx := blogRuntime(t)

			p, err := GetJson[post](ctx, "blog", addr)

			require.NoError(t, err)
			require.Equal(t, post{Title: "hello"}, p)
		})
	})

	t.Run("will return a NoHttpFactory error", func(t *testing.T) {
		t.Run("if the context carries no runtime", func(t *testing.T) {
			_, err := GetJson[post](context.Background(), "blog", "http://localhost")

			require.ErrorIs(t, err, ErrNoHttpFactory)
			require.Equal(t, 500, CodeOf(err))
			require.Equal(t, "500: no factory", err.Error())
		})
	})

	t.Run("will return an UnregisteredClient error", func(t *testing.T) {
		t.Run("if no client is registered under the name", func(t *testing.T) {
			ctx := blogRuntime(t)

			_, err := GetJson[post](ctx, "X", "http://localhost")

			require.ErrorIs(t, err, ErrUnregisteredClient)
			require.ErrorIs(t, err, ErrClientNotRegistered)
			require.Equal(t, 501, CodeOf(err))
		})
	})

	t.Run("will return an InvalidEndpoint error", func(t *testing.T) {
		t.Run("if the request could not be sent", func(t *testing.T) {
			dialErr := errors.New("dial failed")
			hc := &http.Client{
				Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
					return nil, dialErr
				}),
			}
			ctx := withRuntime(t, NewRegistry(WithDoer("blog", hc)))

			_, err := GetJson[post](ctx, "blog", "http://example.invalid/posts/1")

			require.ErrorIs(t, err, ErrInvalidEndpoint)
			require.ErrorIs(t, err, dialErr)
			require.Equal(t, 502, CodeOf(err))
		})
	})

	t.Run("will return a FailedApiCall error", func(t *testing.T) {
		t.Run("if the server responds with a non 2xx status", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, `this is not json`)
			})

			ctx := blogRuntime(t)

			_, err := GetJson[post](ctx, "blog", addr)

			require.ErrorIs(t, err, ErrFailedApiCall)
			require.Equal(t, 503, CodeOf(err))

			var rerr Error
			require.ErrorAs(t, err, &rerr)
			require.Equal(t, "Not Found", rerr.Message)

			var serr StatusCodeError
			require.ErrorAs(t, err, &serr)
			require.Equal(t, http.StatusNotFound, serr.StatusCode)

			var derr content.DecodeError
			require.False(t, errors.As(err, &derr))
		})
	})

	t.Run("will return an IncompatibleResponse error", func(t *testing.T) {
		t.Run("if the body is malformed", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"id":`)
			})

			ctx := blogRuntime(t)

			_, err := GetJson[post](ctx, "blog", addr)

			require.ErrorIs(t, err, ErrIncompatibleResponse)
			require.Equal(t, 504, CodeOf(err))

			var derr content.DecodeError
			require.ErrorAs(t, err, &derr)
		})

		t.Run("if the body does not have the shape of the target type", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `["not","an","object"]`)
			})

			ctx := blogRuntime(t)

			v, err := GetJson[post](ctx, "blog", addr)

			require.ErrorIs(t, err, ErrIncompatibleResponse)
			require.Equal(t, 504, CodeOf(err))
			require.Zero(t, v)
		})

		t.Run("if the body is empty and no fallback is given", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			ctx := blogRuntime(t)

			_, err := GetJson[post](ctx, "blog", addr)

			require.ErrorIs(t, err, ErrIncompatibleResponse)
			require.ErrorIs(t, err, content.ErrEmptyBody)
		})

		t.Run("if strict decoding is enabled and the body has unknown fields", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"id":1,"title":"hello","draft":true}`)
			})

			ctx := blogRuntime(t)

			_, err := GetJson(ctx, "blog", addr, StrictDecoding[post]())

			require.ErrorIs(t, err, ErrIncompatibleResponse)
		})
	})

	t.Run("will call the fallback", func(t *testing.T) {
		t.Run("if the body is empty", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})

			ctx := blogRuntime(t)

			p, err := GetJson(ctx, "blog", addr, WhenEmpty(func() (post, error) {
				return post{Title: "default"}, nil
			}))

			require.NoError(t, err)
			require.Equal(t, post{Title: "default"}, p)
		})

		t.Run("and return its error if the body is empty", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			ctx := blogRuntime(t)
			notFound := errors.New("post not found")

			_, err := GetJson(ctx, "blog", addr, WhenEmpty(func() (post, error) {
				return post{}, notFound
			}))

			require.Equal(t, notFound, err)
		})
	})

	t.Run("will return a BuildError", func(t *testing.T) {
		t.Run("if the url is invalid", func(t *testing.T) {
			ctx := blogRuntime(t)

			_, err := GetJson[post](ctx, "blog", "://bad")

			var berr BuildError
			require.ErrorAs(t, err, &berr)
			require.Equal(t, 0, CodeOf(err))

			var uerr request.InvalidURLError
			require.ErrorAs(t, err, &uerr)
		})
	})

	t.Run("will apply request modifiers", func(t *testing.T) {
		t.Run("if they are given", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer token" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				io.WriteString(w, `{"id":2}`)
			})

			ctx := blogRuntime(t)

			p, err := GetJson(ctx, "blog", addr, RequestModifier[post](func(r request.Request) request.Request {
				return r.WithBearerToken("token")
			}))

			require.NoError(t, err)
			require.Equal(t, 2, p.ID)
		})
	})

	t.Run("will return a PanicError", func(t *testing.T) {
		t.Run("if a request modifier panics", func(t *testing.T) {
			var hits atomic.Int32
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
			})

			ctx := blogRuntime(t)

			_, err := GetJson(ctx, "blog", addr, RequestModifier[post](func(request.Request) request.Request {
				panic("modifier failed")
			}))

			var perr try.PanicError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, 0, CodeOf(err))
			require.Equal(t, int32(0), hits.Load())
		})
	})
}

func TestPost(t *testing.T) {
	t.Run("will send the body as JSON", func(t *testing.T) {
		t.Run("if the body can be encoded", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					w.WriteHeader(http.StatusMethodNotAllowed)
					return
				}
				if r.Header.Get("Content-Type") != "application/json; charset=utf-8" || r.Header.Get("Accept") != "application/json" {
					w.WriteHeader(http.StatusUnsupportedMediaType)
					return
				}

				var p post
				err := json.NewDecoder(r.Body).Decode(&p)
				if err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				p.ID = 7

				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(p)
			})

			ctx := blogRuntime(t)

			p, err := Post[post, post](ctx, "blog", addr, post{Title: "hello"})

			require.NoError(t, err)
			require.Equal(t, post{ID: 7, Title: "hello"}, p)
		})

		t.Run("with the configured media type", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/vnd.blog+json") {
					w.WriteHeader(http.StatusUnsupportedMediaType)
					return
				}
				io.WriteString(w, `{"id":8}`)
			})

			ctx := blogRuntime(t)

			p, err := Post(ctx, "blog", addr, post{Title: "hello"}, JsonOptions[post](content.JsonMediaType("application/vnd.blog+json")))

			require.NoError(t, err)
			require.Equal(t, 8, p.ID)
		})
	})

	t.Run("will return a BuildError", func(t *testing.T) {
		t.Run("if the body cannot be encoded", func(t *testing.T) {
			var hits atomic.Int32
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
			})

			ctx := blogRuntime(t)

			_, err := Post[chan int, post](ctx, "blog", addr, make(chan int))

			var berr BuildError
			require.ErrorAs(t, err, &berr)

			var serr content.SerializationError
			require.ErrorAs(t, err, &serr)
			require.Equal(t, int32(0), hits.Load())
		})
	})

	t.Run("will return a FailedApiCall error", func(t *testing.T) {
		t.Run("if the server rejects the body", func(t *testing.T) {
			addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
			})

			ctx := blogRuntime(t)

			_, err := Post[post, post](ctx, "blog", addr, post{})

			require.ErrorIs(t, err, ErrFailedApiCall)
			require.Equal(t, "503: Unprocessable Entity: unexpected response status: 422 Unprocessable Entity", err.Error())
		})
	})
}

func TestLocalCancel(t *testing.T) {
	t.Run("will only cancel calls in the child scope", func(t *testing.T) {
		addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"id":1}`)
		})

		ctx := blogRuntime(t)
		child, cancel := LocalCancel(ctx)
		cancel()

		_, err := GetJson[post](child, "blog", addr)
		require.ErrorIs(t, err, ErrInvalidEndpoint)
		require.ErrorIs(t, err, context.Canceled)

		require.NoError(t, ctx.Err())

		sibling, cancelSibling := LocalCancel(ctx)
		defer cancelSibling()

		p, err := GetJson[post](sibling, "blog", addr)
		require.NoError(t, err)
		require.Equal(t, 1, p.ID)
	})

	t.Run("will be cancelled by its parent", func(t *testing.T) {
		parent, cancelParent := context.WithCancel(blogRuntime(t))
		child, cancel := LocalCancel(parent)
		defer cancel()

		cancelParent()

		require.ErrorIs(t, child.Err(), context.Canceled)
	})
}

func TestCallObservability(t *testing.T) {
	t.Run("will record the error code on the span", func(t *testing.T) {
		addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		exporter := tracetest.NewInMemoryExporter()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		defer tp.Shutdown(context.Background())

		ctx := blogRuntime(t, TracerProvider(tp))

		_, err := GetJson[post](ctx, "blog", addr)
		require.Error(t, err)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		require.Equal(t, "httpruntime.GetJson", spans[0].Name)
		require.Equal(t, codes.Error, spans[0].Status.Code)
		require.Contains(t, spans[0].Attributes, attribute.Int("httpbuildr.error_code", 503))
		require.Contains(t, spans[0].Attributes, attribute.String("httpbuildr.client", "blog"))
	})

	t.Run("will log failed calls with a call id", func(t *testing.T) {
		addr := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		var buf bytes.Buffer
		ctx := blogRuntime(t, LogHandler(slog.NewJSONHandler(&buf, nil)))

		_, err := GetJson[post](ctx, "blog", addr)
		require.Error(t, err)

		logs := buf.String()
		require.Contains(t, logs, "call failed")
		require.Contains(t, logs, `"error_code":503`)
		require.Contains(t, logs, `"http_client":"blog"`)
		require.Contains(t, logs, `"call_id":`)
	})
}
