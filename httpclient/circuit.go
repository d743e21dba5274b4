// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpclient

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/z5labs/httpbuildr/pkg/slogfield"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the circuit breaker rejects requests.
var ErrCircuitOpen = gobreaker.ErrOpenState

type circuitOptions struct {
	maxRequests uint32
	interval    time.Duration
	timeout     time.Duration
	tripCount   uint32
	statusCodes []int
}

func withCircuitOption(f func(*circuitOptions)) Option {
	return func(o *options) {
		if o.co == nil {
			o.co = &circuitOptions{
				maxRequests: 1,
				timeout:     60 * time.Second,
				tripCount:   5,
			}
		}
		f(o.co)
	}
}

// HalfOpenRequests is the maximum number of requests allowed through
// while the circuit is half open.
func HalfOpenRequests(n uint32) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.maxRequests = n
	})
}

// OpenStateTimeout is how long the circuit stays open before it becomes half open.
func OpenStateTimeout(d time.Duration) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.timeout = d
	})
}

// CountResetInterval is the cyclic period after which the failure counts
// of a closed circuit are cleared. Zero never clears them.
func CountResetInterval(d time.Duration) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.interval = d
	})
}

// TripAfter opens the circuit after n consecutive failures.
func TripAfter(n uint32) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.tripCount = n
	})
}

// TripOn registers response status codes which count as failures.
//
// Default: 400, 401, 403, 500
func TripOn(statusCodes ...int) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.statusCodes = append(co.statusCodes, statusCodes...)
	})
}

type tripStatusError struct {
	resp *http.Response
}

func (e tripStatusError) Error() string {
	return fmt.Sprintf("status code %d counted as a circuit failure", e.resp.StatusCode)
}

type circuitRoundTripper struct {
	base  http.RoundTripper
	cb    *gobreaker.CircuitBreaker
	codes map[int]struct{}
}

func newCircuitRoundTripper(base http.RoundTripper, name string, co *circuitOptions, logger *slog.Logger) *circuitRoundTripper {
	statusCodes := co.statusCodes
	if len(statusCodes) == 0 {
		statusCodes = []int{
			http.StatusBadRequest,          // 400
			http.StatusUnauthorized,        // 401
			http.StatusForbidden,           // 403
			http.StatusInternalServerError, // 500
		}
	}

	codes := make(map[int]struct{}, len(statusCodes))
	for _, code := range statusCodes {
		codes[code] = struct{}{}
	}

	tripCount := co.tripCount
	return &circuitRoundTripper{
		base:  base,
		codes: codes,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: co.maxRequests,
			Interval:    co.interval,
			Timeout:     co.timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= tripCount
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				switch to {
				case gobreaker.StateOpen:
					logger.Error("circuit has been opened")
				case gobreaker.StateHalfOpen:
					logger.Warn(
						"circuit is now half open and letting some requests through",
						slog.Uint64("max_requests_allowed_through", uint64(co.maxRequests)),
					)
				case gobreaker.StateClosed:
					logger.Info("circuit has been closed", slogfield.String("previous_state", from.String()))
				}
			},
		}),
	}
}

func (rt *circuitRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	v, err := rt.cb.Execute(func() (interface{}, error) {
		resp, err := rt.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if _, trips := rt.codes[resp.StatusCode]; trips {
			return resp, tripStatusError{resp: resp}
		}
		return resp, nil
	})

	var tse tripStatusError
	if errors.As(err, &tse) {
		return tse.resp, nil
	}
	if err != nil {
		return nil, err
	}
	return v.(*http.Response), nil
}
