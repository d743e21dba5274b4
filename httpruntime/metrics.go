// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpruntime

import (
	"errors"
	"strconv"
	"time"

	"github.com/z5labs/httpbuildr/internal/try"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeBuild   = "build_error"
	outcomePanic   = "panic"
)

type metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	calls, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpbuildr_calls_total",
			Help: "Total number of typed HTTP calls by client and outcome",
		},
		[]string{"client", "outcome"},
	))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpbuildr_call_duration_seconds",
			Help:    "Duration of typed HTTP calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"client"},
	))
	if err != nil {
		return nil, err
	}

	return &metrics{
		calls:    calls,
		duration: duration,
	}, nil
}

// register reuses an identical collector which was registered by another Runtime.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, err
	}
	existing, ok := are.ExistingCollector.(C)
	if !ok {
		return c, err
	}
	return existing, nil
}

func outcome(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	if code := CodeOf(err); code != 0 {
		return strconv.Itoa(code)
	}
	var perr try.PanicError
	if errors.As(err, &perr) {
		return outcomePanic
	}
	return outcomeBuild
}

func (m *metrics) observe(client string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(client, outcome(err)).Inc()
	m.duration.WithLabelValues(client).Observe(elapsed.Seconds())
}
