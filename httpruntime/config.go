// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpruntime

import (
	"time"

	"github.com/z5labs/httpbuildr/config"
	"github.com/z5labs/httpbuildr/httpclient"
)

// Config is the registry of named clients as read by [config.Manager.Unmarshal].
//
//	clients:
//	  blog:
//	    timeout: 5s
//	    retry:
//	      max: 3
//	    circuit:
//	      trip_after: 5
//	      trip_on: [500, 503]
type Config struct {
	Clients map[string]ClientConfig `config:"clients"`
}

// ClientConfig configures a single named client. Every unset block leaves
// the corresponding layer of the client disabled.
type ClientConfig struct {
	Timeout    time.Duration  `config:"timeout"`
	Instrument bool           `config:"instrument"`
	Retry      *RetryConfig   `config:"retry"`
	Circuit    *CircuitConfig `config:"circuit"`
	Rate       *RateConfig    `config:"rate"`
}

type RetryConfig struct {
	Max     int           `config:"max"`
	MinWait time.Duration `config:"min_wait"`
	MaxWait time.Duration `config:"max_wait"`
}

const defaultTripAfter = 5

type CircuitConfig struct {
	TripAfter          uint32        `config:"trip_after"`
	TripOn             []int         `config:"trip_on"`
	HalfOpenRequests   uint32        `config:"half_open_requests"`
	OpenStateTimeout   time.Duration `config:"open_state_timeout"`
	CountResetInterval time.Duration `config:"count_reset_interval"`
}

type RateConfig struct {
	Limit float64 `config:"limit"`
	Burst int     `config:"burst"`
}

// Options maps cfg to [httpclient] options. Zero values keep the
// httpclient defaults.
func (cfg ClientConfig) Options() []httpclient.Option {
	var opts []httpclient.Option
	if cfg.Timeout > 0 {
		opts = append(opts, httpclient.Timeout(cfg.Timeout))
	}
	if cfg.Instrument {
		opts = append(opts, httpclient.Instrument())
	}
	if r := cfg.Retry; r != nil {
		opts = append(opts, httpclient.MaxRetries(r.Max))
		if r.MinWait > 0 {
			opts = append(opts, httpclient.MinRetryWait(r.MinWait))
		}
		if r.MaxWait > 0 {
			opts = append(opts, httpclient.MaxRetryWait(r.MaxWait))
		}
	}
	if c := cfg.Circuit; c != nil {
		opts = append(opts, circuitOptions(c)...)
	}
	if r := cfg.Rate; r != nil && r.Limit > 0 {
		opts = append(opts, httpclient.RateLimit(r.Limit, r.Burst))
	}
	return opts
}

func circuitOptions(c *CircuitConfig) []httpclient.Option {
	tripAfter := c.TripAfter
	if tripAfter == 0 {
		tripAfter = defaultTripAfter
	}

	opts := []httpclient.Option{
		httpclient.TripAfter(tripAfter),
	}
	if len(c.TripOn) > 0 {
		opts = append(opts, httpclient.TripOn(c.TripOn...))
	}
	if c.HalfOpenRequests > 0 {
		opts = append(opts, httpclient.HalfOpenRequests(c.HalfOpenRequests))
	}
	if c.OpenStateTimeout > 0 {
		opts = append(opts, httpclient.OpenStateTimeout(c.OpenStateTimeout))
	}
	if c.CountResetInterval > 0 {
		opts = append(opts, httpclient.CountResetInterval(c.CountResetInterval))
	}
	return opts
}

// ConfigFromManager decodes a [Config] from m.
func ConfigFromManager(m *config.Manager) (Config, error) {
	var cfg Config
	err := m.Unmarshal(&cfg)
	return cfg, err
}

// RegistryFromConfig registers a client for every entry of cfg.Clients.
// The shared options are applied to every client before its own.
func RegistryFromConfig(cfg Config, shared ...httpclient.Option) *Registry {
	opts := make([]RegistryOption, 0, len(cfg.Clients))
	for name, cc := range cfg.Clients {
		clientOpts := append(append([]httpclient.Option{}, shared...), cc.Options()...)
		opts = append(opts, WithHttpClient(name, clientOpts...))
	}
	return NewRegistry(opts...)
}
