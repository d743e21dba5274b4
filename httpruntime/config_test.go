// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpruntime

import (
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/z5labs/httpbuildr/config"
	"github.com/z5labs/httpbuildr/httpclient"

	"github.com/stretchr/testify/require"
)

const clientsYaml = `
clients:
  blog:
    timeout: 5s
    instrument: true
    retry:
      max: 2
      min_wait: 10ms
    circuit:
      trip_after: 1
      trip_on: [500]
      open_state_timeout: 1m
    rate:
      limit: 10
      burst: 2
  users:
    timeout: 1s
`

func TestConfigFromManager(t *testing.T) {
	t.Run("will decode every client", func(t *testing.T) {
		m, err := config.Read(config.FromYaml(strings.NewReader(clientsYaml)))
		require.NoError(t, err)

		cfg, err := ConfigFromManager(m)
		require.NoError(t, err)

		require.Len(t, cfg.Clients, 2)

		blog := cfg.Clients["blog"]
		require.Equal(t, 5*time.Second, blog.Timeout)
		require.True(t, blog.Instrument)
		require.Equal(t, &RetryConfig{Max: 2, MinWait: 10 * time.Millisecond}, blog.Retry)
		require.Equal(t, &CircuitConfig{TripAfter: 1, TripOn: []int{500}, OpenStateTimeout: time.Minute}, blog.Circuit)
		require.Equal(t, &RateConfig{Limit: 10, Burst: 2}, blog.Rate)

		users := cfg.Clients["users"]
		require.Equal(t, time.Second, users.Timeout)
		require.Nil(t, users.Retry)
		require.Nil(t, users.Circuit)
		require.Len(t, users.Options(), 1)
	})
}

func TestRegistryFromConfig(t *testing.T) {
	t.Run("will register every client", func(t *testing.T) {
		r := RegistryFromConfig(Config{
			Clients: map[string]ClientConfig{
				"blog":  {},
				"users": {Timeout: time.Second},
			},
		})

		require.Equal(t, []string{"blog", "users"}, r.Names())

		d, err := r.Client("users")
		require.NoError(t, err)
		require.Equal(t, time.Second, d.(*http.Client).Timeout)
	})

	t.Run("will open the circuit of a client", func(t *testing.T) {
		t.Run("if its circuit block trips", func(t *testing.T) {
			var hits atomic.Int32
			rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
				hits.Add(1)
				return &http.Response{
					Status:     "500 Internal Server Error",
					StatusCode: http.StatusInternalServerError,
					Proto:      "HTTP/1.1",
					ProtoMajor: 1,
					ProtoMinor: 1,
					Header:     make(http.Header),
					Body:       http.NoBody,
					Request:    req,
				}, nil
			})

			r := RegistryFromConfig(
				Config{
					Clients: map[string]ClientConfig{
						"blog": {
							Circuit: &CircuitConfig{TripAfter: 1, TripOn: []int{http.StatusInternalServerError}},
						},
					},
				},
				httpclient.RoundTripper(rt),
			)
			ctx := withRuntime(t, r)

			_, err := GetJson[post](ctx, "blog", "http://blog.local/posts/1")
			require.ErrorIs(t, err, ErrFailedApiCall)

			_, err = GetJson[post](ctx, "blog", "http://blog.local/posts/1")
			require.ErrorIs(t, err, ErrInvalidEndpoint)
			require.ErrorIs(t, err, httpclient.ErrCircuitOpen)

			require.Equal(t, int32(1), hits.Load())
		})
	})
}
