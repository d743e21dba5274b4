// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpruntime

import (
	"net/http"
	"sort"
	"sync"

	"github.com/z5labs/httpbuildr/httpclient"
)

// Doer sends a HTTP request. [http.Client] is a Doer.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// ClientFactory resolves a client by name.
type ClientFactory interface {
	Client(name string) (Doer, error)
}

// Registry is a fixed mapping of names to clients which is built once
// and then passed to [New].
type Registry struct {
	clients map[string]func() Doer
}

// RegistryOption registers a client with a [Registry].
type RegistryOption func(*Registry)

// WithHttpClient registers a client built by [httpclient.New]. The client
// is created the first time it is resolved and shared afterwards.
func WithHttpClient(name string, opts ...httpclient.Option) RegistryOption {
	return func(r *Registry) {
		r.clients[name] = sync.OnceValue(func() Doer {
			return httpclient.New(append([]httpclient.Option{httpclient.Name(name)}, opts...)...)
		})
	}
}

// WithDoer registers an existing client.
func WithDoer(name string, d Doer) RegistryOption {
	return func(r *Registry) {
		r.clients[name] = func() Doer {
			return d
		}
	}
}

// NewRegistry returns a Registry holding every registered client.
// Registering the same name twice keeps the last registration.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		clients: make(map[string]func() Doer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Client implements the [ClientFactory] interface.
func (r *Registry) Client(name string) (Doer, error) {
	f, ok := r.clients[name]
	if !ok {
		return nil, ErrClientNotRegistered
	}
	d := f()
	if d == nil {
		return nil, ErrClientNotRegistered
	}
	return d, nil
}

// Names returns the registered client names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
