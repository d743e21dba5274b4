// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"

	"github.com/z5labs/httpbuildr/config/key"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	environ func() []string
	prefix  string
}

// EnvOption configures an [Env] source.
type EnvOption func(*Env)

// EnvPrefix only applies variables named PREFIX_... . The prefix is
// removed, the rest of the name is lower cased and split on "__" into
// nested keys, so HTTPBUILDR_CLIENTS__BLOG__TIMEOUT sets clients.blog.timeout.
func EnvPrefix(prefix string) EnvOption {
	return func(e *Env) {
		e.prefix = prefix + "_"
	}
}

// FromEnv returns a Source which will apply its config
// from the environment variables available to the
// current process.
func FromEnv(opts ...EnvOption) Env {
	e := Env{
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Apply implements the [Source] interface.
func (src Env) Apply(store Store) error {
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if src.prefix == "" {
			err := store.Set(key.Name(k), v)
			if err != nil {
				return err
			}
			continue
		}

		name, ok := strings.CutPrefix(k, src.prefix)
		if !ok || name == "" {
			continue
		}
		err := store.Set(key.Split(strings.ToLower(name), "__"), v)
		if err != nil {
			return err
		}
	}
	return nil
}
