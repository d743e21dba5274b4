// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package header

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/z5labs/httpbuildr/pkg/ptr"
)

// CacheControlValue is the value of a Cache-Control header.
//
// Durations are rendered in whole seconds.
type CacheControlValue struct {
	NoCache         bool
	NoStore         bool
	NoTransform     bool
	OnlyIfCached    bool
	MustRevalidate  bool
	ProxyRevalidate bool
	Public          bool
	Private         bool
	Immutable       bool

	MaxAge       *time.Duration
	SharedMaxAge *time.Duration
	MinFresh     *time.Duration

	// MaxStale without MaxStaleLimit renders the bare max-stale directive.
	MaxStale      bool
	MaxStaleLimit *time.Duration

	Extensions []string
}

func seconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10)
}

// String implements the [fmt.Stringer] interface.
func (cc CacheControlValue) String() string {
	var directives []string
	flag := func(set bool, name string) {
		if set {
			directives = append(directives, name)
		}
	}
	delta := func(d *time.Duration, name string) {
		if d != nil {
			directives = append(directives, name+"="+seconds(*d))
		}
	}

	flag(cc.NoCache, "no-cache")
	flag(cc.NoStore, "no-store")
	delta(cc.MaxAge, "max-age")
	delta(cc.SharedMaxAge, "s-maxage")
	if cc.MaxStale || cc.MaxStaleLimit != nil {
		if cc.MaxStaleLimit == nil {
			directives = append(directives, "max-stale")
		} else {
			delta(cc.MaxStaleLimit, "max-stale")
		}
	}
	delta(cc.MinFresh, "min-fresh")
	flag(cc.NoTransform, "no-transform")
	flag(cc.OnlyIfCached, "only-if-cached")
	flag(cc.Public, "public")
	flag(cc.Private, "private")
	flag(cc.MustRevalidate, "must-revalidate")
	flag(cc.ProxyRevalidate, "proxy-revalidate")
	flag(cc.Immutable, "immutable")
	directives = append(directives, cc.Extensions...)

	return strings.Join(directives, ", ")
}

// InvalidDirectiveError occurs when a Cache-Control directive
// has a malformed delta seconds argument.
type InvalidDirectiveError struct {
	Directive string
	Cause     error
}

// Error implements the [builtin.error] interface.
func (e InvalidDirectiveError) Error() string {
	return fmt.Sprintf("invalid cache-control directive %q: %s", e.Directive, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidDirectiveError) Unwrap() error {
	return e.Cause
}

// ParseCacheControl parses the value of a Cache-Control header.
// Unknown directives are kept as extensions.
func ParseCacheControl(s string) (CacheControlValue, error) {
	var cc CacheControlValue
	for _, raw := range strings.Split(s, ",") {
		directive := strings.TrimSpace(raw)
		if directive == "" {
			continue
		}

		name, arg, hasArg := strings.Cut(directive, "=")
		name = strings.ToLower(strings.TrimSpace(name))

		parseDelta := func() (*time.Duration, error) {
			n, err := strconv.ParseInt(strings.Trim(strings.TrimSpace(arg), `"`), 10, 64)
			if err != nil {
				return nil, InvalidDirectiveError{Directive: directive, Cause: err}
			}
			return ptr.Ref(time.Duration(n) * time.Second), nil
		}

		var err error
		switch name {
		case "no-cache":
			cc.NoCache = true
		case "no-store":
			cc.NoStore = true
		case "no-transform":
			cc.NoTransform = true
		case "only-if-cached":
			cc.OnlyIfCached = true
		case "must-revalidate":
			cc.MustRevalidate = true
		case "proxy-revalidate":
			cc.ProxyRevalidate = true
		case "public":
			cc.Public = true
		case "private":
			cc.Private = true
		case "immutable":
			cc.Immutable = true
		case "max-age":
			cc.MaxAge, err = parseDelta()
		case "s-maxage":
			cc.SharedMaxAge, err = parseDelta()
		case "min-fresh":
			cc.MinFresh, err = parseDelta()
		case "max-stale":
			cc.MaxStale = true
			if hasArg {
				cc.MaxStaleLimit, err = parseDelta()
			}
		default:
			cc.Extensions = append(cc.Extensions, directive)
		}
		if err != nil {
			return CacheControlValue{}, err
		}
	}
	return cc, nil
}
