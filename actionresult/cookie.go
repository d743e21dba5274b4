// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package actionresult

import (
	"net/http"
	"time"
)

// CookieOptions are the attributes of a Set-Cookie entry.
type CookieOptions struct {
	Path     string
	Domain   string
	Expires  time.Time
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// CookieOption configures a [Cookie].
type CookieOption func(*CookieOptions)

func CookiePath(path string) CookieOption {
	return func(co *CookieOptions) {
		co.Path = path
	}
}

func CookieDomain(domain string) CookieOption {
	return func(co *CookieOptions) {
		co.Domain = domain
	}
}

func CookieExpires(t time.Time) CookieOption {
	return func(co *CookieOptions) {
		co.Expires = t
	}
}

// CookieMaxAge sets Max-Age in whole seconds. A negative duration
// deletes the cookie.
func CookieMaxAge(d time.Duration) CookieOption {
	return func(co *CookieOptions) {
		co.MaxAge = int(d / time.Second)
		if d < 0 {
			co.MaxAge = -1
		}
	}
}

func CookieSecure(secure bool) CookieOption {
	return func(co *CookieOptions) {
		co.Secure = secure
	}
}

func CookieHTTPOnly(httpOnly bool) CookieOption {
	return func(co *CookieOptions) {
		co.HTTPOnly = httpOnly
	}
}

func CookieSameSite(mode http.SameSite) CookieOption {
	return func(co *CookieOptions) {
		co.SameSite = mode
	}
}

// Cookie is appended to a response as a Set-Cookie header when it is written.
type Cookie struct {
	Name    string
	Value   string
	Options CookieOptions
}

// NewCookie returns a Cookie scoped to the root path unless told otherwise.
func NewCookie(name, value string, opts ...CookieOption) Cookie {
	co := CookieOptions{
		Path: "/",
	}
	for _, opt := range opts {
		opt(&co)
	}
	return Cookie{
		Name:    name,
		Value:   value,
		Options: co,
	}
}

func (c Cookie) httpCookie() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Options.Path,
		Domain:   c.Options.Domain,
		Expires:  c.Options.Expires,
		MaxAge:   c.Options.MaxAge,
		Secure:   c.Options.Secure,
		HttpOnly: c.Options.HTTPOnly,
		SameSite: c.Options.SameSite,
	}
}

// String renders the Set-Cookie header value.
func (c Cookie) String() string {
	return c.httpCookie().String()
}
