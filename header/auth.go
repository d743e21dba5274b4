// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package header

import (
	"encoding/base64"
	"strings"
)

// Authentication is the value of an Authorization or
// Proxy-Authorization header.
type Authentication struct {
	Scheme    string
	Parameter string
}

// Bearer returns a bearer token Authentication.
func Bearer(token string) Authentication {
	return Authentication{Scheme: "Bearer", Parameter: token}
}

// Basic returns a basic Authentication from an already encoded token.
func Basic(token string) Authentication {
	return Authentication{Scheme: "Basic", Parameter: token}
}

// BasicAuth returns a basic Authentication encoding the user and password.
func BasicAuth(user, password string) Authentication {
	token := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
	return Basic(token)
}

// String implements the [fmt.Stringer] interface.
func (a Authentication) String() string {
	if a.Parameter == "" {
		return a.Scheme
	}
	return a.Scheme + " " + a.Parameter
}

// ParseAuthentication splits a header value into its scheme and parameter.
func ParseAuthentication(s string) Authentication {
	scheme, param, _ := strings.Cut(strings.TrimSpace(s), " ")
	return Authentication{
		Scheme:    scheme,
		Parameter: strings.TrimSpace(param),
	}
}
