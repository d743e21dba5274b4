// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpruntime

import (
	"errors"
	"fmt"
)

// Kind is the closed set of ways a call can fail. The numeric value of
// a Kind is its error code.
type Kind int

const (
	// NoHttpFactory means no client factory could be found for the call.
	NoHttpFactory Kind = 500 + iota

	// UnregisteredClient means the factory does not know the named client.
	UnregisteredClient

	// InvalidEndpoint means the request could not be sent.
	InvalidEndpoint

	// FailedApiCall means the server responded with a non 2xx status code.
	FailedApiCall

	// IncompatibleResponse means the response body could not be decoded.
	IncompatibleResponse
)

// Code returns the numeric error code.
func (k Kind) Code() int {
	return int(k)
}

// String implements the [fmt.Stringer] interface.
func (k Kind) String() string {
	switch k {
	case NoHttpFactory:
		return "no factory"
	case UnregisteredClient:
		return "no httpclient"
	case InvalidEndpoint:
		return "invalid endpoint"
	case FailedApiCall:
		return "failed api call"
	case IncompatibleResponse:
		return "invalid data"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

// Error is returned by every call which fails for an expected reason.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Sentinel values for matching with [errors.Is]. Only the Kind is compared.
var (
	ErrNoHttpFactory        = Error{Kind: NoHttpFactory, Message: NoHttpFactory.String()}
	ErrUnregisteredClient   = Error{Kind: UnregisteredClient, Message: UnregisteredClient.String()}
	ErrInvalidEndpoint      = Error{Kind: InvalidEndpoint, Message: InvalidEndpoint.String()}
	ErrFailedApiCall        = Error{Kind: FailedApiCall, Message: FailedApiCall.String()}
	ErrIncompatibleResponse = Error{Kind: IncompatibleResponse, Message: IncompatibleResponse.String()}
)

// Code returns the numeric code of the error Kind.
func (e Error) Code() int {
	return e.Kind.Code()
}

// Error implements the [builtin.error] interface.
func (e Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Cause == nil {
		return fmt.Sprintf("%d: %s", e.Code(), msg)
	}
	return fmt.Sprintf("%d: %s: %s", e.Code(), msg, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an Error of the same Kind.
func (e Error) Is(target error) bool {
	switch t := target.(type) {
	case Error:
		return t.Kind == e.Kind
	case *Error:
		return t != nil && t.Kind == e.Kind
	default:
		return false
	}
}

// StatusCodeError is the cause of a [FailedApiCall].
type StatusCodeError struct {
	StatusCode   int
	ReasonPhrase string
}

// Error implements the [builtin.error] interface.
func (e StatusCodeError) Error() string {
	return fmt.Sprintf("unexpected response status: %d %s", e.StatusCode, e.ReasonPhrase)
}

// BuildError occurs when the request for a call could not be built,
// for example because of an invalid url or an unencodable body. It is
// never reported as an [Error].
type BuildError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e BuildError) Error() string {
	return fmt.Sprintf("failed to build request: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e BuildError) Unwrap() error {
	return e.Cause
}

// ErrClientNotRegistered is returned by a [Registry] for an unknown name.
var ErrClientNotRegistered = errors.New("http client not registered")

// CodeOf returns the error code of err or 0 if err is not an [Error].
func CodeOf(err error) int {
	var e Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return 0
}
