// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package actionresult

import (
	"github.com/z5labs/httpbuildr/content"
	"github.com/z5labs/httpbuildr/response"
)

// MediaTypeProblem is the media type of a [ProblemDetails] body.
const MediaTypeProblem = "application/problem+json"

// ProblemDetails is a machine readable error body as described by RFC 9457.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// WithProblemDetails replaces the body of resp with pd. A zero Status is
// taken from the response.
func WithProblemDetails(resp response.Response, pd ProblemDetails) response.Response {
	if pd.Status == 0 {
		pd.Status = resp.StatusCode()
	}
	return resp.WithJsonContent(pd, content.JsonMediaType(MediaTypeProblem))
}

// Problem is shorthand for [WithProblemDetails] using the status of resp.
func Problem(resp response.Response, typ, title, detail, instance string) response.Response {
	return WithProblemDetails(resp, ProblemDetails{
		Type:     typ,
		Title:    title,
		Detail:   detail,
		Instance: instance,
	})
}
