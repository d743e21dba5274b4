// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package request

import (
	"github.com/z5labs/httpbuildr/content"
)

// WithContent replaces the body. A nil Content removes it.
func (r Request) WithContent(c *content.Content) Request {
	r.msg = r.msg.WithContent(c)
	return r
}

// WithJsonContent replaces the body with v encoded as JSON. An encoding
// failure is recorded and returned by [Request.Err].
func (r Request) WithJsonContent(v any, opts ...content.JsonOption) Request {
	c, err := content.Json(v, opts...)
	if err != nil {
		r.msg = r.msg.WithError(err)
		return r
	}
	return r.WithContent(c)
}

// WithJsonData accepts a JSON response and sends v as a JSON body.
func (r Request) WithJsonData(v any, opts ...content.JsonOption) Request {
	return r.WithAccept(content.MediaTypeJson).WithJsonContent(v, opts...)
}

func (r Request) WithXmlContent(v any, opts ...content.XmlOption) Request {
	c, err := content.Xml(v, opts...)
	if err != nil {
		r.msg = r.msg.WithError(err)
		return r
	}
	return r.WithContent(c)
}

// WithTextContent replaces the body with text. The media type defaults to text/plain.
func (r Request) WithTextContent(text string, mediaType ...string) Request {
	return r.WithContent(content.Text(text, mediaType...))
}

func (r Request) WithFormUrlContent(pairs ...content.Pair) Request {
	return r.WithContent(content.FormUrl(pairs...))
}
