// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"bytes"
	"encoding/xml"
	"reflect"
	"strings"
)

const xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>`

type xmlOptions struct {
	mediaType string
	namespace string
	prefix    string
	indent    string
	writer    func(*xml.Encoder) *xml.Encoder
}

// XmlOption configures how [Xml] encodes a value.
type XmlOption interface {
	ApplyXml(*xmlOptions)
}

type xmlOptionFunc func(*xmlOptions)

func (f xmlOptionFunc) ApplyXml(xo *xmlOptions) {
	f(xo)
}

// XmlMediaType overrides the default text/xml media type.
func XmlMediaType(mediaType string) XmlOption {
	return xmlOptionFunc(func(xo *xmlOptions) {
		xo.mediaType = mediaType
	})
}

// XmlNamespace sets the default namespace of the root element.
func XmlNamespace(ns string) XmlOption {
	return xmlOptionFunc(func(xo *xmlOptions) {
		xo.namespace = ns
	})
}

// XmlIndent pretty prints the encoded document.
func XmlIndent(prefix, indent string) XmlOption {
	return xmlOptionFunc(func(xo *xmlOptions) {
		xo.prefix = prefix
		xo.indent = indent
	})
}

// XmlWriter allows customizing the encoder before the value is written.
// Returning nil keeps the original encoder.
func XmlWriter(f func(*xml.Encoder) *xml.Encoder) XmlOption {
	return xmlOptionFunc(func(xo *xmlOptions) {
		xo.writer = f
	})
}

// Xml encodes v as a UTF-8 XML document prefixed with an XML declaration.
func Xml(v any, opts ...XmlOption) (*Content, error) {
	xo := &xmlOptions{
		mediaType: MediaTypeXml,
	}
	for _, opt := range opts {
		opt.ApplyXml(xo)
	}

	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)

	enc := xml.NewEncoder(&buf)
	if xo.prefix != "" || xo.indent != "" {
		enc.Indent(xo.prefix, xo.indent)
	}
	if xo.writer != nil {
		if custom := xo.writer(enc); custom != nil {
			enc = custom
		}
	}

	err := encodeXml(enc, v, xo.namespace)
	if err != nil {
		return nil, SerializationError{Format: "xml", Cause: err}
	}
	err = enc.Close()
	if err != nil {
		return nil, SerializationError{Format: "xml", Cause: err}
	}
	return Raw(buf.Bytes(), withCharset(xo.mediaType, "utf-8")), nil
}

func encodeXml(enc *xml.Encoder, v any, namespace string) error {
	if namespace == "" {
		return enc.Encode(v)
	}

	start := xml.StartElement{
		Name: xml.Name{
			Space: namespace,
			Local: rootElementName(v),
		},
	}
	return enc.EncodeElement(v, start)
}

func rootElementName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName("XMLName"); ok && f.Type == reflect.TypeOf(xml.Name{}) {
			tag, _, _ := strings.Cut(f.Tag.Get("xml"), ",")
			if i := strings.LastIndex(tag, " "); i >= 0 {
				tag = tag[i+1:]
			}
			if tag != "" {
				return tag
			}
		}
	}
	return t.Name()
}
