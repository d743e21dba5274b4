// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package content

import (
	"net/url"
	"sort"
	"strings"
)

// Text returns a UTF-8 text body. The media type defaults to text/plain.
func Text(s string, mediaType ...string) *Content {
	mt := MediaTypeText
	if len(mediaType) > 0 && mediaType[0] != "" {
		mt = mediaType[0]
	}
	return Raw([]byte(s), withCharset(mt, "utf-8"))
}

// Pair is a single form field. Pairs keep their order when encoded.
type Pair struct {
	Key   string
	Value string
}

// KV returns a Pair.
func KV(key, value string) Pair {
	return Pair{Key: key, Value: value}
}

// FormUrl encodes the pairs as an application/x-www-form-urlencoded body.
func FormUrl(pairs ...Pair) *Content {
	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return Raw([]byte(sb.String()), MediaTypeForm)
}

// FormUrlMap encodes m as an application/x-www-form-urlencoded body
// with its keys sorted.
func FormUrlMap(m map[string]string) *Content {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, KV(k, m[k]))
	}
	return FormUrl(pairs...)
}
