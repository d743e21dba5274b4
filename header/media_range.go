// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package header

import (
	"strconv"
	"strings"

	"github.com/z5labs/httpbuildr/pkg/ptr"
)

// MediaRange is a single entry of an Accept header.
type MediaRange struct {
	MediaType string

	// Quality is only rendered when set. A nil Quality and a Quality
	// of 1 are different wire representations.
	Quality *float64
}

// Media returns a MediaRange without a quality parameter.
func Media(mediaType string) MediaRange {
	return MediaRange{MediaType: mediaType}
}

// MediaWithQuality returns a MediaRange with an explicit quality.
func MediaWithQuality(mediaType string, q float64) MediaRange {
	return MediaRange{MediaType: mediaType, Quality: ptr.Ref(q)}
}

// Q returns the quality of m, defaulting to 1 when it is not set.
func (m MediaRange) Q() float64 {
	return ptr.Or(m.Quality, 1)
}

// String implements the [fmt.Stringer] interface.
func (m MediaRange) String() string {
	if m.Quality == nil {
		return m.MediaType
	}
	return m.MediaType + "; q=" + strconv.FormatFloat(*m.Quality, 'f', -1, 64)
}

// ParseMediaRanges parses the comma separated entries of an Accept header.
// Entries with an unparsable quality keep a nil Quality.
func ParseMediaRanges(s string) []MediaRange {
	var ranges []MediaRange
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		params := strings.Split(entry, ";")
		mr := MediaRange{MediaType: strings.TrimSpace(params[0])}
		for _, p := range params[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				continue
			}
			mr.Quality = ptr.Ref(q)
		}
		ranges = append(ranges, mr)
	}
	return ranges
}
