// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package header

import (
	"errors"
	"strings"
)

// EntityTag is an opaque validator for a representation.
type EntityTag struct {
	// Tag may be given with or without its surrounding quotes.
	Tag  string
	Weak bool
}

// StrongTag returns a strong EntityTag.
func StrongTag(tag string) EntityTag {
	return EntityTag{Tag: tag}
}

// WeakTag returns a weak EntityTag.
func WeakTag(tag string) EntityTag {
	return EntityTag{Tag: tag, Weak: true}
}

// String implements the [fmt.Stringer] interface.
func (e EntityTag) String() string {
	tag := e.Tag
	if tag != "*" && !(len(tag) >= 2 && strings.HasPrefix(tag, `"`) && strings.HasSuffix(tag, `"`)) {
		tag = `"` + tag + `"`
	}
	if e.Weak {
		return "W/" + tag
	}
	return tag
}

// ErrInvalidEntityTag is returned when an entity tag is not quoted.
var ErrInvalidEntityTag = errors.New("entity tag must be a quoted string")

// ParseEntityTag parses the value of an ETag header.
func ParseEntityTag(s string) (EntityTag, error) {
	s = strings.TrimSpace(s)
	if s == "*" {
		return EntityTag{Tag: s}, nil
	}

	weak := false
	if rest, ok := strings.CutPrefix(s, "W/"); ok {
		weak = true
		s = rest
	}
	if len(s) < 2 || !strings.HasPrefix(s, `"`) || !strings.HasSuffix(s, `"`) {
		return EntityTag{}, ErrInvalidEntityTag
	}
	return EntityTag{Tag: s, Weak: weak}, nil
}
