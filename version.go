// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpbuildr

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a HTTP protocol version.
type Version struct {
	Major int
	Minor int
}

var (
	Version10 = Version{Major: 1, Minor: 0}
	Version11 = Version{Major: 1, Minor: 1}
	Version20 = Version{Major: 2, Minor: 0}
	Version30 = Version{Major: 3, Minor: 0}
)

// DefaultVersion is the version every message is created with
// unless told otherwise.
var DefaultVersion = Version20

// IsZero reports whether v is the zero Version.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

// OrDefault returns v unless it is the zero Version, in which case
// [DefaultVersion] is returned.
func (v Version) OrDefault() Version {
	if v.IsZero() {
		return DefaultVersion
	}
	return v
}

// String implements the [fmt.Stringer] interface.
func (v Version) String() string {
	return fmt.Sprintf("HTTP/%d.%d", v.Major, v.Minor)
}

// InvalidVersionError occurs when a protocol string can not be parsed.
type InvalidVersionError struct {
	Proto string
}

// Error implements the [builtin.error] interface.
func (e InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid http protocol version: %q", e.Proto)
}

// ParseVersion parses protocol strings like "HTTP/1.1" or "HTTP/2".
func ParseVersion(proto string) (Version, error) {
	rest, ok := strings.CutPrefix(proto, "HTTP/")
	if !ok {
		return Version{}, InvalidVersionError{Proto: proto}
	}

	majorStr, minorStr, hasMinor := strings.Cut(rest, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return Version{}, InvalidVersionError{Proto: proto}
	}
	if !hasMinor {
		return Version{Major: major}, nil
	}

	minor, err := strconv.Atoi(minorStr)
	if err != nil || minor < 0 {
		return Version{}, InvalidVersionError{Proto: proto}
	}
	return Version{Major: major, Minor: minor}, nil
}
