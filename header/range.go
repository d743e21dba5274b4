// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package header

import (
	"strconv"

	"github.com/z5labs/httpbuildr/pkg/ptr"
)

// RangeValue is the value of a Range header with a single range.
// At least one of From or To should be set.
type RangeValue struct {
	Unit string
	From *int64
	To   *int64
}

// Bytes returns the byte range [from, to].
func Bytes(from, to int64) RangeValue {
	return RangeValue{Unit: "bytes", From: ptr.Ref(from), To: ptr.Ref(to)}
}

// BytesFrom returns the open ended byte range starting at from.
func BytesFrom(from int64) RangeValue {
	return RangeValue{Unit: "bytes", From: ptr.Ref(from)}
}

// BytesSuffix returns the range covering the last n bytes.
func BytesSuffix(n int64) RangeValue {
	return RangeValue{Unit: "bytes", To: ptr.Ref(n)}
}

// String implements the [fmt.Stringer] interface.
func (r RangeValue) String() string {
	unit := r.Unit
	if unit == "" {
		unit = "bytes"
	}

	var from, to string
	if r.From != nil {
		from = strconv.FormatInt(*r.From, 10)
	}
	if r.To != nil {
		to = strconv.FormatInt(*r.To, 10)
	}
	return unit + "=" + from + "-" + to
}
