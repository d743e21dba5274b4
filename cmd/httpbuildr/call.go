// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/z5labs/httpbuildr/httpruntime"
	"github.com/z5labs/httpbuildr/request"

	"github.com/spf13/cobra"
)

// InvalidHeaderFlagError occurs when a --header value is not formatted as 'Name: value'.
type InvalidHeaderFlagError struct {
	Value string
}

// Error implements the [builtin.error] interface.
func (e InvalidHeaderFlagError) Error() string {
	return fmt.Sprintf("invalid header, expected 'Name: value': %q", e.Value)
}

func callOptions(cmd *cobra.Command) ([]httpruntime.CallOption[json.RawMessage], error) {
	headers, err := cmd.Flags().GetStringArray("header")
	if err != nil {
		return nil, err
	}

	opts := []httpruntime.CallOption[json.RawMessage]{
		httpruntime.WhenEmpty(func() (json.RawMessage, error) {
			return nil, nil
		}),
	}
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, InvalidHeaderFlagError{Value: h}
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		opts = append(opts, httpruntime.RequestModifier[json.RawMessage](func(r request.Request) request.Request {
			return r.WithHeader(name, value)
		}))
	}
	return opts, nil
}

func printJson(w io.Writer, body json.RawMessage) error {
	if len(body) == 0 {
		return nil
	}

	var buf bytes.Buffer
	err := json.Indent(&buf, body, "", "  ")
	if err != nil {
		return err
	}
	buf.WriteByte('\n')

	_, err = buf.WriteTo(w)
	return err
}
