// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/z5labs/httpbuildr/httpruntime"

	"github.com/spf13/cobra"
)

var errInvalidData = errors.New("--data must be a JSON document")

func newPostCmd() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "post CLIENT URL",
		Short: "POST a JSON document with a named client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readData(data)
			if err != nil {
				return err
			}

			opts, err := callOptions(cmd)
			if err != nil {
				return err
			}

			resp, err := httpruntime.Post(cmd.Context(), args[0], args[1], body, opts...)
			if err != nil {
				return err
			}
			return printJson(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "{}", "JSON body, or @path to read it from a file")
	return cmd
}

func readData(data string) (json.RawMessage, error) {
	b := []byte(data)
	if path, ok := strings.CutPrefix(data, "@"); ok {
		var err error
		b, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	if !json.Valid(b) {
		return nil, errInvalidData
	}
	return json.RawMessage(b), nil
}
