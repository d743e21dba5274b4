// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"

	"github.com/z5labs/httpbuildr/httpruntime"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get CLIENT URL",
		Short: "GET a JSON document with a named client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := callOptions(cmd)
			if err != nil {
				return err
			}

			body, err := httpruntime.GetJson[json.RawMessage](cmd.Context(), args[0], args[1], opts...)
			if err != nil {
				return err
			}
			return printJson(cmd.OutOrStdout(), body)
		},
	}
}
