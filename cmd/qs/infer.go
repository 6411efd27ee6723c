// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func inferCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "infer value...",
		Short: "Show how raw values are typed",
		Long: `Print the inferred kind and JSON form of each raw value, one per line.

Examples:
  qs infer 42 true hello 9007199254740993`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, raw := range args {
				v := g.codec.Infer(raw)
				if _, err := fmt.Fprintf(w, "%s\t%s\n", v.Kind(), v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
