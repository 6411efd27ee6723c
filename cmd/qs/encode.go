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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/qs"
	qsmsgpack "rivaas.dev/qs/msgpack"
	qsyaml "rivaas.dev/qs/yaml"
)

func encodeCmd(g *globals) *cobra.Command {
	var (
		path        string
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a tree into a query string",
		Long: `Encode a JSON, YAML or MessagePack tree into a query string.

The tree is read from the file, or from stdin when no file is given. The
input format follows the file extension unless --input-format is set.
Null leaves are left out, which is how parameters are cleared.

Examples:
  echo '{"filters":{"status":"active"},"page":2}' | qs encode
  qs encode --path /products state.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if inputFormat == "" {
				inputFormat = formatFromExt(name)
			}

			v, err := parseTree(data, inputFormat)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if path != "" {
				_, err = fmt.Fprintln(w, qs.Href(path, v))
				return err
			}
			_, err = fmt.Fprintln(w, g.codec.Encode(v).Encode())
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Print a location with this path instead of a bare query")
	cmd.Flags().StringVarP(&inputFormat, "input-format", "i", "", "Input format (json, yaml, msgpack)")

	return cmd
}

func readInput(stdin io.Reader, args []string) ([]byte, string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("failed to read input: %w", err)
		}
		return data, args[0], nil
	}

	data, err := readAll(stdin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read input: %w", err)
	}

	return data, "", nil
}

func formatFromExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".msgpack", ".mp":
		return "msgpack"
	default:
		return "json"
	}
}

func parseTree(data []byte, format string) (qs.Value, error) {
	var (
		v   qs.Value
		err error
	)

	switch format {
	case "json":
		err = json.Unmarshal(data, &v)
	case "yaml":
		v, err = qsyaml.Unmarshal(data)
	case "msgpack":
		v, err = qsmsgpack.Unmarshal(data)
	default:
		return qs.Value{}, fmt.Errorf("unknown input format %q (want json, yaml or msgpack)", format)
	}
	if err != nil {
		return qs.Value{}, fmt.Errorf("failed to parse %s input: %w", format, err)
	}

	return v, nil
}
