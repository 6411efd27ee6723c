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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/qs"
	qsmsgpack "rivaas.dev/qs/msgpack"
	"rivaas.dev/qs/problem"
	qstoml "rivaas.dev/qs/toml"
	qsyaml "rivaas.dev/qs/yaml"
)

func decodeCmd(g *globals) *cobra.Command {
	var (
		format    string
		defaults  string
		strict    bool
		asProblem bool
	)

	cmd := &cobra.Command{
		Use:   "decode [query]",
		Short: "Decode a query string into a tree",
		Long: `Decode a query string into a nested tree and print it.

The query is read from the argument, or from stdin when no argument is
given. A leading "?" is ignored. Pairs that cannot be placed (empty keys,
out-of-range indices, keys that mix objects and arrays) are dropped; use
--verbose to see them or --strict to fail.

Examples:
  qs decode 'filters[status]=active&page=2'
  qs decode --format yaml '?sort=price&tags[0]=new'
  echo 'page=5' | qs decode --defaults defaults.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			err = runDecode(cmd.OutOrStdout(), g, query, format, defaults, strict)
			if err != nil && asProblem {
				writeProblem(cmd.OutOrStdout(), err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml, msgpack)")
	cmd.Flags().StringVarP(&defaults, "defaults", "d", "", "Defaults file merged under the result (.json, .yaml, .yml, .toml)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the query is malformed or a parameter is dropped")
	cmd.Flags().BoolVar(&asProblem, "problem", false, "Print failures as RFC 9457 problem details on stdout")

	return cmd
}

func readQuery(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := readAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read query: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func runDecode(w io.Writer, g *globals, query, format, defaults string, strict bool) error {
	pairs, err := qs.ParseQuery(query)
	if err != nil {
		if strict {
			return err
		}
		g.logger.Warn("qs: skipped malformed query segment", "error", err)
	}

	var tree *qs.Object
	if strict {
		tree, err = g.codec.DecodeStrict(pairs)
		if err != nil {
			return err
		}
	} else {
		tree = g.codec.Decode(pairs)
	}

	if defaults != "" {
		base, err := loadDefaults(defaults)
		if err != nil {
			return err
		}
		tree = qs.Merge(base, tree)
	}

	return writeTree(w, format, qs.ObjectValue(tree))
}

func loadDefaults(path string) (*qs.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults: %w", err)
	}

	var defaults *qs.Object
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		defaults, err = qstoml.Unmarshal(data)
	case ".yaml", ".yml":
		defaults, err = qsyaml.UnmarshalObject(data)
	case ".json":
		var v qs.Value
		if err = json.Unmarshal(data, &v); err == nil {
			if v.Kind() != qs.KindObject {
				err = fmt.Errorf("document root is %s: %w", v.Kind(), qs.ErrNotObject)
			}
			defaults = v.Object()
		}
	default:
		return nil, fmt.Errorf("unsupported defaults file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse defaults %s: %w", path, err)
	}

	return defaults, nil
}

func writeTree(w io.Writer, format string, v qs.Value) error {
	var (
		out []byte
		err error
	)

	switch format {
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
		out = buf.Bytes()
	case "yaml":
		out, err = qsyaml.Marshal(v)
	case "msgpack":
		out, err = qsmsgpack.Marshal(v)
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or msgpack)", format)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

func writeProblem(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(problem.New(problem.WithoutErrorID()).Format("", err))
}
