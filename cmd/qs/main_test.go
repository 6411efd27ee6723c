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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/qs"
	qsmsgpack "rivaas.dev/qs/msgpack"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDecodeCommand(t *testing.T) {
	t.Parallel()

	t.Run("argument", func(t *testing.T) {
		t.Parallel()

		out, _, err := run(t, "", "decode", "filters[status]=active&page=2")
		require.NoError(t, err)
		assert.JSONEq(t, `{"filters":{"status":"active"},"page":2}`, out)
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		out, _, err := run(t, "?q=red+shoes\n", "decode")
		require.NoError(t, err)
		assert.JSONEq(t, `{"q":"red shoes"}`, out)
	})

	t.Run("yaml output", func(t *testing.T) {
		t.Parallel()

		out, _, err := run(t, "", "decode", "--format", "yaml", "sort=price&page=2")
		require.NoError(t, err)
		assert.Equal(t, "sort: price\npage: 2\n", out)
	})

	t.Run("msgpack output", func(t *testing.T) {
		t.Parallel()

		out, _, err := run(t, "", "decode", "-f", "msgpack", "page=2")
		require.NoError(t, err)

		v, err := qsmsgpack.Unmarshal([]byte(out))
		require.NoError(t, err)
		assert.True(t, qs.Equal(qs.ObjectOf(qs.F("page", qs.Int(2))), v))
	})

	t.Run("html kept literal", func(t *testing.T) {
		t.Parallel()

		out, _, err := run(t, "", "decode", "q=%3Ca%26b%3E")
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"q\": \"<a&b>\"\n}\n", out)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "", "decode", "--format", "xml", "a=1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown format "xml"`)
	})
}

func TestDecodeCommand_Drops(t *testing.T) {
	t.Parallel()

	t.Run("verbose logs drops", func(t *testing.T) {
		t.Parallel()

		out, stderr, err := run(t, "", "decode", "--verbose", "--max-index", "5", "items[7]=x&ok=1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":1}`, out)
		assert.Contains(t, stderr, "reason=index_out_of_range")
	})

	t.Run("quiet by default", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "", "decode", "items[99999]=x")
		require.NoError(t, err)
		assert.Empty(t, stderr)
	})

	t.Run("strict fails", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "", "decode", "--strict", "a=1&a[0]=2&a[b]=3")
		require.ErrorIs(t, err, qs.ErrKindConflict)
	})

	t.Run("strict rejects malformed query", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "", "decode", "--strict", "a=1;b=2")
		require.ErrorIs(t, err, qs.ErrInvalidSemicolon)
	})

	t.Run("problem details", func(t *testing.T) {
		t.Parallel()

		out, _, err := run(t, "", "decode", "--strict", "--problem", "--max-index", "5", "items[7]=x")
		require.ErrorIs(t, err, qs.ErrIndexOutOfRange)
		assert.JSONEq(t, `{
			"type": "dropped_parameters",
			"title": "Bad Request",
			"status": 400,
			"detail": "dropped parameter \"items[7]\": array index out of range",
			"code": "dropped_parameters",
			"invalid-params": [{"name": "items[7]", "reason": "index_out_of_range"}]
		}`, out)
	})

	t.Run("lenient warns on malformed query", func(t *testing.T) {
		t.Parallel()

		out, stderr, err := run(t, "", "decode", "a=%zz&b=2")
		require.NoError(t, err)
		assert.JSONEq(t, `{"b":2}`, out)
		assert.Contains(t, stderr, "skipped malformed query segment")
	})
}

func TestDecodeCommand_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "defaults.toml", "page = 1\nlimit = 10\n"},
		{"yaml", "defaults.yaml", "page: 1\nlimit: 10\n"},
		{"json", "defaults.json", `{"page":1,"limit":10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, tt.file, tt.content)
			out, _, err := run(t, "", "decode", "--defaults", path, "page=5")
			require.NoError(t, err)
			assert.JSONEq(t, `{"page":5,"limit":10}`, out)
		})
	}

	t.Run("json root must be an object", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "defaults.json", `[1,2]`)
		_, _, err := run(t, "", "decode", "--defaults", path, "page=5")
		require.ErrorIs(t, err, qs.ErrNotObject)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "defaults.ini", "page=1")
		_, _, err := run(t, "", "decode", "--defaults", path, "page=5")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `".ini"`)
	})
}

func TestEncodeCommand(t *testing.T) {
	t.Parallel()

	t.Run("json stdin", func(t *testing.T) {
		t.Parallel()

		out, _, err := run(t, `{"filters":{"status":"active"},"page":2,"q":null}`, "encode")
		require.NoError(t, err)
		assert.Equal(t, "filters[status]=active&page=2\n", out)
	})

	t.Run("href", func(t *testing.T) {
		t.Parallel()

		out, _, err := run(t, `{"page":2}`, "encode", "--path", "/products?page=1#grid")
		require.NoError(t, err)
		assert.Equal(t, "/products?page=2#grid\n", out)
	})

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "state.yml", "sort: price\ntags:\n  - new\n  - sale\n")
		out, _, err := run(t, "", "encode", path)
		require.NoError(t, err)
		assert.Equal(t, "sort=price&tags[0]=new&tags[1]=sale\n", out)
	})

	t.Run("bad input", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, `{"a":`, "encode")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse json input")
	})
}

func TestInferCommand(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "", "infer", "42", "true", "hello", "9007199254740993")
	require.NoError(t, err)
	assert.Equal(t, "number\t42\nbool\ttrue\nstring\t\"hello\"\nstring\t\"9007199254740993\"\n", out)

	_, _, err = run(t, "", "infer")
	require.Error(t, err)
}

func TestRootCommand_InvalidLimits(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "", "--max-index", "0", "infer", "1")
	require.ErrorIs(t, err, qs.ErrInvalidLimit)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, _, err = run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, "dev")
	assert.Contains(t, out, "Commit:")
}
