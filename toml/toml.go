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

// Package toml provides TOML support for the qs package.
//
// This package reads TOML documents into rivaas.dev/qs objects, using
// github.com/BurntSushi/toml for parsing. Key order follows the document.
// It is meant for loading query defaults from configuration files; TOML
// has no null, so trees are not written back.
//
// Example:
//
//	defaults, err := toml.Unmarshal(body)
//	if err != nil {
//	    // handle error
//	}
//	tree := qs.Merge(defaults, decoded)
package toml

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"rivaas.dev/qs"
)

// Unmarshal parses a TOML document into an object.
//
// Integers and floats become numbers, dates and times keep their TOML
// text (RFC 3339 for offset date-times), and tables keep the order in
// which their keys first appear.
func Unmarshal(data []byte) (*qs.Object, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}

	return build(raw, md)
}

// UnmarshalReader parses a TOML document from r. See [Unmarshal].
func UnmarshalReader(r io.Reader) (*qs.Object, error) {
	var raw map[string]any
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}

	return build(raw, md)
}

// keyOrder records, per table path, child names in document order.
type keyOrder map[string][]string

func newKeyOrder(md toml.MetaData) keyOrder {
	order := make(keyOrder)
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		for i := range key {
			full := strings.Join(key[:i+1], "\x00")
			if seen[full] {
				continue
			}
			seen[full] = true
			parent := strings.Join(key[:i], "\x00")
			order[parent] = append(order[parent], key[i])
		}
	}

	return order
}

// keys returns the names of m in document order. Names the metadata does
// not know about follow in sorted order.
func (o keyOrder) keys(path string, m map[string]any) []string {
	out := make([]string, 0, len(m))
	for _, k := range o[path] {
		if _, ok := m[k]; ok {
			out = append(out, k)
		}
	}
	if len(out) == len(m) {
		return out
	}

	var rest []string
	for k := range m {
		if !slices.Contains(out, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)

	return append(out, rest...)
}

func build(raw map[string]any, md toml.MetaData) (*qs.Object, error) {
	v, err := convert(raw, "", newKeyOrder(md))
	if err != nil {
		return nil, err
	}

	return v.Object(), nil
}

func convert(x any, path string, order keyOrder) (qs.Value, error) {
	switch t := x.(type) {
	case map[string]any:
		fields := make([]qs.Field, 0, len(t))
		for _, k := range order.keys(path, t) {
			child, err := convert(t[k], childPath(path, k), order)
			if err != nil {
				return qs.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			fields = append(fields, qs.F(k, child))
		}
		return qs.ObjectOf(fields...), nil
	case []map[string]any:
		items := make([]qs.Value, 0, len(t))
		for _, m := range t {
			child, err := convert(m, path, order)
			if err != nil {
				return qs.Value{}, err
			}
			items = append(items, child)
		}
		return qs.ArrayOf(items...), nil
	case []any:
		items := make([]qs.Value, 0, len(t))
		for i, item := range t {
			child, err := convert(item, path, order)
			if err != nil {
				return qs.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, child)
		}
		return qs.ArrayOf(items...), nil
	case int64:
		return qs.Number(float64(t)), nil
	case float64:
		return qs.Number(t), nil
	case bool:
		return qs.Bool(t), nil
	case string:
		return qs.String(t), nil
	case time.Time:
		return qs.String(formatTime(t)), nil
	}

	return qs.Value{}, fmt.Errorf("%w: %T", qs.ErrUnsupportedValue, x)
}

// formatTime renders t the way it was written. The decoder marks local
// dates and times with fixed zones named after their TOML type.
func formatTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format(time.DateOnly)
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "\x00" + key
}
