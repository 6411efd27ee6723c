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

// Package yaml provides YAML support for the qs package.
//
// This package converts between YAML documents and rivaas.dev/qs value
// trees, using gopkg.in/yaml.v3 nodes so that mapping order survives in
// both directions. It is typically used to load query defaults from a file
// or to render a decoded query for humans.
//
// Example:
//
//	defaults, err := yaml.UnmarshalObject(body)
//	if err != nil {
//	    // handle error
//	}
//	tree := qs.Merge(defaults, decoded)
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"rivaas.dev/qs"
)

// Option configures YAML encoding behavior.
type Option func(*config)

// config holds YAML-specific configuration.
type config struct {
	indent int
}

// WithIndent sets the number of spaces used for nesting. The default is 2.
func WithIndent(spaces int) Option {
	return func(c *config) {
		c.indent = spaces
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{indent: 2}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Marshal renders v as a YAML document. Object fields keep insertion order,
// undefined fields are left out and array gaps become null.
//
// Example:
//
//	out, err := yaml.Marshal(qs.ObjectValue(tree))
func Marshal(v qs.Value, opts ...Option) ([]byte, error) {
	cfg := applyOptions(opts)

	node, err := toNode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(cfg.indent)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("yaml: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml: encode: %w", err)
	}

	return buf.Bytes(), nil
}

func toNode(v qs.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case qs.KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, child := range v.Object().All() {
			if child.Kind() == qs.KindUndefined {
				continue
			}
			key := &yaml.Node{}
			if err := key.Encode(k); err != nil {
				return nil, err
			}
			val, err := toNode(child)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			node.Content = append(node.Content, key, val)
		}
		return node, nil
	case qs.KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, child := range v.Array().All() {
			val, err := toNode(child)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			node.Content = append(node.Content, val)
		}
		return node, nil
	}

	// Scalars go through the library encoder so that strings such as "true"
	// or "42" are quoted and read back as strings.
	node := &yaml.Node{}
	if err := node.Encode(v.Interface()); err != nil {
		return nil, err
	}

	return node, nil
}

// Unmarshal parses a YAML document into a value tree. Mapping order is
// kept. A null sequence item reads back as an array gap; a null mapping
// value stays null. An empty document is null.
//
// Errors:
//   - [qs.ErrUnsupportedValue]: a mapping key is not a scalar, or a number is
//     not finite
func Unmarshal(data []byte) (qs.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return qs.Value{}, fmt.Errorf("yaml: %w", err)
	}

	return fromDocument(&doc)
}

// UnmarshalReader parses one YAML document from r. See [Unmarshal].
func UnmarshalReader(r io.Reader) (qs.Value, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return qs.Null(), nil
		}
		return qs.Value{}, fmt.Errorf("yaml: %w", err)
	}

	return fromDocument(&doc)
}

// UnmarshalObject parses a YAML document whose root must be a mapping.
//
// Example:
//
//	defaults, err := yaml.UnmarshalObject([]byte("page: 1\nlimit: 10\n"))
//
// Errors:
//   - [qs.ErrNotObject]: the document root is not a mapping
func UnmarshalObject(data []byte) (*qs.Object, error) {
	v, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if v.Kind() != qs.KindObject {
		return nil, fmt.Errorf("yaml: document root is %s: %w", v.Kind(), qs.ErrNotObject)
	}

	return v.Object(), nil
}

func fromDocument(doc *yaml.Node) (qs.Value, error) {
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return qs.Null(), nil
	}

	return fromNode(doc.Content[0], false)
}

func fromNode(node *yaml.Node, inSeq bool) (qs.Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return fromNode(node.Alias, inSeq)
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return qs.Null(), nil
		}
		return fromNode(node.Content[0], inSeq)
	case yaml.MappingNode:
		fields := make([]qs.Field, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return qs.Value{}, fmt.Errorf("yaml: line %d: %w: non-scalar mapping key",
					key.Line, qs.ErrUnsupportedValue)
			}
			val, err := fromNode(node.Content[i+1], false)
			if err != nil {
				return qs.Value{}, err
			}
			fields = append(fields, qs.F(key.Value, val))
		}
		return qs.ObjectOf(fields...), nil
	case yaml.SequenceNode:
		items := make([]qs.Value, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := fromNode(child, true)
			if err != nil {
				return qs.Value{}, err
			}
			items = append(items, val)
		}
		return qs.ArrayOf(items...), nil
	default:
		return fromScalar(node, inSeq)
	}
}

func fromScalar(node *yaml.Node, inSeq bool) (qs.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		if inSeq {
			return qs.Undefined(), nil
		}
		return qs.Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return qs.Value{}, fmt.Errorf("yaml: line %d: %w", node.Line, err)
		}
		return qs.Bool(b), nil
	case "!!int", "!!float":
		var n float64
		if err := node.Decode(&n); err != nil {
			return qs.Value{}, fmt.Errorf("yaml: line %d: %w", node.Line, err)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return qs.Value{}, fmt.Errorf("yaml: line %d: %w: non-finite number %q",
				node.Line, qs.ErrUnsupportedValue, node.Value)
		}
		return qs.Number(n), nil
	default:
		// Strings, timestamps and binary stay in their source text.
		return qs.String(node.Value), nil
	}
}
