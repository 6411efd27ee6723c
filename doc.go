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

// Package qs converts between bracket-notation query parameters and nested
// value trees.
//
// A query such as
//
//	?filters[status]=active&filters[category]=electronics&items[0]=a&page=2
//
// decodes into objects, arrays and typed scalars:
//
//	{"filters":{"status":"active","category":"electronics"},"items":["a"],"page":2}
//
// and encodes back into the same ordered pairs. This is the representation
// used to keep UI state such as filters, sorting and pagination in the URL.
//
// # Quick Start
//
//	pairs, err := qs.ParseQuery(r.URL.RawQuery)
//	if err != nil {
//	    // reject at the boundary
//	}
//	state := qs.Merge(defaults, qs.Decode(pairs))
//
//	// later, after the user changes a filter
//	next := state.With("page", qs.Int(1))
//	location := qs.Href("/products", qs.ObjectValue(next))
//
// # Values
//
// [Value] is a tagged variant: undefined, null, bool, number, string,
// [Object] or [Array]. Objects remember insertion order; arrays are sparse
// and their gaps hold the undefined marker. Trees are never mutated after
// they are returned; derive new ones with [Object.With], [Object.Without]
// and the constructors.
//
// # Scalar Inference
//
// Decoded leaves pass through [Infer]: decimal numbers become numbers,
// "true"/"false"/"null"/"undefined" become keywords, everything else stays
// a string. Integers beyond [MaxSafeInteger] stay strings so no precision
// is lost silently.
//
// # Clearing
//
// Null and undefined leaves produce no pairs, which removes the parameter.
// A null or undefined root removes every parameter:
//
//	qs.Href("/products?page=3", qs.Null()) // "/products"
//
// # Security Limits
//
// Query strings are attacker controlled. Built-in limits degrade instead of
// failing:
//
//   - Values longer than 1000 bytes skip inference (WithMaxScalarLen)
//   - Array indices must be below 10,000; other pairs are dropped (WithMaxArrayIndex)
//   - A path reused as both object and array keeps its first kind; the
//     conflicting pair is dropped
//
// Use [Codec.DecodeStrict] to learn which pairs were dropped, or observe
// them with [WithEvents] and [WithLogger].
//
// # Binding and Lookup
//
// [Bind] copies a decoded tree into a struct using "qs" field tags, and
// [Object.Lookup] reads a single leaf by its bracket key:
//
//	var f struct {
//	    Page  int      `qs:"page"`
//	    Tags  []string `qs:"tags"`
//	}
//	err := qs.Bind(tree, &f)
//	status := tree.LookupString("filters[status]")
//
// # Additional Formats
//
// Trees can be exchanged with other encodings through sub-packages:
//
//   - rivaas.dev/qs/yaml: YAML (gopkg.in/yaml.v3)
//   - rivaas.dev/qs/toml: TOML defaults files (github.com/BurntSushi/toml)
//   - rivaas.dev/qs/msgpack: MessagePack (github.com/vmihailenco/msgpack/v5)
//   - rivaas.dev/qs/proto: google.protobuf.Struct (google.golang.org/protobuf)
//
// Related packages:
//
//   - rivaas.dev/qs/metrics: OpenTelemetry instruments fed by [Events]
//   - rivaas.dev/qs/problem: RFC 9457 problem details for decode errors
package qs
