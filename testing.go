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

package qs

import "testing"

// TestCodec creates a Codec for tests, failing the test on invalid options.
//
// Example:
//
//	func TestMyFeature(t *testing.T) {
//	    codec := qs.TestCodec(t, qs.WithMaxArrayIndex(10))
//	    // use codec in test
//	}
func TestCodec(t *testing.T, opts ...Option) *Codec {
	t.Helper()

	codec, err := New(opts...)
	if err != nil {
		t.Fatalf("TestCodec: failed to create codec: %v", err)
	}
	return codec
}

// TestPairs builds ordered pairs from alternating keys and values.
//
// Example:
//
//	pairs := qs.TestPairs(t, "filters[status]", "active", "page", "2")
func TestPairs(t *testing.T, kv ...string) Pairs {
	t.Helper()

	if len(kv)%2 != 0 {
		t.Fatalf("TestPairs: kv must be key-value pairs, got odd number of arguments")
	}

	pairs := make(Pairs, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		pairs = append(pairs, Pair{Key: kv[i], Value: kv[i+1]})
	}
	return pairs
}

// TestDecode parses query with ParseQuery and decodes it with the default
// limits, failing the test on parse errors.
//
// Example:
//
//	tree := qs.TestDecode(t, "filters[status]=active&page=2")
func TestDecode(t *testing.T, query string) *Object {
	t.Helper()

	tree, err := DecodeQuery(query)
	if err != nil {
		t.Fatalf("TestDecode: %v", err)
	}
	return tree
}
