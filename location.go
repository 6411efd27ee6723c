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

import "strings"

// Href builds a navigable location from path and the encoding of v.
//
// Any query already present on path is replaced; a fragment is kept at the
// end. When v encodes to no pairs (for example a null root, which clears
// every parameter) the bare path is returned.
//
// Example:
//
//	qs.Href("/products", tree)        // "/products?filters[status]=active&page=2"
//	qs.Href("/products?old=1", qs.Null()) // "/products"
func Href(path string, v Value) string {
	base, fragment, hasFragment := strings.Cut(path, "#")
	base, _, _ = strings.Cut(base, "?")

	if query := Encode(v).Encode(); query != "" {
		base += "?" + query
	}
	if hasFragment {
		base += "#" + fragment
	}

	return base
}

// SplitHref separates a location into its path and parsed query pairs.
// The fragment is discarded. Errors come from [ParseQuery].
func SplitHref(href string) (string, Pairs, error) {
	href, _, _ = strings.Cut(href, "#")
	path, query, _ := strings.Cut(href, "?")
	pairs, err := ParseQuery(query)

	return path, pairs, err
}
