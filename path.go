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

import (
	"strconv"
	"strings"
)

// Tokenize splits a bracket-notation key into its path segments.
//
// Brackets are purely structural: runs of '[' and ']' separate segments and
// empty pieces are discarded, so malformed keys degrade instead of failing.
//
//   - "user[profile][name]" → ["user", "profile", "name"]
//   - "page"                → ["page"]
//   - "tags[]"              → ["tags"]
//   - "a[b"                 → ["a", "b"]
//   - ""                    → []
func Tokenize(key string) []string {
	return strings.FieldsFunc(key, isBracket)
}

func isBracket(r rune) bool {
	return r == '[' || r == ']'
}

// IsIndex reports whether seg consists only of ASCII digits and therefore
// addresses an array slot.
func IsIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}

// parseIndex converts an index segment, reporting ok=false for values that
// fall outside [0, limit).
func parseIndex(seg string, limit int) (int, bool) {
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 || n >= limit {
		return 0, false
	}
	return n, true
}

// fieldKey renders one level of the bracket grammar.
func fieldKey(base, seg string) string {
	if base == "" {
		return seg
	}
	return base + "[" + seg + "]"
}
