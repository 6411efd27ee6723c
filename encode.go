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

import "strconv"

// Encode flattens v into bracket-notation pairs, one per scalar leaf.
//
// Object fields are visited in insertion order and arrays in ascending
// index order. Null and undefined leaves produce nothing, which is how a
// field is cleared; passing a null or undefined root clears every
// parameter and yields no pairs.
//
// Example:
//
//	pairs := qs.Encode(qs.ObjectOf(
//	    qs.F("filters", qs.ObjectOf(qs.F("status", qs.String("active")))),
//	    qs.F("page", qs.Int(2)),
//	))
//	// filters[status]=active, page=2
func Encode(v Value) Pairs {
	return EncodeAt("", v)
}

// EncodeAt flattens v beneath base. With base "user", a field "name"
// becomes "user[name]".
func EncodeAt(base string, v Value) Pairs {
	return appendPairs(nil, base, v)
}

// Encode flattens v; see the package-level [Encode].
func (c *Codec) Encode(v Value) Pairs {
	return Encode(v)
}

func appendPairs(out Pairs, base string, v Value) Pairs {
	switch v.kind {
	case KindUndefined, KindNull:
		return out
	case KindObject:
		for k, child := range v.obj.All() {
			if k == "" {
				continue
			}
			out = appendPairs(out, fieldKey(base, k), child)
		}
		return out
	case KindArray:
		for i, child := range v.arr.All() {
			out = appendPairs(out, fieldKey(base, strconv.Itoa(i)), child)
		}
		return out
	default:
		if base == "" {
			return out
		}
		return append(out, Pair{Key: base, Value: scalarText(v)})
	}
}

// scalarText renders a non-nil scalar in the form Infer reads back.
func scalarText(v Value) string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.n)
	default:
		return v.s
	}
}
