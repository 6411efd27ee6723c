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

	"github.com/spf13/cast"
)

// Lookup returns the value at a bracket-notation key such as
// "filters[status]" or "items[0][id]". The key is split with [Tokenize].
// It reports false when any segment is missing, when an index is not a
// valid slot, or when the value found is undefined.
//
// Example:
//
//	v, ok := tree.Lookup("items[0][id]")
func (o *Object) Lookup(key string) (Value, bool) {
	segs := Tokenize(key)
	if len(segs) == 0 {
		return Value{}, false
	}

	node := ObjectValue(o)
	for _, seg := range segs {
		switch node.kind {
		case KindObject:
			v, ok := node.obj.Get(seg)
			if !ok {
				return Value{}, false
			}
			node = v
		case KindArray:
			if !IsIndex(seg) {
				return Value{}, false
			}
			i, err := strconv.Atoi(seg)
			if err != nil {
				return Value{}, false
			}
			node = node.arr.At(i)
		default:
			return Value{}, false
		}
	}

	return node, node.kind != KindUndefined
}

// LookupString returns the value at key converted to a string.
// If the key is missing or cannot be converted, an empty string is returned.
//
// Example:
//
//	status := tree.LookupString("filters[status]")
func (o *Object) LookupString(key string) string {
	v, ok := o.Lookup(key)
	if !ok || !v.IsScalar() {
		return ""
	}
	return cast.ToString(v.Interface())
}

// LookupInt returns the value at key converted to an int.
// If the key is missing or cannot be converted, 0 is returned.
//
// Example:
//
//	page := tree.LookupInt("page")
func (o *Object) LookupInt(key string) int {
	v, ok := o.Lookup(key)
	if !ok || !v.IsScalar() {
		return 0
	}
	return cast.ToInt(v.Interface())
}

// LookupFloat64 returns the value at key converted to a float64.
// If the key is missing or cannot be converted, 0.0 is returned.
func (o *Object) LookupFloat64(key string) float64 {
	v, ok := o.Lookup(key)
	if !ok || !v.IsScalar() {
		return 0
	}
	return cast.ToFloat64(v.Interface())
}

// LookupBool returns the value at key converted to a boolean.
// If the key is missing or cannot be converted, false is returned.
func (o *Object) LookupBool(key string) bool {
	v, ok := o.Lookup(key)
	if !ok || !v.IsScalar() {
		return false
	}
	return cast.ToBool(v.Interface())
}
