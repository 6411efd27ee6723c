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
	"iter"
	"slices"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	// KindUndefined marks a missing value. It is the zero Kind and also
	// fills the gaps of sparse arrays.
	KindUndefined Kind = iota

	// KindNull is an explicit null.
	KindNull

	// KindBool is a boolean scalar.
	KindBool

	// KindNumber is a float64 scalar.
	KindNumber

	// KindString is a string scalar.
	KindString

	// KindObject is a field map.
	KindObject

	// KindArray is a sparse indexed sequence.
	KindArray
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a node of a decoded tree: a scalar, an [Object] or an [Array].
//
// The zero Value is undefined. Values are immutable from the caller's
// perspective; use [Object.With] and the constructors to derive new trees.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	obj  *Object
	arr  *Array
}

// Undefined returns the undefined marker.
func Undefined() Value { return Value{} }

// Null returns an explicit null.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric scalar.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int returns a numeric scalar holding i.
func Int(i int) Value { return Value{kind: KindNumber, n: float64(i)} }

// String returns a string scalar.
func String(s string) Value { return Value{kind: KindString, s: s} }

// ObjectValue wraps o. A nil object yields an empty one.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = newObject(0)
	}
	return Value{kind: KindObject, obj: o}
}

// ArrayValue wraps a. A nil array yields an empty one.
func ArrayValue(a *Array) Value {
	if a == nil {
		a = &Array{}
	}
	return Value{kind: KindArray, arr: a}
}

// Field is a key and value used to build objects with [ObjectOf].
type Field struct {
	Key   string
	Value Value
}

// F is shorthand for Field{Key: key, Value: v}.
func F(key string, v Value) Field {
	return Field{Key: key, Value: v}
}

// ObjectOf builds an object value from fields. Later fields with the same
// key replace earlier ones but keep the first position.
func ObjectOf(fields ...Field) Value {
	o := newObject(len(fields))
	for _, f := range fields {
		o.set(f.Key, f.Value)
	}
	return ObjectValue(o)
}

// ArrayOf builds an array value from items. Undefined items are gaps.
func ArrayOf(items ...Value) Value {
	return ArrayValue(&Array{items: slices.Clone(items)})
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether v is null or undefined. Such values produce no
// pairs when encoded.
func (v Value) IsNil() bool { return v.kind == KindUndefined || v.kind == KindNull }

// IsScalar reports whether v is neither an object nor an array.
func (v Value) IsScalar() bool { return v.kind != KindObject && v.kind != KindArray }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Object returns the object held by v, or nil.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Array returns the array held by v, or nil.
func (v Value) Array() *Array {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// String returns the JSON form of v, or "undefined" for the undefined marker.
func (v Value) String() string {
	if v.kind == KindUndefined {
		return "undefined"
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}
	return string(b)
}

// Object is an ordered mapping from field name to [Value].
// Equality ignores order; iteration and encoding follow insertion order.
type Object struct {
	keys   []string
	fields map[string]Value
}

func newObject(capacity int) *Object {
	return &Object{
		keys:   make([]string, 0, capacity),
		fields: make(map[string]Value, capacity),
	}
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates fields in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.fields[k]) {
				return
			}
		}
	}
}

// With returns a copy of o with key set to v. An existing key keeps its
// position.
func (o *Object) With(key string, v Value) *Object {
	c := o.clone(1)
	c.set(key, v)
	return c
}

// Without returns a copy of o with key removed.
func (o *Object) Without(key string) *Object {
	c := o.clone(0)
	if _, ok := c.fields[key]; !ok {
		return c
	}
	delete(c.fields, key)
	c.keys = slices.DeleteFunc(c.keys, func(k string) bool { return k == key })
	return c
}

// clone copies the field table, leaving room for extra fields.
// Child nodes are shared; they are never mutated after a decode returns.
func (o *Object) clone(extra int) *Object {
	c := newObject(o.Len() + extra)
	if o == nil {
		return c
	}
	c.keys = append(c.keys, o.keys...)
	for k, v := range o.fields {
		c.fields[k] = v
	}
	return c
}

// set is only called on objects still under construction.
func (o *Object) set(key string, v Value) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Array is a sparse sequence of [Value]. Gaps hold the undefined marker.
type Array struct {
	items []Value
}

// Len returns one past the highest populated index.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// At returns the element at index i, or undefined when i is a gap or out
// of range.
func (a *Array) At(i int) Value {
	if a == nil || i < 0 || i >= len(a.items) {
		return Value{}
	}
	return a.items[i]
}

// All iterates every slot in ascending order, gaps included.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if a == nil {
			return
		}
		for i, v := range a.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// set grows the array with gaps as needed. Only called during construction.
func (a *Array) set(i int, v Value) {
	if i >= len(a.items) {
		a.items = append(a.items, make([]Value, i+1-len(a.items))...)
	}
	a.items[i] = v
}

// Equal reports whether a and b are structurally equal. Object field order
// is ignored; array gaps compare equal to undefined elements.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUndefined, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for k, av := range a.obj.All() {
			bv, ok := b.obj.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindArray:
		if a.arr.Len() != b.arr.Len() {
			return false
		}
		for i, av := range a.arr.All() {
			if !Equal(av, b.arr.At(i)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
