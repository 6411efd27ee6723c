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
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"time"
)

// FromAny converts a Go value into a [Value].
//
// Supported inputs are nil, bool, string, all integer and float kinds,
// json.Number, time.Time (RFC 3339 text), Value, *Object, *Array, maps with
// string keys, slices, arrays and pointers to any of these. Map keys are
// sorted since Go maps have no order.
//
// Errors:
//   - [ErrUnsupportedValue]: the input holds a type outside the list above
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Object:
		return ObjectValue(t), nil
	case *Array:
		return ArrayValue(t), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Int(t), nil
	case int64:
		return Number(float64(t)), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: json.Number %q", ErrUnsupportedValue, t)
		}
		return Number(n), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		o := newObject(len(keys))
		for _, k := range keys {
			child, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", k, err)
			}
			o.set(k, child)
		}
		return ObjectValue(o), nil
	case []any:
		a := &Array{items: make([]Value, 0, len(t))}
		for i, item := range t {
			child, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			a.items = append(a.items, child)
		}
		return ArrayValue(a), nil
	}

	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			default:
				return 0
			}
		})
		o := newObject(len(keys))
		for _, k := range keys {
			child, err := FromAny(rv.MapIndex(k).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", k.String(), err)
			}
			o.set(k.String(), child)
		}
		return ObjectValue(o), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null(), nil
		}
		a := &Array{items: make([]Value, 0, rv.Len())}
		for i := range rv.Len() {
			child, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			a.items = append(a.items, child)
		}
		return ArrayValue(a), nil
	}

	if !rv.IsValid() {
		return Null(), nil
	}
	return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedValue, rv.Type())
}

// Interface converts v into plain Go values: nil, bool, float64, string,
// map[string]any and []any. Undefined object fields are left out and array
// gaps become nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindObject:
		m := make(map[string]any, v.obj.Len())
		for k, child := range v.obj.All() {
			if child.kind == KindUndefined {
				continue
			}
			m[k] = child.Interface()
		}
		return m
	case KindArray:
		s := make([]any, 0, v.arr.Len())
		for _, child := range v.arr.All() {
			s = append(s, child.Interface())
		}
		return s
	default:
		return nil
	}
}
