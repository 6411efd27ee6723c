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

// Package proto provides Protocol Buffers support for the qs package.
//
// This package converts rivaas.dev/qs value trees to and from the well-known
// google.protobuf.Struct type, using google.golang.org/protobuf. Struct
// fields are a map on the wire, so object order is not preserved: fields
// read back in sorted order.
//
// Example:
//
//	s := proto.ToStruct(tree)
//	resp := &pb.SearchRequest{Filters: s}
package proto

import (
	"fmt"
	"slices"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"rivaas.dev/qs"
)

// ToStruct converts o into a google.protobuf.Struct. Undefined fields are
// left out.
func ToStruct(o *qs.Object) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, o.Len())}
	for k, child := range o.All() {
		if child.Kind() == qs.KindUndefined {
			continue
		}
		s.Fields[k] = ToValue(child)
	}

	return s
}

// ToValue converts v into a google.protobuf.Value. Undefined becomes
// NULL_VALUE, which is also how array gaps are written.
func ToValue(v qs.Value) *structpb.Value {
	switch v.Kind() {
	case qs.KindBool:
		b, _ := v.AsBool()
		return structpb.NewBoolValue(b)
	case qs.KindNumber:
		n, _ := v.AsNumber()
		return structpb.NewNumberValue(n)
	case qs.KindString:
		s, _ := v.AsString()
		return structpb.NewStringValue(s)
	case qs.KindObject:
		return structpb.NewStructValue(ToStruct(v.Object()))
	case qs.KindArray:
		list := &structpb.ListValue{Values: make([]*structpb.Value, 0, v.Array().Len())}
		for _, child := range v.Array().All() {
			list.Values = append(list.Values, ToValue(child))
		}
		return structpb.NewListValue(list)
	default:
		return structpb.NewNullValue()
	}
}

// FromStruct converts s into an object with fields in sorted order.
func FromStruct(s *structpb.Struct) *qs.Object {
	keys := make([]string, 0, len(s.GetFields()))
	for k := range s.GetFields() {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fields := make([]qs.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, qs.F(k, fromValue(s.GetFields()[k], false)))
	}

	return qs.ObjectOf(fields...).Object()
}

// FromValue converts pv into a value tree. A NULL_VALUE list element reads
// back as an array gap; elsewhere it is null. A Value with no kind set is
// undefined.
func FromValue(pv *structpb.Value) qs.Value {
	return fromValue(pv, false)
}

func fromValue(pv *structpb.Value, inList bool) qs.Value {
	switch k := pv.GetKind().(type) {
	case *structpb.Value_NullValue:
		if inList {
			return qs.Undefined()
		}
		return qs.Null()
	case *structpb.Value_BoolValue:
		return qs.Bool(k.BoolValue)
	case *structpb.Value_NumberValue:
		return qs.Number(k.NumberValue)
	case *structpb.Value_StringValue:
		return qs.String(k.StringValue)
	case *structpb.Value_StructValue:
		return qs.ObjectValue(FromStruct(k.StructValue))
	case *structpb.Value_ListValue:
		items := make([]qs.Value, 0, len(k.ListValue.GetValues()))
		for _, item := range k.ListValue.GetValues() {
			items = append(items, fromValue(item, true))
		}
		return qs.ArrayOf(items...)
	default:
		return qs.Undefined()
	}
}

// Marshal encodes o as google.protobuf.Struct wire bytes. Output is
// deterministic for a given tree.
func Marshal(o *qs.Object) ([]byte, error) {
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(ToStruct(o))
	if err != nil {
		return nil, fmt.Errorf("proto: marshal struct: %w", err)
	}

	return b, nil
}

// Unmarshal decodes google.protobuf.Struct wire bytes into an object.
func Unmarshal(data []byte) (*qs.Object, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("proto: unmarshal struct: %w", err)
	}

	return FromStruct(&s), nil
}
