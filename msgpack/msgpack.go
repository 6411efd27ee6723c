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

// Package msgpack provides MessagePack support for the qs package.
//
// This package converts rivaas.dev/qs value trees to and from MessagePack,
// using github.com/vmihailenco/msgpack/v5. Maps are written and read
// field by field so object order survives a round trip, which makes the
// format suitable for caching decoded queries.
//
// Example:
//
//	body, err := msgpack.Marshal(qs.ObjectValue(tree))
//	if err != nil {
//	    // handle error
//	}
package msgpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"rivaas.dev/qs"
)

// Marshal encodes v as MessagePack. Whole numbers in the safe integer range
// are written as integers, other numbers as float64. Undefined object fields
// are left out and array gaps become nil.
func Marshal(v qs.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes a single MessagePack value. A nil array element reads
// back as a gap; a nil map value stays null.
//
// Errors:
//   - [qs.ErrUnsupportedValue]: a map key is not a string, or an extension
//     type has no tree form
func Unmarshal(data []byte) (qs.Value, error) {
	dec := NewDecoder(bytes.NewReader(data))
	v, err := dec.Decode()
	if err != nil {
		return qs.Value{}, err
	}
	if _, err := dec.dec.PeekCode(); !errors.Is(err, io.EOF) {
		return qs.Value{}, errors.New("msgpack: unexpected data after value")
	}

	return v, nil
}

// Encoder writes value trees to a stream.
type Encoder struct {
	enc *msgpack.Encoder
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: msgpack.NewEncoder(w)}
}

// Encode writes v.
func (e *Encoder) Encode(v qs.Value) error {
	if err := e.encode(v); err != nil {
		return fmt.Errorf("msgpack: encode: %w", err)
	}

	return nil
}

func (e *Encoder) encode(v qs.Value) error {
	switch v.Kind() {
	case qs.KindBool:
		b, _ := v.AsBool()
		return e.enc.EncodeBool(b)
	case qs.KindNumber:
		n, _ := v.AsNumber()
		if n == math.Trunc(n) && math.Abs(n) <= qs.MaxSafeInteger {
			return e.enc.EncodeInt(int64(n))
		}
		return e.enc.EncodeFloat64(n)
	case qs.KindString:
		s, _ := v.AsString()
		return e.enc.EncodeString(s)
	case qs.KindObject:
		o := v.Object()
		n := 0
		for _, child := range o.All() {
			if child.Kind() != qs.KindUndefined {
				n++
			}
		}
		if err := e.enc.EncodeMapLen(n); err != nil {
			return err
		}
		for k, child := range o.All() {
			if child.Kind() == qs.KindUndefined {
				continue
			}
			if err := e.enc.EncodeString(k); err != nil {
				return err
			}
			if err := e.encode(child); err != nil {
				return err
			}
		}
		return nil
	case qs.KindArray:
		a := v.Array()
		if err := e.enc.EncodeArrayLen(a.Len()); err != nil {
			return err
		}
		for _, child := range a.All() {
			if err := e.encode(child); err != nil {
				return err
			}
		}
		return nil
	default:
		return e.enc.EncodeNil()
	}
}

// Decoder reads value trees from a stream.
type Decoder struct {
	dec *msgpack.Decoder
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: msgpack.NewDecoder(r)}
}

// Decode reads the next value. It returns io.EOF when the stream is
// exhausted.
func (d *Decoder) Decode() (qs.Value, error) {
	if _, err := d.dec.PeekCode(); err != nil {
		return qs.Value{}, err
	}

	v, err := d.decode(false)
	if err != nil {
		return qs.Value{}, fmt.Errorf("msgpack: decode: %w", err)
	}

	return v, nil
}

func (d *Decoder) decode(inArray bool) (qs.Value, error) {
	code, err := d.dec.PeekCode()
	if err != nil {
		return qs.Value{}, err
	}

	switch {
	case code == msgpcode.Nil:
		if err := d.dec.DecodeNil(); err != nil {
			return qs.Value{}, err
		}
		if inArray {
			return qs.Undefined(), nil
		}
		return qs.Null(), nil
	case code == msgpcode.False || code == msgpcode.True:
		b, err := d.dec.DecodeBool()
		if err != nil {
			return qs.Value{}, err
		}
		return qs.Bool(b), nil
	case msgpcode.IsString(code):
		s, err := d.dec.DecodeString()
		if err != nil {
			return qs.Value{}, err
		}
		return qs.String(s), nil
	case msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32:
		return d.decodeMap()
	case msgpcode.IsFixedArray(code) || code == msgpcode.Array16 || code == msgpcode.Array32:
		return d.decodeArray()
	case isNumber(code):
		n, err := d.dec.DecodeFloat64()
		if err != nil {
			return qs.Value{}, err
		}
		return qs.Number(n), nil
	}

	// Binary and extension types such as timestamps.
	x, err := d.dec.DecodeInterface()
	if err != nil {
		return qs.Value{}, err
	}
	if b, ok := x.([]byte); ok {
		return qs.String(string(b)), nil
	}

	return qs.FromAny(x)
}

func (d *Decoder) decodeMap() (qs.Value, error) {
	n, err := d.dec.DecodeMapLen()
	if err != nil {
		return qs.Value{}, err
	}
	if n < 0 {
		return qs.Null(), nil
	}

	fields := make([]qs.Field, 0, n)
	for range n {
		code, err := d.dec.PeekCode()
		if err != nil {
			return qs.Value{}, err
		}
		if !msgpcode.IsString(code) {
			return qs.Value{}, fmt.Errorf("%w: map key with code %#x", qs.ErrUnsupportedValue, code)
		}
		key, err := d.dec.DecodeString()
		if err != nil {
			return qs.Value{}, err
		}
		child, err := d.decode(false)
		if err != nil {
			return qs.Value{}, fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, qs.F(key, child))
	}

	return qs.ObjectOf(fields...), nil
}

func (d *Decoder) decodeArray() (qs.Value, error) {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return qs.Value{}, err
	}
	if n < 0 {
		return qs.Null(), nil
	}

	items := make([]qs.Value, 0, n)
	for i := range n {
		child, err := d.decode(true)
		if err != nil {
			return qs.Value{}, fmt.Errorf("index %d: %w", i, err)
		}
		items = append(items, child)
	}

	return qs.ArrayOf(items...), nil
}

func isNumber(code byte) bool {
	if msgpcode.IsFixedNum(code) {
		return true
	}
	switch code {
	case msgpcode.Float, msgpcode.Double,
		msgpcode.Uint8, msgpcode.Uint16, msgpcode.Uint32, msgpcode.Uint64,
		msgpcode.Int8, msgpcode.Int16, msgpcode.Int32, msgpcode.Int64:
		return true
	}
	return false
}
