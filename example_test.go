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

package qs_test

import (
	"errors"
	"fmt"

	"rivaas.dev/qs"
)

// ExampleDecode demonstrates building a tree from bracket-notation pairs.
func ExampleDecode() {
	tree := qs.Decode(qs.Pairs{
		{Key: "filters[status]", Value: "active"},
		{Key: "page", Value: "2"},
		{Key: "items[1]", Value: "b"},
	})

	fmt.Println(qs.ObjectValue(tree))
	// Output: {"filters":{"status":"active"},"page":2,"items":[null,"b"]}
}

// ExampleDecodeQuery demonstrates decoding a raw query string.
func ExampleDecodeQuery() {
	tree, err := qs.DecodeQuery("?q=red+shoes&price[max]=99.5&inStock=true")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(qs.ObjectValue(tree))
	// Output: {"q":"red shoes","price":{"max":99.5},"inStock":true}
}

// ExampleEncode demonstrates flattening a tree and clearing a field with null.
func ExampleEncode() {
	tree := qs.ObjectOf(
		qs.F("filters", qs.ObjectOf(qs.F("status", qs.String("active")))),
		qs.F("page", qs.Int(2)),
		qs.F("q", qs.Null()),
	)

	for _, p := range qs.Encode(tree) {
		fmt.Printf("%s=%s\n", p.Key, p.Value)
	}
	// Output:
	// filters[status]=active
	// page=2
}

// ExampleInfer demonstrates scalar type inference.
func ExampleInfer() {
	for _, raw := range []string{"42", "true", "null", "hello", "9007199254740993"} {
		v := qs.Infer(raw)
		fmt.Printf("%s %s\n", v.Kind(), v)
	}
	// Output:
	// number 42
	// bool true
	// null null
	// string "hello"
	// string "9007199254740993"
}

// ExampleMerge demonstrates applying decoded parameters over defaults.
func ExampleMerge() {
	defaults := qs.ObjectOf(
		qs.F("page", qs.Int(1)),
		qs.F("limit", qs.Int(10)),
	).Object()

	decoded, err := qs.DecodeQuery("page=5")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(qs.ObjectValue(qs.Merge(defaults, decoded)))
	// Output: {"page":5,"limit":10}
}

// ExampleHref demonstrates building a location from a tree.
func ExampleHref() {
	tree := qs.ObjectOf(
		qs.F("filters", qs.ObjectOf(qs.F("status", qs.String("active")))),
		qs.F("page", qs.Int(2)),
	)

	fmt.Println(qs.Href("/products#grid", tree))
	fmt.Println(qs.Href("/products?page=3", qs.Null()))
	// Output:
	// /products?filters[status]=active&page=2#grid
	// /products
}

// ExampleCodec_DecodeStrict demonstrates reporting dropped pairs.
func ExampleCodec_DecodeStrict() {
	codec := qs.MustNew(qs.WithMaxArrayIndex(100))

	tree, err := codec.DecodeStrict(qs.Pairs{
		{Key: "items[500]", Value: "x"},
		{Key: "q", Value: "shoes"},
	})

	fmt.Println(qs.ObjectValue(tree))
	fmt.Println(err)
	fmt.Println(errors.Is(err, qs.ErrIndexOutOfRange))
	// Output:
	// {"q":"shoes"}
	// dropped parameter "items[500]": array index out of range
	// true
}
