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

//go:build !integration

package qs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCodec(t *testing.T) {
	t.Parallel()

	t.Run("default options returns usable codec", func(t *testing.T) {
		t.Parallel()

		codec := TestCodec(t)
		require.NotNil(t, codec)
		assert.JSONEq(t, `{"a":1}`, jsonOf(t, codec.Decode(Pairs{{Key: "a", Value: "1"}})))
	})

	t.Run("with extra options overrides defaults", func(t *testing.T) {
		t.Parallel()

		codec := TestCodec(t, WithMaxScalarLen(2))
		assertValue(t, String("123"), codec.Infer("123"))
		assertValue(t, Int(12), codec.Infer("12"))
	})
}

func TestTestPairs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Pairs{{Key: "a", Value: "1"}, {Key: "b[c]", Value: ""}}, TestPairs(t, "a", "1", "b[c]", ""))
	assert.Empty(t, TestPairs(t))
}

func TestTestDecode(t *testing.T) {
	t.Parallel()

	tree := TestDecode(t, "filters[status]=active&page=2")
	assert.JSONEq(t, `{"filters":{"status":"active"},"page":2}`, jsonOf(t, tree))
}
