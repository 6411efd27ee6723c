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

package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/qs"
)

func fixedID() string { return "id-1" }

func TestFormatter_DropError(t *testing.T) {
	t.Parallel()

	codec := qs.TestCodec(t, qs.WithMaxArrayIndex(5))
	_, err := codec.DecodeStrict(qs.TestPairs(t, "items[7]", "x", "a", "1", "a[0]", "2", "a[b]", "3"))
	require.Error(t, err)

	f := New(WithBaseURL("https://api.example.com/problems"), WithIDGenerator(fixedID))
	d := f.Format("/products", err)

	assert.Equal(t, http.StatusBadRequest, d.Status)
	assert.Equal(t, "Bad Request", d.Title)
	assert.Equal(t, "https://api.example.com/problems/dropped_parameters", d.Type)
	assert.Equal(t, "/products", d.Instance)
	assert.Equal(t, "dropped_parameters", d.Extensions["code"])
	assert.Equal(t, "id-1", d.Extensions["error_id"])
	assert.Equal(t, []InvalidParam{
		{Name: "items[7]", Reason: "index_out_of_range"},
		{Name: "a[b]", Reason: "kind_conflict"},
	}, d.Extensions["invalid-params"])
}

func TestFormatter_QueryError(t *testing.T) {
	t.Parallel()

	_, err := qs.ParseQuery("a=1;b=2")
	require.Error(t, err)

	d := New(WithoutErrorID()).Format("", err)

	assert.Equal(t, http.StatusBadRequest, d.Status)
	assert.Equal(t, "invalid_query", d.Type)
	assert.Empty(t, d.Instance)
	assert.NotContains(t, d.Extensions, "error_id")
	assert.NotContains(t, d.Extensions, "invalid-params")
}

func TestFormatter_PlainError(t *testing.T) {
	t.Parallel()

	d := New(WithoutErrorID()).Format("/x", errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, d.Status)
	assert.Equal(t, "about:blank", d.Type)
	assert.Equal(t, "boom", d.Detail)
	assert.Empty(t, d.Extensions)
}

func TestDetail_MarshalJSON(t *testing.T) {
	t.Parallel()

	d := Detail{
		Type:   "invalid_query",
		Title:  "Bad Request",
		Status: 400,
		Extensions: map[string]any{
			"code":   "invalid_query",
			"status": 999,
			"detail": "overwritten",
		},
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"invalid_query","title":"Bad Request","status":400,"code":"invalid_query"}`, string(data))
}

func TestIDGenerators(t *testing.T) {
	t.Parallel()

	id, err := uuid.Parse(UUIDv7())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	a, b := ULID(), ULID()
	require.Len(t, a, 26)
	_, err = ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.Less(t, a, b)

	d := New().Format("", errors.New("x"))
	_, err = uuid.Parse(d.Extensions["error_id"].(string))
	require.NoError(t, err)
}
