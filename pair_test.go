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
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  Pairs
	}{
		{
			name:  "keeps source order",
			query: "b=2&a=1&b=3",
			want:  Pairs{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}, {Key: "b", Value: "3"}},
		},
		{
			name:  "leading question mark",
			query: "?page=2",
			want:  Pairs{{Key: "page", Value: "2"}},
		},
		{
			name:  "percent-decoded brackets",
			query: "filters%5Bstatus%5D=active",
			want:  Pairs{{Key: "filters[status]", Value: "active"}},
		},
		{
			name:  "literal brackets",
			query: "filters[status]=active",
			want:  Pairs{{Key: "filters[status]", Value: "active"}},
		},
		{
			name:  "plus is space",
			query: "q=red+shoes",
			want:  Pairs{{Key: "q", Value: "red shoes"}},
		},
		{
			name:  "missing value",
			query: "flag",
			want:  Pairs{{Key: "flag", Value: ""}},
		},
		{
			name:  "value with equals sign",
			query: "expr=a=b",
			want:  Pairs{{Key: "expr", Value: "a=b"}},
		},
		{
			name:  "empty segments skipped",
			query: "a=1&&b=2&",
			want:  Pairs{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuery_Errors(t *testing.T) {
	t.Parallel()

	t.Run("bad escape", func(t *testing.T) {
		t.Parallel()

		pairs, err := ParseQuery("a=%zz&b=2")
		require.Error(t, err)
		assert.Equal(t, Pairs{{Key: "b", Value: "2"}}, pairs, "parsing continues past errors")

		var qErr *QueryError
		require.ErrorAs(t, err, &qErr)
		assert.Equal(t, "a=%zz", qErr.Segment)
		assert.Equal(t, 400, qErr.HTTPStatus())
		assert.Equal(t, "invalid_query", qErr.Code())
	})

	t.Run("semicolon", func(t *testing.T) {
		t.Parallel()

		pairs, err := ParseQuery("a=1;b=2&c=3")
		require.ErrorIs(t, err, ErrInvalidSemicolon)
		assert.Equal(t, Pairs{{Key: "c", Value: "3"}}, pairs)
	})

	t.Run("first error wins", func(t *testing.T) {
		t.Parallel()

		_, err := ParseQuery("a=1;b&c=%zz")
		require.ErrorIs(t, err, ErrInvalidSemicolon)
	})
}

func TestPairsEncode(t *testing.T) {
	t.Parallel()

	pairs := Pairs{
		{Key: "filters[status]", Value: "active"},
		{Key: "q", Value: "a b&c"},
		{Key: "odd key", Value: "x/y"},
	}

	assert.Equal(t, "filters[status]=active&q=a+b%26c&odd+key=x%2Fy", pairs.Encode())
	assert.Empty(t, Pairs(nil).Encode())

	reparsed, err := ParseQuery(pairs.Encode())
	require.NoError(t, err)
	assert.Equal(t, pairs, reparsed)
}

func TestFromValues(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"b":    {"2", "3"},
		"a":    {"1"},
		"c[d]": {"4"},
	}

	assert.Equal(t, Pairs{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
		{Key: "b", Value: "3"},
		{Key: "c[d]", Value: "4"},
	}, FromValues(values))

	assert.Equal(t, values, FromValues(values).Values())
}

func TestPairsGet(t *testing.T) {
	t.Parallel()

	pairs := TestPairs(t, "a", "1", "a", "2")

	v, ok := pairs.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = pairs.Get("missing")
	assert.False(t, ok)
}
