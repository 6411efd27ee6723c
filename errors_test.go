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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDropReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason DropReason
		str    string
		err    error
	}{
		{DropEmptyKey, "empty_key", ErrEmptyKey},
		{DropIndexOutOfRange, "index_out_of_range", ErrIndexOutOfRange},
		{DropKindConflict, "kind_conflict", ErrKindConflict},
		{DropReason(0), "unknown", nil},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.str, tt.reason.String())
			assert.Equal(t, tt.err, tt.reason.Err())
		})
	}
}

func TestDropError(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "no dropped parameters", (&DropError{}).Error())
	})

	t.Run("single", func(t *testing.T) {
		t.Parallel()

		err := &DropError{Drops: []Drop{{Key: "a[x]", Reason: DropKindConflict}}}
		assert.Equal(t, `dropped parameter "a[x]": path already holds a container of another kind`, err.Error())
		assert.ErrorIs(t, err, ErrKindConflict)
		assert.NotErrorIs(t, err, ErrEmptyKey)
	})

	t.Run("multiple", func(t *testing.T) {
		t.Parallel()

		err := &DropError{Drops: []Drop{
			{Key: "", Reason: DropEmptyKey},
			{Key: "a[10000]", Reason: DropIndexOutOfRange},
			{Key: "b[10000]", Reason: DropIndexOutOfRange},
		}}
		assert.Equal(t, `3 dropped parameters: "", "a[10000]", "b[10000]"`, err.Error())
		assert.Len(t, err.Unwrap(), 2)
		assert.ErrorIs(t, err, ErrEmptyKey)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Equal(t, 400, err.HTTPStatus())
		assert.Equal(t, "dropped_parameters", err.Code())
	})
}

func TestQueryError(t *testing.T) {
	t.Parallel()

	err := error(&QueryError{Segment: "a;b", Err: ErrInvalidSemicolon})
	assert.Equal(t, `parsing query segment "a;b": invalid semicolon separator in query`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidSemicolon)

	var qErr *QueryError
	assert.True(t, errors.As(err, &qErr))
}
