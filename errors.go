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
	"errors"
	"fmt"
	"strings"
)

// Static errors for codec configuration and caller-boundary helpers.
var (
	ErrInvalidLimit     = errors.New("limit must be positive")
	ErrEmptyKey         = errors.New("key has no path segments")
	ErrIndexOutOfRange  = errors.New("array index out of range")
	ErrKindConflict     = errors.New("path already holds a container of another kind")
	ErrInvalidSemicolon = errors.New("invalid semicolon separator in query")
	ErrUnsupportedValue = errors.New("unsupported value type")
	ErrNotObject        = errors.New("value is not an object")
)

// DropReason explains why the decoder discarded a pair.
type DropReason int

const (
	// DropEmptyKey means the key produced no path segments.
	DropEmptyKey DropReason = iota + 1

	// DropIndexOutOfRange means an index segment addressed a slot at or
	// beyond the array index limit.
	DropIndexOutOfRange

	// DropKindConflict means the path crossed an existing container of the
	// other kind, such as indexing into an object.
	DropKindConflict
)

// String returns a short identifier suitable for log attributes.
func (r DropReason) String() string {
	switch r {
	case DropEmptyKey:
		return "empty_key"
	case DropIndexOutOfRange:
		return "index_out_of_range"
	case DropKindConflict:
		return "kind_conflict"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error matching r.
func (r DropReason) Err() error {
	switch r {
	case DropEmptyKey:
		return ErrEmptyKey
	case DropIndexOutOfRange:
		return ErrIndexOutOfRange
	case DropKindConflict:
		return ErrKindConflict
	default:
		return nil
	}
}

// Drop describes a pair that did not make it into the decoded tree.
type Drop struct {
	Key    string     // Raw key as received
	Value  string     // Raw value as received
	Reason DropReason // Why the pair was discarded
}

// DropError lists every pair discarded by [Codec.DecodeStrict].
//
// Use [errors.Is] with the reason sentinels to test for a category:
//
//	if errors.Is(err, qs.ErrKindConflict) {
//	    // a key reused a path as both object and array
//	}
type DropError struct {
	Drops []Drop
}

// Error returns a formatted error message.
func (e *DropError) Error() string {
	switch len(e.Drops) {
	case 0:
		return "no dropped parameters"
	case 1:
		d := e.Drops[0]
		return fmt.Sprintf("dropped parameter %q: %v", d.Key, d.Reason.Err())
	default:
		keys := make([]string, 0, len(e.Drops))
		for _, d := range e.Drops {
			keys = append(keys, fmt.Sprintf("%q", d.Key))
		}
		return fmt.Sprintf("%d dropped parameters: %s", len(e.Drops), strings.Join(keys, ", "))
	}
}

// Unwrap returns the distinct reason sentinels for errors.Is compatibility.
func (e *DropError) Unwrap() []error {
	var errs []error
	seen := make(map[DropReason]bool, 3)
	for _, d := range e.Drops {
		if seen[d.Reason] {
			continue
		}
		seen[d.Reason] = true
		if err := d.Reason.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// HTTPStatus implements rivaas.dev/errors.ErrorType.
func (e *DropError) HTTPStatus() int {
	return 400 // Bad Request
}

// Code implements rivaas.dev/errors.ErrorCode.
func (e *DropError) Code() string {
	return "dropped_parameters"
}

// QueryError reports a raw query string that could not be split into pairs.
type QueryError struct {
	Segment string // The offending key=value text
	Err     error  // Underlying error
}

// Error returns a formatted error message.
func (e *QueryError) Error() string {
	return fmt.Sprintf("parsing query segment %q: %v", e.Segment, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// HTTPStatus implements rivaas.dev/errors.ErrorType.
func (e *QueryError) HTTPStatus() int {
	return 400 // Bad Request
}

// Code implements rivaas.dev/errors.ErrorCode.
func (e *QueryError) Code() string {
	return "invalid_query"
}
