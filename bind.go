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
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// TagName is the struct tag read by [Bind].
const TagName = "qs"

// ErrInvalidTarget is returned by [Bind] when out is not a non-nil pointer.
var ErrInvalidTarget = errors.New("bind target must be a non-nil pointer")

// Bind copies a decoded tree into the struct, map or slice pointed to by out.
//
// Fields are matched by the "qs" struct tag, falling back to the
// case-insensitive field name. Conversion is lenient: numbers fill integer
// fields, strings are parsed into numbers, booleans, durations, RFC 3339
// times and URLs, and a comma-separated string fills a slice. Undefined
// fields are skipped, so zero values or pre-set defaults are kept.
//
// Example:
//
//	type Search struct {
//	    Query   string   `qs:"q"`
//	    Page    int      `qs:"page"`
//	    Filters struct {
//	        Status string `qs:"status"`
//	    } `qs:"filters"`
//	}
//
//	tree, _ := qs.DecodeQuery("q=shoes&page=2&filters[status]=active")
//	var s Search
//	if err := qs.Bind(tree, &s); err != nil {
//	    return err
//	}
func Bind(o *Object, out any) error {
	if out == nil {
		return ErrInvalidTarget
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		Squash:           true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToURLHookFunc(),
		),
		Result: out,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	if err := decoder.Decode(ObjectValue(o).Interface()); err != nil {
		return fmt.Errorf("failed to bind query: %w", err)
	}

	return nil
}
