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
	"fmt"
	"log/slog"
)

// Security limits applied to untrusted query input.
const (
	// DefaultMaxScalarLen is the byte length above which a value is kept as
	// a raw string without type inference.
	DefaultMaxScalarLen = 1000

	// DefaultMaxArrayIndex bounds array indices to [0, DefaultMaxArrayIndex).
	// It prevents memory exhaustion from keys such as items[99999999].
	DefaultMaxArrayIndex = 10_000
)

// Events provides hooks for observability without coupling.
type Events struct {
	// Dropped is called for every pair the decoder discards.
	Dropped func(d Drop)

	// Done is called at the end of each decode with statistics.
	Done func(stats Stats)
}

// Stats summarizes a single decode.
type Stats struct {
	Pairs   int // Pairs received
	Placed  int // Pairs written into the tree
	Dropped int // Pairs discarded
}

// Option configures a [Codec].
type Option func(*config)

type config struct {
	maxScalarLen  int
	maxArrayIndex int
	logger        *slog.Logger
	events        Events
}

func defaultConfig() *config {
	return &config{
		maxScalarLen:  DefaultMaxScalarLen,
		maxArrayIndex: DefaultMaxArrayIndex,
	}
}

func (c *config) validate() error {
	if c.maxScalarLen <= 0 {
		return fmt.Errorf("max scalar length %d: %w", c.maxScalarLen, ErrInvalidLimit)
	}
	if c.maxArrayIndex <= 0 {
		return fmt.Errorf("max array index %d: %w", c.maxArrayIndex, ErrInvalidLimit)
	}
	return nil
}

// WithMaxScalarLen sets the byte length above which values skip type
// inference. The default is DefaultMaxScalarLen (1000).
//
// Example:
//
//	qs.MustNew(qs.WithMaxScalarLen(256))
func WithMaxScalarLen(n int) Option {
	return func(c *config) {
		c.maxScalarLen = n
	}
}

// WithMaxArrayIndex sets the exclusive upper bound for array indices.
// Pairs addressing a slot at or above it are dropped.
// The default is DefaultMaxArrayIndex (10,000).
//
// Example:
//
//	qs.MustNew(qs.WithMaxArrayIndex(100))
func WithMaxArrayIndex(n int) Option {
	return func(c *config) {
		c.maxArrayIndex = n
	}
}

// WithLogger sets a slog.Logger that receives a debug record for every
// dropped pair. Logging is disabled by default.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	qs.MustNew(qs.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithEvents sets observability hooks.
//
// Example:
//
//	qs.MustNew(qs.WithEvents(qs.Events{
//	    Dropped: func(d qs.Drop) {
//	        droppedCounter.Add(ctx, 1)
//	    },
//	}))
func WithEvents(events Events) Option {
	return func(c *config) {
		c.events = events
	}
}
