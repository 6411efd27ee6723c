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

import "fmt"

// Codec converts between bracket-notation pairs and value trees with a
// fixed configuration.
//
// Use [New] or [MustNew] to create a configured Codec, or use the
// package-level functions ([Decode], [Encode], [Infer]) for the default
// limits.
//
// Codec is safe for concurrent use by multiple goroutines. Event hooks are
// invoked synchronously on the calling goroutine.
type Codec struct {
	cfg *config
}

var defaultCodec = MustNew()

// New creates a [Codec] with the given options.
// Returns an error if configuration is invalid.
//
// Example:
//
//	codec, err := qs.New(
//	    qs.WithMaxArrayIndex(500),
//	    qs.WithLogger(logger),
//	)
//	if err != nil {
//	    return fmt.Errorf("failed to create codec: %w", err)
//	}
func New(opts ...Option) (*Codec, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Codec{cfg: cfg}, nil
}

// MustNew creates a [Codec] with the given options.
// Panics if configuration is invalid.
func MustNew(opts ...Option) *Codec {
	c, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("qs.MustNew: %v", err))
	}

	return c
}
