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

// Package problem renders query decoding errors as RFC 9457 problem details.
//
// Errors returned by [qs.ParseQuery] and [qs.Codec.DecodeStrict] carry an
// HTTP status and a machine-readable code. A [Formatter] turns them into a
// [Detail] that handlers can write with any JSON encoder:
//
//	f := problem.New(problem.WithBaseURL("https://api.example.com/problems"))
//	tree, err := qs.DecodeStrict(pairs)
//	if err != nil {
//	    d := f.Format(r.URL.Path, err)
//	    w.Header().Set("Content-Type", problem.ContentType)
//	    w.WriteHeader(d.Status)
//	    json.NewEncoder(w).Encode(d)
//	}
//
// Dropped parameters are listed under the "invalid-params" extension, one
// entry per key, as in the example of RFC 9457 section 3.
package problem

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"rivaas.dev/qs"
)

// ContentType is the media type of a serialized [Detail].
const ContentType = "application/problem+json; charset=utf-8"

// Detail is an RFC 9457 problem detail.
type Detail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"` // Marshaled inline
}

// InvalidParam names one dropped query parameter.
type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// MarshalJSON writes the standard members followed by the extensions inline.
// Extensions cannot overwrite the standard members.
func (d Detail) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Extensions)+5)
	for k, v := range d.Extensions {
		m[k] = v
	}
	m["type"] = d.Type
	m["title"] = d.Title
	m["status"] = d.Status
	delete(m, "detail")
	delete(m, "instance")
	if d.Detail != "" {
		m["detail"] = d.Detail
	}
	if d.Instance != "" {
		m["instance"] = d.Instance
	}

	return json.Marshal(m)
}

// Option configures a [Formatter].
type Option func(*Formatter)

// WithBaseURL prefixes error codes to form the problem type URI.
func WithBaseURL(url string) Option {
	return func(f *Formatter) {
		f.baseURL = url
	}
}

// WithIDGenerator sets the function that produces the "error_id" extension.
// A nil function disables the extension.
func WithIDGenerator(fn func() string) Option {
	return func(f *Formatter) {
		f.newID = fn
	}
}

// WithoutErrorID omits the "error_id" extension.
func WithoutErrorID() Option {
	return WithIDGenerator(nil)
}

// Formatter converts errors into problem details. It is safe for concurrent use.
type Formatter struct {
	baseURL string
	newID   func() string
}

// New returns a Formatter. Error IDs default to [UUIDv7].
func New(opts ...Option) *Formatter {
	f := &Formatter{newID: UUIDv7}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// statusError is implemented by [qs.DropError] and [qs.QueryError].
type statusError interface {
	HTTPStatus() int
}

type codedError interface {
	Code() string
}

// Format builds the problem detail for err. Instance is usually the request
// path and may be empty.
func (f *Formatter) Format(instance string, err error) Detail {
	status := http.StatusInternalServerError
	var se statusError
	if errors.As(err, &se) {
		status = se.HTTPStatus()
	}

	d := Detail{
		Type:       "about:blank",
		Title:      http.StatusText(status),
		Status:     status,
		Detail:     err.Error(),
		Instance:   instance,
		Extensions: make(map[string]any),
	}

	var ce codedError
	if errors.As(err, &ce) {
		code := ce.Code()
		d.Extensions["code"] = code
		d.Type = code
		if f.baseURL != "" {
			d.Type = f.baseURL + "/" + code
		}
	}

	var de *qs.DropError
	if errors.As(err, &de) {
		params := make([]InvalidParam, 0, len(de.Drops))
		for _, drop := range de.Drops {
			params = append(params, InvalidParam{Name: drop.Key, Reason: drop.Reason.String()})
		}
		d.Extensions["invalid-params"] = params
	}

	if f.newID != nil {
		d.Extensions["error_id"] = f.newID()
	}

	return d
}

// UUIDv7 returns a time-ordered UUID (RFC 9562).
func UUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

var (
	ulidEntropy     = ulid.Monotonic(rand.Reader, 0)
	ulidEntropyLock sync.Mutex
)

// ULID returns a monotonic ULID, shorter than a UUID and also time-ordered.
func ULID() string {
	ulidEntropyLock.Lock()
	defer ulidEntropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}
