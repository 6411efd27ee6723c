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
	"net/url"
	"slices"
	"strings"
)

// Pair is one percent-decoded key=value parameter. Keys may carry bracket
// segments such as "filters[status]".
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered parameter list, in the order the parameters appear
// in the query string. Unlike url.Values it keeps that order.
type Pairs []Pair

// ParseQuery splits a raw query string into ordered, percent-decoded pairs.
//
// A leading '?' is ignored and '+' decodes to a space. Like url.ParseQuery,
// parsing continues past malformed segments and the first problem is
// returned as a [*QueryError]; segments containing ';' are rejected with
// [ErrInvalidSemicolon].
//
// Example:
//
//	pairs, err := qs.ParseQuery(r.URL.RawQuery)
func ParseQuery(query string) (Pairs, error) {
	query = strings.TrimPrefix(query, "?")

	var (
		pairs    Pairs
		firstErr error
	)
	fail := func(seg string, err error) {
		if firstErr == nil {
			firstErr = &QueryError{Segment: seg, Err: err}
		}
	}

	for query != "" {
		var seg string
		seg, query, _ = strings.Cut(query, "&")
		if seg == "" {
			continue
		}
		if strings.Contains(seg, ";") {
			fail(seg, ErrInvalidSemicolon)
			continue
		}

		rawKey, rawValue, _ := strings.Cut(seg, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			fail(seg, err)
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			fail(seg, err)
			continue
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}

	return pairs, firstErr
}

// FromValues converts url.Values into pairs. url.Values does not remember
// key order, so keys are sorted; values of one key keep their order.
func FromValues(values url.Values) Pairs {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var pairs Pairs
	for _, k := range keys {
		for _, v := range values[k] {
			pairs = append(pairs, Pair{Key: k, Value: v})
		}
	}

	return pairs
}

// Values converts p into url.Values.
func (p Pairs) Values() url.Values {
	values := make(url.Values, len(p))
	for _, pair := range p {
		values.Add(pair.Key, pair.Value)
	}

	return values
}

// Get returns the first value for key.
func (p Pairs) Get(key string) (string, bool) {
	for _, pair := range p {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// Encode assembles p into a query string without the leading '?'.
// Reserved characters are percent-encoded; brackets in keys stay literal
// so the result reads as written: filters[status]=active&page=2.
func (p Pairs) Encode() string {
	var b strings.Builder
	for i, pair := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeKey(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}

	return b.String()
}

var bracketUnescaper = strings.NewReplacer("%5B", "[", "%5D", "]")

func escapeKey(key string) string {
	return bracketUnescaper.Replace(url.QueryEscape(key))
}
