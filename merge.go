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

// Merge overlays decoded on defaults, one level deep.
//
// The result holds every field of defaults, each replaced by the field of
// the same name in decoded when present, followed by the fields that only
// decoded has. Nested objects are not merged: a default of
// {"filters":{"status":"all","sort":"name"}} is replaced wholesale by a
// decoded {"filters":{"status":"active"}}.
//
// defaults may be nil. Neither input is modified.
//
// Example:
//
//	defaults := qs.ObjectOf(qs.F("page", qs.Int(1)), qs.F("limit", qs.Int(10))).Object()
//	decoded, _ := qs.DecodeQuery("page=5")
//	merged := qs.Merge(defaults, decoded)
//	// {"page":5,"limit":10}
func Merge(defaults, decoded *Object) *Object {
	out := defaults.clone(decoded.Len())
	for k, v := range decoded.All() {
		out.set(k, v)
	}

	return out
}
