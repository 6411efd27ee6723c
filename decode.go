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
	"log/slog"
	"strconv"
)

// Decode builds a value tree from pairs using the default limits.
// See [Codec.Decode].
func Decode(pairs []Pair) *Object {
	return defaultCodec.Decode(pairs)
}

// DecodeStrict decodes pairs with the default limits and reports every
// dropped pair. See [Codec.DecodeStrict].
func DecodeStrict(pairs []Pair) (*Object, error) {
	return defaultCodec.DecodeStrict(pairs)
}

// DecodeQuery parses a raw query string and decodes it with the default
// limits.
func DecodeQuery(query string) (*Object, error) {
	return defaultCodec.DecodeQuery(query)
}

// Decode builds a value tree from pairs.
//
// Keys are split with [Tokenize] and walked from the root object, creating
// an array wherever the following segment is an index and an object
// otherwise. Leaf values go through [Codec.Infer]. The later of two pairs
// with the same path wins.
//
// Pairs are dropped, without affecting the rest of the tree, when the key
// is empty, when an index falls outside the array index limit, or when the
// path crosses a container of the other kind. Decode never fails.
//
// Example:
//
//	tree := qs.Decode(qs.Pairs{
//	    {Key: "filters[status]", Value: "active"},
//	    {Key: "page", Value: "2"},
//	})
//	// {"filters":{"status":"active"},"page":2}
func (c *Codec) Decode(pairs []Pair) *Object {
	return c.decode(pairs, nil)
}

// DecodeStrict decodes like [Codec.Decode] and additionally reports every
// dropped pair as a [*DropError]. The returned tree is always usable.
func (c *Codec) DecodeStrict(pairs []Pair) (*Object, error) {
	var drops []Drop
	root := c.decode(pairs, func(d Drop) { drops = append(drops, d) })
	if len(drops) > 0 {
		return root, &DropError{Drops: drops}
	}

	return root, nil
}

// DecodeQuery parses a raw query string with [ParseQuery] and decodes it.
// The error, if any, comes from parsing; the tree holds every pair that
// parsed.
func (c *Codec) DecodeQuery(query string) (*Object, error) {
	pairs, err := ParseQuery(query)
	return c.Decode(pairs), err
}

func (c *Codec) decode(pairs []Pair, collect func(Drop)) *Object {
	root := newObject(len(pairs))
	stats := Stats{Pairs: len(pairs)}

	for _, p := range pairs {
		segs := Tokenize(p.Key)
		if reason, ok := decide(root, segs, c.cfg.maxArrayIndex); !ok {
			stats.Dropped++
			c.dropped(Drop{Key: p.Key, Value: p.Value, Reason: reason}, collect)
			continue
		}
		place(root, segs, c.Infer(p.Value))
		stats.Placed++
	}

	if c.cfg.events.Done != nil {
		c.cfg.events.Done(stats)
	}

	return root
}

func (c *Codec) dropped(d Drop, collect func(Drop)) {
	if collect != nil {
		collect(d)
	}
	if c.cfg.events.Dropped != nil {
		c.cfg.events.Dropped(d)
	}
	if c.cfg.logger != nil {
		c.cfg.logger.Debug("qs: dropped parameter",
			slog.String("key", d.Key),
			slog.String("reason", d.Reason.String()),
		)
	}
}

// decide is the placement policy: it walks segs against the tree without
// mutating it and reports whether the pair may be placed. Running it before
// place keeps rejected pairs from leaving empty containers behind.
//
// The container at level i exists in the tree while exists is true. Once
// the walk leaves the tree, the container at level i will be created as an
// array exactly when segs[i] is an index.
func decide(root *Object, segs []string, maxIndex int) (DropReason, bool) {
	if len(segs) == 0 {
		return DropEmptyKey, false
	}

	node := ObjectValue(root)
	exists := true
	for i, seg := range segs {
		if (exists && node.kind == KindArray) || (!exists && i > 0 && IsIndex(seg)) {
			if _, ok := parseIndex(seg, maxIndex); !ok {
				return DropIndexOutOfRange, false
			}
		}
		if i == len(segs)-1 || !exists {
			continue
		}

		child := lookup(node, seg)
		wantArray := IsIndex(segs[i+1])
		switch child.kind {
		case KindArray:
			if !wantArray {
				return DropKindConflict, false
			}
			node = child
		case KindObject:
			if wantArray {
				return DropKindConflict, false
			}
			node = child
		default:
			// Missing or scalar: a fresh container replaces it.
			exists = false
		}
	}

	return 0, true
}

// place writes v at segs. It assumes decide accepted the path.
func place(root *Object, segs []string, v Value) {
	node := ObjectValue(root)
	last := len(segs) - 1
	for i := 0; i < last; i++ {
		child := lookup(node, segs[i])
		if child.IsScalar() {
			if IsIndex(segs[i+1]) {
				child = ArrayValue(&Array{})
			} else {
				child = ObjectValue(newObject(1))
			}
			store(node, segs[i], child)
		}
		node = child
	}
	store(node, segs[last], v)
}

func lookup(node Value, seg string) Value {
	if node.kind == KindArray {
		i, err := strconv.Atoi(seg)
		if err != nil {
			return Value{}
		}
		return node.arr.At(i)
	}
	v, _ := node.obj.Get(seg)
	return v
}

func store(node Value, seg string, v Value) {
	if node.kind == KindArray {
		i, _ := strconv.Atoi(seg)
		node.arr.set(i, v)
		return
	}
	node.obj.set(seg, v)
}
