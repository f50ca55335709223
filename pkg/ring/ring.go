/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package ring provides a doubly-linked ring backed by a slot arena.
// Entries are addressed by stable integer handles instead of pointers,
// so the ring has no ownership cycles and removed slots are recycled
// through a free list. Insertion, removal and reordering are O(1).
package ring

// Handle addresses an entry in a Ring. A handle stays valid from the
// insertion that returned it until that entry is removed; it is not
// invalidated by unrelated insertions, removals or moves.
type Handle int32

// Nil is returned by traversal methods when no entry exists in the
// requested direction.
const Nil Handle = -1

// The first two arena slots are reserved for the head and tail
// sentinels. Data entries are linked strictly between them.
const (
	head Handle = 0
	tail Handle = 1
)

type slot[V any] struct {
	value      V
	prev, next Handle
}

// Ring is a doubly-linked ring of values anchored by two sentinel
// slots. The front is the position right after the head sentinel and
// the back is the position right before the tail sentinel.
type Ring[V any] struct {
	slots []slot[V]
	free  []Handle
	size  int
}

// New creates a new Ring. sizeHint preallocates arena slots for the
// expected number of entries; it does not bound the ring.
func New[V any](sizeHint int) *Ring[V] {
	if sizeHint < 0 {
		sizeHint = 0
	}

	r := &Ring[V]{slots: make([]slot[V], 2, 2+sizeHint)}
	r.slots[head] = slot[V]{prev: tail, next: tail}
	r.slots[tail] = slot[V]{prev: head, next: head}
	return r
}

// PushFront inserts the given value at the front of the ring and
// returns the handle of the new entry.
func (r *Ring[V]) PushFront(value V) Handle {
	h := r.alloc(value)
	r.link(head, h)
	r.size++
	return h
}

// MoveToFront moves the entry of the given handle to the front of the
// ring. The handle remains valid.
func (r *Ring[V]) MoveToFront(h Handle) {
	r.unlink(h)
	r.link(head, h)
}

// Remove unlinks the entry of the given handle, releases its slot for
// reuse and returns the removed value. The handle must not be used
// afterwards.
func (r *Ring[V]) Remove(h Handle) V {
	r.unlink(h)
	value := r.slots[h].value

	// Zero the slot so the arena does not pin the removed value.
	var zero V
	r.slots[h].value = zero

	r.free = append(r.free, h)
	r.size--
	return value
}

// Value returns the value stored in the entry of the given handle.
func (r *Ring[V]) Value(h Handle) V {
	return r.slots[h].value
}

// Front returns the handle of the most recently pushed or moved entry,
// or Nil if the ring is empty.
func (r *Ring[V]) Front() Handle {
	if r.size == 0 {
		return Nil
	}
	return r.slots[head].next
}

// Back returns the handle of the least recently pushed or moved entry,
// or Nil if the ring is empty.
func (r *Ring[V]) Back() Handle {
	if r.size == 0 {
		return Nil
	}
	return r.slots[tail].prev
}

// Next returns the handle following the given one toward the back, or
// Nil if the given entry is the last.
func (r *Ring[V]) Next(h Handle) Handle {
	if next := r.slots[h].next; next != tail {
		return next
	}
	return Nil
}

// Prev returns the handle preceding the given one toward the front, or
// Nil if the given entry is the first.
func (r *Ring[V]) Prev(h Handle) Handle {
	if prev := r.slots[h].prev; prev != head {
		return prev
	}
	return Nil
}

// Len returns the number of entries in the ring.
func (r *Ring[V]) Len() int {
	return r.size
}

// Clear removes all entries and resets the ring to the two bare
// sentinels. Outstanding handles are invalidated. The arena capacity is
// kept for reuse.
func (r *Ring[V]) Clear() {
	for i := range r.slots {
		r.slots[i] = slot[V]{}
	}
	r.slots = r.slots[:2]
	r.slots[head] = slot[V]{prev: tail, next: tail}
	r.slots[tail] = slot[V]{prev: head, next: head}
	r.free = r.free[:0]
	r.size = 0
}

// alloc takes a slot from the free list or grows the arena and stores
// the given value in it.
func (r *Ring[V]) alloc(value V) Handle {
	if n := len(r.free); n > 0 {
		h := r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[h].value = value
		return h
	}

	r.slots = append(r.slots, slot[V]{value: value})
	return Handle(len(r.slots) - 1)
}

// link inserts h right after the given position.
func (r *Ring[V]) link(at, h Handle) {
	next := r.slots[at].next
	r.slots[h].prev = at
	r.slots[h].next = next
	r.slots[next].prev = h
	r.slots[at].next = h
}

// unlink detaches h from its neighbors.
func (r *Ring[V]) unlink(h Handle) {
	prev := r.slots[h].prev
	next := r.slots[h].next
	r.slots[prev].next = next
	r.slots[next].prev = prev
	r.slots[h].prev = Nil
	r.slots[h].next = Nil
}
