// Package refcount provides a sparse id allocator with reference counts and a free list.
//
// Ids handed out by a Vector stay valid until their count drops to zero, so other
// ids never shift when elements are removed. Freed ids are reused before the id
// range grows.
package refcount

import (
	"fmt"
	"iter"
)

// Vector tracks the liveness of a dense id range with holes.
type Vector struct {
	counts    []int32
	free      []int
	usedCount int
}

// New returns an empty Vector.
func New() *Vector {
	return &Vector{}
}

// MaxIndex returns one past the largest id ever allocated.
func (v *Vector) MaxIndex() int {
	return len(v.counts)
}

// Count returns the number of live ids.
func (v *Vector) Count() int {
	return v.usedCount
}

// IsEmpty reports whether no ids are live.
func (v *Vector) IsEmpty() bool {
	return v.usedCount == 0
}

// IsDense reports whether every id in [0, MaxIndex) is live.
func (v *Vector) IsDense() bool {
	return v.usedCount == len(v.counts)
}

// IsValid reports whether id is live.
func (v *Vector) IsValid(id int) bool {
	return id >= 0 && id < len(v.counts) && v.counts[id] > 0
}

// RefCount returns the count for id, zero if it is free or out of range.
func (v *Vector) RefCount(id int) int {
	if id < 0 || id >= len(v.counts) {
		return 0
	}
	return int(v.counts[id])
}

// Allocate returns a live id with count 1, reusing a freed id if one exists.
func (v *Vector) Allocate() int {
	v.usedCount++
	for len(v.free) > 0 {
		id := v.free[len(v.free)-1]
		v.free = v.free[:len(v.free)-1]
		// the free list may hold ids that were revived by AllocateAt
		if v.counts[id] == 0 {
			v.counts[id] = 1
			return id
		}
	}
	v.counts = append(v.counts, 1)
	return len(v.counts) - 1
}

// AllocateAt makes id live with count 1, growing the range as needed. Skipped
// ids become free. It panics if id is already live.
func (v *Vector) AllocateAt(id int) {
	if id < 0 {
		panic(fmt.Sprintf("refcount: AllocateAt(%d) with negative id", id))
	}
	for len(v.counts) <= id {
		v.counts = append(v.counts, 0)
		if len(v.counts)-1 < id {
			v.free = append(v.free, len(v.counts)-1)
		}
	}
	if v.counts[id] > 0 {
		panic(fmt.Sprintf("refcount: AllocateAt(%d) on a live id", id))
	}
	v.counts[id] = 1
	v.usedCount++
}

// Increment adds n references to a live id.
func (v *Vector) Increment(id int, n int) {
	v.mustBeValid(id, "Increment")
	v.counts[id] += int32(n)
}

// Decrement removes n references. When the count reaches zero the id is freed.
func (v *Vector) Decrement(id int, n int) {
	v.mustBeValid(id, "Decrement")
	v.counts[id] -= int32(n)
	if v.counts[id] < 0 {
		panic(fmt.Sprintf("refcount: Decrement(%d) below zero", id))
	}
	if v.counts[id] == 0 {
		v.free = append(v.free, id)
		v.usedCount--
	}
}

// Clear frees every id and resets the range.
func (v *Vector) Clear() {
	v.counts = v.counts[:0]
	v.free = v.free[:0]
	v.usedCount = 0
}

// Copy makes v an exact copy of other.
func (v *Vector) Copy(other *Vector) {
	v.counts = append(v.counts[:0], other.counts...)
	v.free = append(v.free[:0], other.free...)
	v.usedCount = other.usedCount
}

// SetCounts replaces the whole state with the given counts. Zero entries become free ids.
func (v *Vector) SetCounts(counts []int32) {
	v.counts = append(v.counts[:0], counts...)
	v.free = v.free[:0]
	v.usedCount = 0
	for id, c := range v.counts {
		if c > 0 {
			v.usedCount++
		} else {
			v.counts[id] = 0
			v.free = append(v.free, id)
		}
	}
}

// Indices iterates over live ids in increasing order.
func (v *Vector) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for id, c := range v.counts {
			if c > 0 && !yield(id) {
				return
			}
		}
	}
}

func (v *Vector) mustBeValid(id int, op string) {
	if !v.IsValid(id) {
		panic(fmt.Sprintf("refcount: %s(%d) on an id that is not live", op, id))
	}
}
