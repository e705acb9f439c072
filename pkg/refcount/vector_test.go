package refcount

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateReusesFreedIDs(t *testing.T) {
	v := New()
	a := v.Allocate()
	b := v.Allocate()
	c := v.Allocate()
	require.Equal(t, []int{0, 1, 2}, []int{a, b, c})

	v.Decrement(b, 1)
	assert.False(t, v.IsValid(b))
	assert.Equal(t, 2, v.Count())
	assert.Equal(t, 3, v.MaxIndex())
	assert.False(t, v.IsDense())

	d := v.Allocate()
	assert.Equal(t, b, d, "freed id should be reused")
	assert.True(t, v.IsDense())
}

func TestIncrementKeepsIDAlive(t *testing.T) {
	v := New()
	id := v.Allocate()
	v.Increment(id, 2)
	assert.Equal(t, 3, v.RefCount(id))

	v.Decrement(id, 2)
	assert.True(t, v.IsValid(id))
	v.Decrement(id, 1)
	assert.False(t, v.IsValid(id))
	assert.True(t, v.IsEmpty())
}

func TestAllocateAt(t *testing.T) {
	v := New()
	v.AllocateAt(3)
	assert.Equal(t, 4, v.MaxIndex())
	assert.Equal(t, 1, v.Count())
	assert.True(t, v.IsValid(3))
	assert.False(t, v.IsValid(0))

	// skipped ids are handed out again before the range grows
	got := []int{v.Allocate(), v.Allocate(), v.Allocate()}
	slices.Sort(got)
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 4, v.Allocate())
}

func TestAllocateAtLiveIDPanics(t *testing.T) {
	v := New()
	id := v.Allocate()
	assert.Panics(t, func() { v.AllocateAt(id) })
}

func TestDecrementFreeIDPanics(t *testing.T) {
	v := New()
	assert.Panics(t, func() { v.Decrement(0, 1) })
}

func TestIndicesSkipsHoles(t *testing.T) {
	v := New()
	for i := 0; i < 5; i++ {
		v.Allocate()
	}
	v.Decrement(1, 1)
	v.Decrement(3, 1)

	assert.Equal(t, []int{0, 2, 4}, slices.Collect(v.Indices()))
}

func TestSetCountsAndCopy(t *testing.T) {
	v := New()
	v.SetCounts([]int32{2, 0, 1})
	assert.Equal(t, 2, v.Count())
	assert.False(t, v.IsDense())

	w := New()
	w.Copy(v)
	assert.Equal(t, v.Count(), w.Count())
	assert.Equal(t, 2, w.RefCount(0))
	assert.Equal(t, 1, w.Allocate())
}
