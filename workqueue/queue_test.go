package workqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_PushBackPopBackIsLIFO(t *testing.T) {
	r := newRing[int](4)
	require.True(t, r.PushBack(1))
	require.True(t, r.PushBack(2))
	v, ok := r.PopBack()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestRing_OverflowReturnsFalse(t *testing.T) {
	r := newRing[int](2)
	require.True(t, r.PushBack(1))
	require.True(t, r.PushBack(2))
	assert.False(t, r.PushBack(3))
}

func TestQueue_PopPrefersPostponed(t *testing.T) {
	q := New(8)
	q.Push(PrioritySpawn, "spawn-1")
	q.Push(PriorityPostponed, "postponed-1")
	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "postponed-1", v)
	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, "spawn-1", v)
}

func TestQueue_OverflowDropsSilently(t *testing.T) {
	q := New(2)
	require.True(t, q.Push(PrioritySpawn, 1))
	require.True(t, q.Push(PrioritySpawn, 2))
	assert.False(t, q.Push(PrioritySpawn, 3))
	assert.Equal(t, int64(1), q.Drops(PrioritySpawn))
}

func TestQueue_PopEmptyReturnsFalse(t *testing.T) {
	q := New(2)
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestQueue_Len(t *testing.T) {
	q := New(4)
	q.Push(PrioritySpawn, 1)
	q.Push(PriorityPostponed, 2)
	assert.Equal(t, 2, q.Len())
}
