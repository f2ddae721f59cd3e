package lambdalib

import (
	"testing"

	"github.com/lambdago/lambda/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *engine.Engine {
	e := engine.New(engine.Config{Workers: 1, QueueCapacityPerBand: 16})
	e.Start()
	t.Cleanup(e.Shutdown)
	return e
}

func TestFromInts_HeadTailIsEmpty(t *testing.T) {
	e := newEngine(t)
	list := FromInts([]int64{1, 2, 3})

	assert.False(t, IsEmpty(e, list))

	h := Head(e, list)
	v, err := e.Compute(h)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int())

	rest := Tail(e, list)
	h2 := Head(e, rest)
	v2, err := e.Compute(h2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2.Int())
}

func TestFromInts_Empty(t *testing.T) {
	e := newEngine(t)
	list := FromInts(nil)
	assert.True(t, IsEmpty(e, list))
}
