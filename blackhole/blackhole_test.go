package blackhole

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_EnterSingleWinner(t *testing.T) {
	c := &Cell{}
	const n = 100
	var wins atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if c.Enter() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), wins.Load())
	assert.Equal(t, Calculating, c.State())
}

func TestCell_FinishIdempotent(t *testing.T) {
	c := &Cell{}
	require.True(t, c.Enter())
	r1 := c.Finish(42)
	r2 := c.Finish(99)
	assert.Equal(t, 42, r1)
	assert.Equal(t, 42, r2)
	assert.Equal(t, Done, c.State())
}

func TestCell_ContendedByManyDemanders(t *testing.T) {
	c := &Cell{}
	const demanders = 100
	var computed atomic.Int64

	var wg sync.WaitGroup
	wg.Add(demanders)
	results := make([]any, demanders)
	for i := 0; i < demanders; i++ {
		go func(i int) {
			defer wg.Done()
			if c.Enter() {
				computed.Add(1)
				results[i] = c.Finish("the-one-true-result")
				return
			}
			v, ok := Wait(c, nil)
			require.True(t, ok)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), computed.Load(), "wrapped computation must run exactly once")
	for i, r := range results {
		assert.Equal(t, "the-one-true-result", r, "demander %d got wrong result", i)
	}
}

type fakeHalter struct{ halted atomic.Bool }

func (f *fakeHalter) Halted() bool { return f.halted.Load() }

func TestWait_ReturnsOnHalt(t *testing.T) {
	c := &Cell{}
	require.True(t, c.Enter())
	h := &fakeHalter{}
	h.halted.Store(true)
	v, ok := Wait(c, h)
	assert.Nil(t, v)
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "noresult", NoResult.String())
	assert.Equal(t, "calculating", Calculating.String())
	assert.Equal(t, "done", Done.String())
}
