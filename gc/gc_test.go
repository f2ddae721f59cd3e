package gc

import (
	"testing"

	"github.com/lambdago/lambda/numeric"
	"github.com/lambdago/lambda/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_ReclaimsUnreachable(t *testing.T) {
	c := NewCollector()
	h := c.NewHeap(0)

	reachable := term.NewConstant(numeric.Int(1))
	garbage := term.NewConstant(numeric.Int(2))
	h.Register(reachable)
	h.Register(garbage)

	var roots RootStack
	pop := roots.Push(reachable)
	defer pop()

	stack := term.NewStack(4)
	reclaimed := Local(h, &roots, stack)

	assert.Equal(t, 1, reclaimed)
	assert.Equal(t, term.Active, reachable.Header().Life())
	assert.Equal(t, term.Dead, garbage.Header().Life())
}

func TestGlobalGC_FullCycle(t *testing.T) {
	c := NewCollector()
	h := c.NewHeap(0)
	g := &GlobalGC{Collector: c}

	live := term.NewConstant(numeric.Int(1))
	dead := term.NewConstant(numeric.Int(2))
	h.Register(live)
	h.Register(dead)

	var roots RootStack
	pop := roots.Push(live)
	defer pop()
	stack := term.NewStack(4)

	g.Phase1ResetToOld([]*Heap{h})
	g.Phase2And3Mark(&roots, stack, nil)
	reclaimedNew := g.Phase4SweepLocalAndNew(h)
	reclaimedGlobal := g.Phase5SweepGlobal()
	reclaimedOther := g.Phase6SweepOther(h)

	assert.Equal(t, 1, reclaimedNew)
	assert.Equal(t, 0, reclaimedGlobal)
	assert.Equal(t, 0, reclaimedOther)
	assert.Equal(t, term.Dead, dead.Header().Life())
	assert.Equal(t, term.Active, live.Header().Life())
}

func TestRootStack_PopOutOfOrderPanics(t *testing.T) {
	var roots RootStack
	c1 := term.NewConstant(numeric.Int(1))
	c2 := term.NewConstant(numeric.Int(2))
	pop1 := roots.Push(c1)
	pop2 := roots.Push(c2)
	_ = pop2

	assert.Panics(t, func() { pop1() })
	require.Equal(t, 2, roots.Len())
}
