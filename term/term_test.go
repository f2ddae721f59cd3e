package term

import (
	"testing"

	"github.com/lambdago/lambda/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler() *fakeScheduler { return &fakeScheduler{} }

type fakeScheduler struct {
	spawned   []Term
	postponed []func(ctx *Context)
	halted    bool
}

func (f *fakeScheduler) Spawn(t Term)                      { f.spawned = append(f.spawned, t) }
func (f *fakeScheduler) Postpone(resume func(ctx *Context)) { f.postponed = append(f.postponed, resume) }
func (f *fakeScheduler) Halted() bool                      { return f.halted }

func newCtx() *Context {
	return &Context{Stack: NewStack(16), Scheduler: newScheduler()}
}

func TestConstant_Stuck(t *testing.T) {
	c := NewConstant(numeric.Int(5))
	ctx := newCtx()
	assert.Same(t, c, c.Reduce(ctx))
	assert.False(t, c.ReduceWillBlock())
}

func TestFunction_ZeroArityCachesResult(t *testing.T) {
	calls := 0
	f := NewFunction("answer", 0, func(ctx *Context, args []Term) Term {
		calls++
		return NewConstant(numeric.Int(42))
	})
	ctx := newCtx()
	r1 := f.Reduce(ctx)
	r2 := f.Reduce(ctx)
	assert.Equal(t, 1, calls)
	assert.Same(t, r1, r2)
	c, ok := r1.(*Constant)
	require.True(t, ok)
	assert.Equal(t, int64(42), c.Value().Int())
}

func TestApplication_Saturated(t *testing.T) {
	add := NewFunction("add", 2, func(ctx *Context, args []Term) Term {
		a := args[0].(*Constant).Value()
		b := args[1].(*Constant).Value()
		v, err := numeric.Add(a, b)
		require.NoError(t, err)
		return NewConstant(v)
	})
	app := NewApplication(NewApplication(add, NewConstant(numeric.Int(3))), NewConstant(numeric.Int(4)))
	ctx := newCtx()
	r := FullReduce(ctx, app, ModeForced)
	c, ok := r.(*Constant)
	require.True(t, ok)
	assert.Equal(t, int64(7), c.Value().Int())
}

func TestApplication_UnderSaturatedIsStuck(t *testing.T) {
	add := NewFunction("add", 2, func(ctx *Context, args []Term) Term {
		t.Fatal("should not be invoked before saturation")
		return nil
	})
	app := NewApplication(add, NewConstant(numeric.Int(3)))
	ctx := newCtx()
	r := app.Reduce(ctx)
	assert.Same(t, app, r)
}

func TestApplication_NonApplicablePanics(t *testing.T) {
	app := NewApplication(NewConstant(numeric.Int(1)), NewConstant(numeric.Int(2)))
	ctx := newCtx()
	assert.Panics(t, func() { app.Reduce(ctx) })
}

func TestBlackhole_CachesAndSharesResult(t *testing.T) {
	calls := 0
	f := NewFunction("once", 0, func(ctx *Context, args []Term) Term {
		calls++
		return NewConstant(numeric.Int(9))
	})
	bh := NewBlackhole(f)
	ctx := newCtx()
	r1 := bh.Reduce(ctx)
	r2 := bh.Reduce(ctx)
	assert.Equal(t, 1, calls)
	assert.Equal(t, r1, r2)
}

func TestGlobalize_MarksReachableChildren(t *testing.T) {
	inner := NewConstant(numeric.Int(1))
	app := NewApplication(NewFunction("f", 1, func(ctx *Context, args []Term) Term { return args[0] }), inner)
	Globalize(app)
	assert.True(t, app.Header().IsGlobal())
	assert.True(t, inner.Header().IsGlobal())
}

func TestNewLet_MarksStaticAndGlobal(t *testing.T) {
	c := NewConstant(numeric.Int(7))
	let := NewLet(c)
	assert.True(t, let.Header().IsStatic())
	assert.True(t, let.Header().IsGlobal())
	assert.Equal(t, Active, let.Header().Life())
}

func TestHeader_MarkActiveIsFixedPoint(t *testing.T) {
	h := NewHeader("x")
	h.MarkBirth()
	require.True(t, h.MarkActive())
	assert.False(t, h.MarkActive(), "second MarkActive on an already-active term is not a new transition")
}
