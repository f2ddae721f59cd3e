package engine

import (
	"testing"
	"time"

	"github.com/lambdago/lambda/numeric"
	"github.com/lambdago/lambda/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addFunc() term.Term {
	return term.NewFunction("add", 2, func(ctx *term.Context, args []term.Term) term.Term {
		a := args[0].(*term.Constant).Value()
		b := args[1].(*term.Constant).Value()
		sum, err := numeric.Add(a, b)
		if err != nil {
			panic(err)
		}
		return term.NewConstant(sum)
	})
}

func TestEngine_ComputeArithmetic(t *testing.T) {
	e := New(Config{Workers: 2, QueueCapacityPerBand: 16})
	e.Start()
	defer e.Shutdown()

	app := e.Apply(e.Apply(addFunc(), e.Constant(numeric.Int(2))), e.Constant(numeric.Int(3)))
	v, err := e.Compute(app)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.Int())
}

func TestEngine_Par_ResolvesInBackground(t *testing.T) {
	e := New(Config{Workers: 2, QueueCapacityPerBand: 16})
	e.Start()
	defer e.Shutdown()

	app := e.Apply(e.Apply(addFunc(), e.Constant(numeric.Int(7))), e.Constant(numeric.Int(8)))
	bh := e.Par(app)

	v, err := e.Compute(bh)
	require.NoError(t, err)
	assert.Equal(t, int64(15), v.Int())
}

func TestEngine_Compute_NonApplicable(t *testing.T) {
	e := New(Config{Workers: 1, QueueCapacityPerBand: 16})
	e.Start()
	defer e.Shutdown()

	// Applying an argument to a bare Constant is not applicable.
	bad := e.Apply(e.Constant(numeric.Int(1)), e.Constant(numeric.Int(2)))
	_, err := e.Compute(bad)
	require.Error(t, err)
	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, ErrNonApplicable, engErr.Kind)
}

func TestEngine_CatchHalt_StopsPropagation(t *testing.T) {
	e := New(Config{Workers: 1, QueueCapacityPerBand: 16})
	e.Start()
	defer e.Shutdown()

	e.Halt()
	// CatchHalt should still complete evaluation of an already-resolved
	// constant rather than unwind through the catch frame.
	c := e.Constant(numeric.Int(9))
	result := e.CatchHalt(c)
	v, ok := result.(*term.Constant)
	require.True(t, ok)
	assert.Equal(t, int64(9), v.Value().Int())
}

func TestEngine_StartIsIdempotent(t *testing.T) {
	e := New(Config{Workers: 1, QueueCapacityPerBand: 16})
	e.Start()
	e.Start()
	time.Sleep(5 * time.Millisecond)
	e.Shutdown()
}

func TestConfig_FromEnv_Defaults(t *testing.T) {
	cfg := Config{}.FromEnv()
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Greater(t, cfg.MacroblockSize, 0)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "non-applicable reduction", ErrNonApplicable.String())
	assert.Equal(t, "stack overflow", ErrStackOverflow.String())
}

func TestError_Unwrap(t *testing.T) {
	cause := term.NonApplicableError{Head: term.NewConstant(numeric.Int(1))}
	e := &Error{Kind: ErrNonApplicable, Label: "x", WorkerID: 0, Cause: cause}
	assert.ErrorIs(t, e, cause)
}
