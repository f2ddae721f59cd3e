package postpone

import (
	"testing"

	"github.com/lambdago/lambda/numeric"
	"github.com/lambdago/lambda/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinuation_ResumesWhenUnblocked(t *testing.T) {
	c := New(term.NewConstant(numeric.Int(5)), term.ModeForced)
	ctx := &term.Context{Stack: term.NewStack(4)}
	requeued := false
	result, ok := c.Resume(ctx, func(*Continuation) { requeued = true })
	require.True(t, ok)
	assert.False(t, requeued)
	v, isConst := result.(*term.Constant)
	require.True(t, isConst)
	assert.Equal(t, int64(5), v.Value().Int())
}

type blockingTerm struct {
	term.Term
	blocked bool
}

func (b *blockingTerm) ReduceWillBlock() bool { return b.blocked }

func TestContinuation_RepostponesWhenBlocked(t *testing.T) {
	bt := &blockingTerm{Term: term.NewConstant(numeric.Int(1)), blocked: true}
	c := New(bt, term.ModeForced)
	ctx := &term.Context{Stack: term.NewStack(4)}
	var requeued *Continuation
	_, ok := c.Resume(ctx, func(cc *Continuation) { requeued = cc })
	assert.False(t, ok)
	require.NotNil(t, requeued)
	assert.Equal(t, 1, requeued.Attempts())
}
