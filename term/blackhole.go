package term

import "github.com/lambdago/lambda/blackhole"

// Blackhole is a one-shot synchronization cell wrapping a term t, ensuring
// at most one worker reduces t to completion while every other worker
// blocks on the result (spec.md §4.4). The CAS protocol itself lives in
// package blackhole; this type adapts it to the Term vtable.
type Blackhole struct {
	header  Header
	wrapped Term
	cell    blackhole.Cell
}

// NewBlackhole wraps t. Per spec.md §4.4, t must already be a valid graph
// — a Blackhole may not be reduced during its own construction.
func NewBlackhole(t Term) *Blackhole {
	return &Blackhole{header: NewHeader(""), wrapped: t}
}

func (b *Blackhole) Header() *Header { return &b.header }

func (b *Blackhole) Kind() Kind { return KindBlackhole }

// ReduceWillBlock is true exactly when the cell is currently calculating.
func (b *Blackhole) ReduceWillBlock() bool {
	return b.cell.State() == blackhole.Calculating
}

func (b *Blackhole) FollowIndirection() Term {
	if v, ok := b.cell.Result(); ok {
		return v.(Term)
	}
	return b
}

func (b *Blackhole) Children() []Term {
	if v, ok := b.cell.Result(); ok {
		return []Term{v.(Term)}
	}
	return []Term{b.wrapped}
}

// Reduce implements spec.md §4.4's three-step protocol: Enter (CAS
// noresult->calculating), Wait (escalating backoff for the losers), and
// Finish (the winner publishes its computed result). The winner drives its
// own private Stack/Context sharing the same Scheduler, so its reduction
// can itself spawn or postpone work without touching the caller's frame.
func (b *Blackhole) Reduce(ctx *Context) Term {
	if v, ok := b.cell.Result(); ok {
		return v.(Term)
	}
	if b.cell.Enter() {
		sub := &Context{Stack: NewStack(8), Scheduler: ctx.Scheduler}
		result := FullReduce(sub, b.wrapped, ModeForced)
		result.Header().SetGlobal()
		return b.cell.Finish(result).(Term)
	}
	v, ok := blackhole.Wait(&b.cell, ctx)
	if !ok {
		// Process halted while waiting; return the wrapped term so the
		// caller's halt propagation can unwind normally instead of
		// blocking forever.
		return b.wrapped
	}
	return v.(Term)
}
