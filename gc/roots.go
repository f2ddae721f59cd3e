package gc

import "github.com/lambdago/lambda/term"

// RootStack is the thread-local (here: per-worker-goroutine) intrusive
// stack of live term pointers described in spec.md §3.3. Go has no
// constructor/destructor pairs to push/pop automatically, so callers push
// on scope entry and pop via defer, the same discipline the donor repo
// uses for safeExecute's panic-recovery wrapping in eventloop/loop.go.
type RootStack struct {
	items []term.Term
}

// Push records t as live for the duration of the caller's scope. Returns a
// function that pops it; callers typically `defer roots.Push(t)()`.
func (r *RootStack) Push(t term.Term) func() {
	r.items = append(r.items, t)
	idx := len(r.items) - 1
	return func() {
		if idx != len(r.items)-1 {
			panic("gc: RootStack: pop out of LIFO order")
		}
		r.items = r.items[:idx]
	}
}

func (r *RootStack) Each(fn func(term.Term)) {
	for _, t := range r.items {
		fn(t)
	}
}

func (r *RootStack) Len() int { return len(r.items) }
