package gc

import (
	"sync"

	"github.com/lambdago/lambda/term"
)

// List is one of the ordered heap-element lists from spec.md §3.4 (free,
// new, local, global, other). Since this implementation lets the host Go
// runtime own actual storage, List tracks only the classification bucket
// a term currently belongs to, not byte ranges — the term's own Header
// carries the life-state bits the sweep phases act on.
//
// Grounded on the grey/black worklist idiom in
// _examples/other_examples' containerd gc.Tricolor: a plain mutex-guarded
// slice, no address-ordering or coalescing since there is no raw memory
// to coalesce.
type List struct {
	mu    sync.Mutex
	items []term.Term
}

func (l *List) Add(t term.Term) {
	l.mu.Lock()
	l.items = append(l.items, t)
	l.mu.Unlock()
}

// Sweep removes and returns every item whose life state is exactly old
// (i.e. it was reset to old at the start of this cycle and never
// re-marked active), marking each Dead as it is reclaimed. Surviving items
// are kept in their original relative order.
func (l *List) Sweep() (reclaimed []term.Term) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0]
	for _, t := range l.items {
		if t.Header().Life() == term.Old {
			t.Header().MarkDead()
			reclaimed = append(reclaimed, t)
			continue
		}
		kept = append(kept, t)
	}
	l.items = kept
	return reclaimed
}

// Drain removes and returns every item in the list (used to reclassify
// the "new" list into "local"/"global" during phase 4 of global GC).
func (l *List) Drain() []term.Term {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := l.items
	l.items = nil
	return items
}

// MarkAllOld resets every surviving (non-dead) item's life state to old,
// the reset step phase 1 of global GC performs before re-marking from
// roots (spec.md §4.7).
func (l *List) MarkAllOld() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.items {
		t.Header().MarkOld()
	}
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List) Each(fn func(term.Term)) {
	l.mu.Lock()
	items := append([]term.Term(nil), l.items...)
	l.mu.Unlock()
	for _, t := range items {
		fn(t)
	}
}
