package term

// Globalize marks t, and everything reachable from it, as global, using an
// explicit worklist rather than recursion — mirroring term.h's
// stack-driven Globalize, which the original_source asserts always leaves
// its result IsGlobal(). Blackhole children are included via Children(),
// which already reports either the wrapped term (noresult/calculating) or
// the published result (done), satisfying spec.md §4.4's "if noresult,
// both the blackhole and its wrapped term must be globalized first."
func Globalize(t Term) Term {
	if t.Header().IsGlobal() {
		return t
	}
	stack := []Term{t}
	seen := make(map[Term]bool)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		n.Header().SetGlobal()
		for _, c := range n.Children() {
			if c != nil && !c.Header().IsGlobal() {
				stack = append(stack, c)
			}
		}
	}
	return t
}

// NewLet wraps t as a Static term: a Global whose lifetime is the process,
// excluded from collection. Restored from term.h's Let<T> (a
// Static<Constant<T>> or Static<Application>) as a convenience constructor
// for process-lifetime terms.
func NewLet(t Term) Term {
	Globalize(t)
	t.Header().MarkStatic()
	return t
}
