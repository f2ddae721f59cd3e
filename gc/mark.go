package gc

import "github.com/lambdago/lambda/term"

// mark drains a grey-stack worklist seeded from seeds, promoting every
// old term it reaches to active and pushing its children, per spec.md
// §4.7 phase 3: "pop object -> for each reachable child -> if child is
// old, mark active and push." Grounded on the grays-stack traversal in
// _examples/other_examples' containerd gc.Tricolor, substituting
// Header().MarkActive()'s CAS for the map-based "seen" set (marking
// active is already a fixed point, so no separate seen-set is needed).
func mark(seeds []term.Term) {
	grays := append([]term.Term(nil), seeds...)
	for _, t := range seeds {
		t.Header().MarkActive()
	}
	for len(grays) > 0 {
		n := len(grays) - 1
		t := grays[n]
		grays = grays[:n]
		for _, child := range t.Children() {
			if child == nil {
				continue
			}
			if child.Header().MarkActive() {
				grays = append(grays, child)
			}
		}
	}
}

// collectRoots gathers every term reachable as a GC root: the worker's
// RootStack plus every frame currently on its evaluation Stack.
func collectRoots(roots *RootStack, evalFrames []term.EvalFrame) []term.Term {
	var seeds []term.Term
	if roots != nil {
		roots.Each(func(t term.Term) { seeds = append(seeds, t) })
	}
	for _, f := range evalFrames {
		if f.Term != nil {
			seeds = append(seeds, f.Term)
		}
	}
	return seeds
}
