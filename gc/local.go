package gc

import "github.com/lambdago/lambda/term"

// Local runs an unsynchronized local GC cycle for one worker: mark from
// its own root stack and eval stack, then sweep only its local and new
// lists (spec.md §4.7's "Local GC"). Unlike global GC, there is no
// barrier and no reset-to-old phase — newly-born terms already start
// life Old (term.Header.MarkBirth), so marking promotes true survivors to
// Active and sweeping reclaims the rest.
func Local(h *Heap, roots *RootStack, stack *term.Stack) (reclaimed int) {
	seeds := collectRoots(roots, stack.Frames())
	mark(seeds)

	for _, t := range h.Local.Sweep() {
		_ = t
		reclaimed++
	}
	for _, t := range h.New.Sweep() {
		_ = t
		reclaimed++
	}
	return reclaimed
}
