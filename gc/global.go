package gc

import "github.com/lambdago/lambda/term"

// GlobalGC drives the barrier-synchronized multi-phase cycle from spec.md
// §4.7. Barrier synchronization itself belongs to workerpool (it owns the
// pthread_barrier_t equivalent); GlobalGC exposes the phase bodies as
// plain functions the worker loop calls between barrier waits. Phases 2
// and 3 ("mark from roots" then "drain the marking worklist") are merged
// into one per-worker call: this package's mark() helper already seeds
// and drains a worklist in one pass, and since marking active is a CAS
// fixed point, interleaving the two sub-steps across workers is safe —
// see DESIGN.md.
type GlobalGC struct {
	Collector *Collector
}

// Phase1ResetToOld is performed by exactly one worker: every known global
// and new object is reset to old, so phase 2/3 marking can re-promote the
// true survivors.
func (g *GlobalGC) Phase1ResetToOld(heaps []*Heap) {
	g.Collector.Global.MarkAllOld()
	for _, h := range heaps {
		h.New.MarkAllOld()
	}
}

// Phase2And3Mark is called once per worker's roots (workerpool's barrier
// leader calls it for every worker in turn): it marks from that root
// stack, eval stack, and the given work-queue entries, and drains the
// resulting worklist to a fixed point.
func (g *GlobalGC) Phase2And3Mark(roots *RootStack, stack *term.Stack, queued []term.Term) {
	seeds := collectRoots(roots, stack.Frames())
	seeds = append(seeds, queued...)
	mark(seeds)
}

// Phase4SweepLocalAndNew is called by every worker: sweep the local list
// (reclaiming old survivors-that-weren't), then drain the new list,
// reclassifying each surviving term into local or global (by its Header's
// IsGlobal flag) and discarding the rest.
func (g *GlobalGC) Phase4SweepLocalAndNew(h *Heap) (reclaimed int) {
	reclaimed += len(h.Local.Sweep())

	for _, t := range h.New.Drain() {
		if t.Header().Life() == term.Dead {
			continue
		}
		if t.Header().Life() == term.Old {
			t.Header().MarkDead()
			reclaimed++
			continue
		}
		if t.Header().IsGlobal() {
			g.Collector.Global.Add(t)
		} else {
			h.Local.Add(t)
		}
	}
	return reclaimed
}

// Phase5SweepGlobal is performed by exactly one worker: sweep the shared
// global list.
func (g *GlobalGC) Phase5SweepGlobal() (reclaimed int) {
	return len(g.Collector.Global.Sweep())
}

// Phase6SweepOther is called once per worker's Heap (workerpool's barrier
// leader calls it for every heap in turn): sweep that heap's non-term
// payload list.
func (g *GlobalGC) Phase6SweepOther(h *Heap) (reclaimed int) {
	return len(h.Other.Sweep())
}
