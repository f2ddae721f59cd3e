// Package gc implements the mark-sweep collector's bookkeeping: per-worker
// new/local/other lists plus a collector-wide global list, local
// (unsynchronized) collection, and the barrier-phased global collection
// described in spec.md §4.7. Because the host Go runtime already owns
// actual memory, this package's "sweep" reclassifies and marks Term life
// state rather than freeing bytes — the macroblock/free-list allocator in
// original_source/include/lambda/gc.h has no analogue here (see
// DESIGN.md).
package gc

import "github.com/lambdago/lambda/term"

// Heap is one worker's view of the collector: its own new/local/other
// lists, and a reference to the Collector's single shared global list.
type Heap struct {
	WorkerID int
	New      *List
	Local    *List
	Other    *List
	Global   *List // shared; see Collector.Global
}

// Register adds a freshly-constructed term to the worker's "new" list and
// marks its birth (spec.md §3.1's unborn -> old transition on
// construction-complete).
func (h *Heap) Register(t term.Term) {
	t.Header().MarkBirth()
	h.New.Add(t)
}

// RegisterOther tracks a non-term payload (e.g. a blackhole.Cell that
// outlives the term embedding it, or trace buffers) the way term.h's
// sentinel-1 "other" payload classification does.
func (h *Heap) RegisterOther(t term.Term) {
	h.Other.Add(t)
}

// Collector owns the state shared across all workers: the single global
// list (phase 5 of global GC is swept by exactly one worker).
type Collector struct {
	Global *List
}

// NewCollector returns a Collector with an empty global list.
func NewCollector() *Collector {
	return &Collector{Global: &List{}}
}

// NewHeap returns a worker's Heap, wired to this Collector's shared global
// list.
func (c *Collector) NewHeap(workerID int) *Heap {
	return &Heap{
		WorkerID: workerID,
		New:      &List{},
		Local:    &List{},
		Other:    &List{},
		Global:   c.Global,
	}
}
