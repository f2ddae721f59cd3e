// Package trace implements the "Trace Sinks" component from spec.md §2: a
// pluggable state-transition logging interface, with implementations
// swappable the same way github.com/joeycumines/logiface lets any
// github.com/joeycumines/go-utilpkg/eventloop caller swap zerolog for a
// test double. spec.md §6.3 ("State transitions, with timestamps") and
// SPEC_FULL.md §4's restored VCD-style memory sampling are both modeled
// here as a single narrow Sink interface.
package trace

// Event is a single diagnostic record: a worker's state transition, a
// memory sample, or an ad-hoc labeled occurrence (GC phase boundaries,
// dot_dump requests, blackhole contention).
type Event struct {
	WorkerID int
	Label    string
	Fields   map[string]any
}

// Sink is the pluggable destination for runtime diagnostics. Every method
// must be safe for concurrent use by multiple workers (spec.md §5: "Print/
// trace output is serialized by a process-wide mutex" — here, by whatever
// synchronization the concrete Sink's backend provides).
type Sink interface {
	// Transition records a worker process-state change (spec.md §4.6's
	// startup/evaluate/global_gc/dot_dump/halt/shutdown).
	Transition(workerID int, from, to string)

	// SampleMemory records a point-in-time memory usage sample for a
	// worker, restoring the periodic sampling vcd.h performed
	// (SPEC_FULL.md §4); the waveform file format itself is out of scope.
	SampleMemory(workerID int, bytes uint64)

	// Emit records an arbitrary labeled event (blackhole contention,
	// postponement, GC phase boundaries, dot_dump graph dumps).
	Emit(e Event)

	// Close flushes and releases any resources the sink holds.
	Close() error
}

// noopSink discards everything; used as the default when no sink is
// configured, so engine code never needs a nil check.
type noopSink struct{}

func (noopSink) Transition(int, string, string)  {}
func (noopSink) SampleMemory(int, uint64)        {}
func (noopSink) Emit(Event)                      {}
func (noopSink) Close() error                    { return nil }

// Noop returns a Sink that discards all events.
func Noop() Sink { return noopSink{} }
