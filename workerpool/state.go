package workerpool

import "sync/atomic"

// ProcessState is one of the six process-wide states from spec.md §4.6/§4.9.
type ProcessState uint32

const (
	// StateStartup is the initial state; workers wait at the startup barrier.
	StateStartup ProcessState = iota
	// StateEvaluate is the normal work-stealing evaluation loop.
	StateEvaluate
	// StateGlobalGC runs the barrier-synchronized mark-sweep collector.
	StateGlobalGC
	// StateDotDump has one worker write a graph dump, then returns to StateEvaluate.
	StateDotDump
	// StateHalt is entered on SIGINT; workers convert their top eval frame to halt mode.
	StateHalt
	// StateShutdown is terminal: workers idle-collect twice, close tracing, and exit.
	StateShutdown
)

func (s ProcessState) String() string {
	switch s {
	case StateStartup:
		return "startup"
	case StateEvaluate:
		return "evaluate"
	case StateGlobalGC:
		return "global_gc"
	case StateDotDump:
		return "dot_dump"
	case StateHalt:
		return "halt"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// FastState is a lock-free, cache-line-padded process state holder, modeled
// on eventloop's FastState: pure atomic CAS, no mutex, no transition
// validation (the worker loop enforces the legal transition graph).
type FastState struct { // betteralign:ignore
	_ [64]byte
	v atomic.Uint32
	_ [60]byte
}

// NewFastState creates a state machine starting at StateStartup.
func NewFastState() *FastState {
	s := &FastState{}
	s.v.Store(uint32(StateStartup))
	return s
}

// Load returns the current state atomically.
func (s *FastState) Load() ProcessState { return ProcessState(s.v.Load()) }

// Store atomically stores a new state, unconditionally.
func (s *FastState) Store(state ProcessState) { s.v.Store(uint32(state)) }

// TryTransition attempts an atomic CAS from one state to another.
func (s *FastState) TryTransition(from, to ProcessState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
