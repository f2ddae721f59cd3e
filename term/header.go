package term

import "sync/atomic"

// LifeState is the 2-bit collector state every Term carries, matching
// Term::life_t in original_source/include/lambda/term.h.
type LifeState uint32

const (
	Unborn LifeState = iota
	Active
	Old
	Dead
)

func (s LifeState) String() string {
	switch s {
	case Unborn:
		return "unborn"
	case Active:
		return "active"
	case Old:
		return "old"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Header is the bookkeeping every Term embeds: collector life state plus
// the Global/Static bit-flags that replace the donor spec's separate
// Global<V>/Static<V> wrapper types (see spec.md's DESIGN NOTES §9).
//
// Grounded on the cache-line-padded atomic state cell in
// github.com/joeycumines/go-utilpkg/eventloop's FastState, since the life
// state is read and CAS'd from arbitrary worker goroutines during GC.
type Header struct { //nolint:unused
	_      [64]byte
	life   atomic.Uint32
	global atomic.Bool
	_      [55]byte
	static bool
	label  string
}

// NewHeader returns a Header for a freshly-allocated, unborn term.
func NewHeader(label string) Header {
	return Header{label: label}
}

func (h *Header) Life() LifeState { return LifeState(h.life.Load()) }

func (h *Header) SetLife(s LifeState) { h.life.Store(uint32(s)) }

// MarkBirth transitions a freshly-constructed term from unborn to old, per
// spec.md §3.1's lifecycle: "transitions to old after construction
// completes."
func (h *Header) MarkBirth() { h.life.Store(uint32(Old)) }

// MarkActive marks the term active if it is currently old, returning true
// if this call performed the transition (the collector uses the return
// value to decide whether to push the term's children onto the marking
// worklist — marking active is a fixed point within one GC cycle).
func (h *Header) MarkActive() bool {
	return h.life.CompareAndSwap(uint32(Old), uint32(Active))
}

// MarkOld resets an active term to old at the start of a GC cycle (phase 1
// of global GC in spec.md §4.7: "one worker marks every known global and
// new object as old").
func (h *Header) MarkOld() {
	h.life.CompareAndSwap(uint32(Active), uint32(Old))
}

// MarkDead reclaims the term at sweep time.
func (h *Header) MarkDead() { h.life.Store(uint32(Dead)) }

func (h *Header) IsGlobal() bool { return h.global.Load() }

// SetGlobal marks the term as globally accessible. Per invariant 1 in
// spec.md §3.1, any field of a Global term referencing another Term must
// reference a Global term; callers are responsible for globalizing
// children first.
func (h *Header) SetGlobal() { h.global.Store(true) }

func (h *Header) IsStatic() bool { return h.static }

// MarkStatic makes the term a Static: a Global whose lifetime is the
// process, excluded from collection.
func (h *Header) MarkStatic() {
	h.static = true
	h.SetGlobal()
	h.life.Store(uint32(Active))
}

func (h *Header) Label() string { return h.label }
