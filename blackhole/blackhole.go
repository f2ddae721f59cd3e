// Package blackhole implements the single-writer-many-reader synchronization
// cell shared by every reducible term that more than one worker might reach:
// at most one worker computes the wrapped value, every other worker blocks
// until it is published.
//
// Grounded on the CAS state-machine idiom in
// github.com/joeycumines/go-utilpkg/eventloop's FastState (a cache-line
// padded atomic.Uint32, a CAS transition (Enter) plus a Load (State)), specialised to
// the three-state noresult/calculating/done protocol instead of LoopState's
// five states.
package blackhole

import (
	"sync/atomic"
	"time"
)

// State is one of the three states a Cell may occupy. Transitions only ever
// move forward: noresult -> calculating -> done.
type State uint32

const (
	NoResult State = iota
	Calculating
	Done
)

func (s State) String() string {
	switch s {
	case NoResult:
		return "noresult"
	case Calculating:
		return "calculating"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// minBackoff and maxBackoff bound the exponential backoff a waiting reader
// uses, per spec.md's "2ms up to 64ms" blackhole wait schedule.
const (
	minBackoff = 2 * time.Millisecond
	maxBackoff = 64 * time.Millisecond
)

// Cell is the synchronization primitive backing a Blackhole term. The zero
// value is ready to use, in the NoResult state.
type Cell struct { //nolint:unused
	_       [64]byte
	state   atomic.Uint32
	_       [60]byte
	result  atomic.Pointer[any]
}

// Enter attempts the noresult -> calculating transition. It returns true if
// this call won the race and must now compute the result and call Finish;
// false means another worker already owns (or has finished) the
// computation.
func (c *Cell) Enter() bool {
	return c.state.CompareAndSwap(uint32(NoResult), uint32(Calculating))
}

// State reports the current state without blocking.
func (c *Cell) State() State {
	return State(c.state.Load())
}

// Result returns the published result and true if the cell is Done;
// otherwise (nil, false).
func (c *Cell) Result() (any, bool) {
	if State(c.state.Load()) != Done {
		return nil, false
	}
	p := c.result.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Finish publishes r and transitions to Done. It is idempotent: a second
// call (a race between two callers, which should not normally happen since
// only the Enter winner finishes, but Finish is also used by code that
// doesn't track ownership) never overwrites an already-published result and
// always returns the value that won.
func (c *Cell) Finish(r any) any {
	if c.state.CompareAndSwap(uint32(Calculating), uint32(Done)) {
		c.result.Store(&r)
		return r
	}
	// Someone else already finished (or Finish was called on an already-done
	// cell); spin briefly for the publish to land, then return it.
	for {
		if v, ok := c.Result(); ok {
			return v
		}
	}
}

// Halter reports whether the process-wide halt flag has been raised; Wait
// stops blocking early (returning ok=false) once it turns true, so a
// cancelled process doesn't leave readers spinning forever.
type Halter interface {
	Halted() bool
}

// Wait blocks the calling goroutine until the cell reaches Done or halted
// reports true, using the escalating sleep-backoff schedule from spec.md
// §4.4 rather than a condition variable, matching the donor repo's
// poll-then-sleep idiom in eventloop's idle path.
func Wait(c *Cell, halted Halter) (any, bool) {
	backoff := minBackoff
	for {
		if v, ok := c.Result(); ok {
			return v, true
		}
		if halted != nil && halted.Halted() {
			return nil, false
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
