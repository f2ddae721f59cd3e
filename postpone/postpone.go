// Package postpone implements rescheduling of an evaluation blocked on a
// Blackhole, per spec.md §4.8: rather than let a worker busy-wait on a
// thread that could run other queued work, a blocked continuation is
// re-enqueued at priority 1 and retried the next time it is popped.
//
// The term package's own Blackhole.Reduce already blocks correctly (with
// exponential backoff) when a worker forces a value nested deep inside a
// reduction it cannot unwind from; Continuation is the coarser-grained
// optimization workerpool applies at the top of its evaluate loop, before
// ever calling term.FullReduce on a freshly-popped work item — see
// DESIGN.md for why postponement is implemented at that granularity
// rather than by threading a mid-reduction unwind signal through every
// Application.Reduce call.
package postpone

import (
	"time"

	"github.com/lambdago/lambda/term"
)

const (
	minRetryBackoff = 2 * time.Millisecond
	maxRetryBackoff = 64 * time.Millisecond
)

// Continuation is postponed(x, blocker) from spec.md §4.8: a term whose
// evaluation previously turned out to be blocked, waiting to be retried.
type Continuation struct {
	Term     term.Term
	Mode     term.Mode
	attempts int
}

// New wraps t (with evaluation mode) as a fresh continuation, not yet
// retried.
func New(t term.Term, mode term.Mode) *Continuation {
	return &Continuation{Term: t, Mode: mode}
}

// Resume re-checks whether Term would still block. If so, it sleeps
// briefly (escalating with repeated re-postponements, to avoid thrashing
// the queue) and calls requeue to push itself back at priority 1,
// returning ok=false. Otherwise it drives Term to a fixed point via
// term.FullReduce and returns the result with ok=true.
func (c *Continuation) Resume(ctx *term.Context, requeue func(*Continuation)) (result term.Term, ok bool) {
	if c.Term.ReduceWillBlock() {
		c.attempts++
		time.Sleep(c.backoff())
		requeue(c)
		return nil, false
	}
	return term.FullReduce(ctx, c.Term, c.Mode), true
}

func (c *Continuation) backoff() time.Duration {
	d := minRetryBackoff << uint(c.attempts-1)
	if d > maxRetryBackoff || d <= 0 {
		d = maxRetryBackoff
	}
	return d
}

// Attempts reports how many times this continuation has been re-postponed.
func (c *Continuation) Attempts() int { return c.attempts }
