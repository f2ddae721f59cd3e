package term

// Scheduler is the subset of worker/queue behavior the term graph needs
// during reduction: pushing parallel spawns and postponed continuations,
// and checking the process-wide halt flag. Declared here (rather than
// imported from workqueue/workerpool) to avoid a import cycle, since both
// of those packages import term.
type Scheduler interface {
	// Spawn pushes t onto the priority-0 (parallel spawn) queue band, for
	// the par() operation (spec.md §4.5).
	Spawn(t Term)

	// Postpone pushes a continuation onto the priority-1 band, for a
	// reducer blocked on a Blackhole in calculating state (spec.md §4.8).
	Postpone(resume func(ctx *Context))

	// Halted reports whether the process has been asked to halt.
	Halted() bool
}

// Context is threaded through every Reduce call: the worker's own
// evaluation Stack (so Application.Reduce can push frames) plus the
// Scheduler hooks needed for par/postponement/halt checks.
type Context struct {
	Stack     *Stack
	Scheduler Scheduler
}

// Halted reports the process-wide halt flag, satisfying
// github.com/lambdago/lambda/blackhole.Halter so a Context can be passed
// directly to blackhole.Wait.
func (c *Context) Halted() bool {
	if c.Scheduler == nil {
		return false
	}
	return c.Scheduler.Halted()
}
