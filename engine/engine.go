// Package engine is the public API surface spec.md §6.1 describes: eval,
// apply, constant, function, par, globalize, halt/catchHalt, and compute.
// It wraps a workerpool.Pool with a driver term.Context of its own, the
// same way a host program's main goroutine stands apart from the worker
// goroutines it schedules work onto.
package engine

import (
	"sync"

	"github.com/lambdago/lambda/numeric"
	"github.com/lambdago/lambda/term"
	"github.com/lambdago/lambda/workerpool"
)

// driverWorkerID labels diagnostics raised on the driver's own Context,
// distinguishing them from the 0-indexed worker goroutines in the pool.
const driverWorkerID = -1

// Engine owns a worker pool and the driver Context used to submit and
// fully reduce terms from outside the pool's own goroutines.
type Engine struct {
	cfg  Config
	pool *workerpool.Pool

	driverMu sync.Mutex
	driver   *term.Context

	stop    chan struct{}
	done    chan struct{}
	started bool
}

// New constructs an Engine from cfg plus any Option overrides. The pool is
// not yet running; call Start before Eval/Apply/Par/Compute.
func New(cfg Config, opts ...Option) *Engine {
	for _, o := range opts {
		o.apply(&cfg)
	}
	pool := workerpool.New(workerpool.Config{
		Workers:              cfg.Workers,
		QueueCapacityPerBand: cfg.QueueCapacityPerBand,
		IdleSleepMin:         cfg.idleSleepMin(),
		IdleSleepMax:         cfg.idleSleepMax(),
		GlobalGCInterval:     cfg.globalGCInterval(),
		StackDepth:           cfg.StackDepth,
		Sink:                 cfg.Sink,
	})
	return &Engine{
		cfg:    cfg,
		pool:   pool,
		driver: &term.Context{Stack: term.NewStackWithLimit(64, cfg.StackDepth), Scheduler: pool},
	}
}

// Start launches the pool's worker goroutines in the background. Calls
// after the first are no-ops.
func (e *Engine) Start() {
	e.driverMu.Lock()
	defer e.driverMu.Unlock()
	if e.started {
		return
	}
	e.started = true
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	go func() {
		defer close(e.done)
		e.pool.Run(e.stop)
	}()
}

// Shutdown signals the pool to move from evaluate to shutdown (a halted
// pool reaches shutdown on its own), blocking until every worker goroutine
// has exited.
func (e *Engine) Shutdown() {
	e.driverMu.Lock()
	started := e.started
	e.driverMu.Unlock()
	if !started {
		return
	}
	close(e.stop)
	<-e.done
}

// Halt requests process-wide halt, the same effect a SIGINT delivers
// (spec.md §4.9): every worker's top stack frame propagates ModeHalt.
func (e *Engine) Halt() {
	e.pool.RequestHalt()
}

// Constant allocates a fresh Constant wrapping v.
func (e *Engine) Constant(v numeric.Value) term.Term {
	return term.NewConstant(v)
}

// Function builds a host-backed Function of the given label and arity
// (spec.md §4.2's primitive functions).
func (e *Engine) Function(label string, arity int, fn term.HostFunc) term.Term {
	return term.NewFunction(label, arity, fn)
}

// Apply builds the Application fn applied to arg, left-leaning for
// multi-argument calls (spec.md §3.1).
func (e *Engine) Apply(fn, arg term.Term) term.Term {
	return term.NewApplication(fn, arg)
}

// Globalize marks t and everything reachable from it as global, required
// before a term can be spawned onto the work queue or escape the
// allocating worker's local heap (spec.md §4.4, §4.5).
func (e *Engine) Globalize(t term.Term) term.Term {
	return term.Globalize(t)
}

// Par implements par(): wraps t in a Blackhole (unless it is already one,
// or a bare Constant that cannot meaningfully block), globalizes it, and
// spawns it for parallel forced reduction (spec.md §4.5). It returns the
// (possibly wrapped) term immediately, without waiting for the spawned
// reduction to complete — the caller demands the result later by forcing
// the same term, which blocks on the Blackhole per spec.md §4.4.
func (e *Engine) Par(t term.Term) term.Term {
	switch t.(type) {
	case *term.Blackhole, *term.Constant:
		e.pool.Spawn(e.Globalize(t))
		return t
	}
	bh := term.NewBlackhole(t)
	e.Globalize(bh)
	e.pool.Spawn(bh)
	return bh
}

// Eval drives t to a fixed point at mode on the driver's own Context,
// outside any worker goroutine.
func (e *Engine) Eval(t term.Term, mode term.Mode) term.Term {
	return term.FullReduce(e.driver, t, mode)
}

// CatchHalt evaluates t at ModeCatch (spec.md §4.3's "catch"): a halt
// signal propagating down from an enclosing frame stops at a catch frame
// instead of unwinding through it, per term/run.go's Run loop.
func (e *Engine) CatchHalt(t term.Term) term.Term {
	return e.Eval(t, term.ModeCatch)
}

// Compute fully reduces t at ModeForced and asserts the result is a
// Constant, converting a panic raised during reduction whose value is an
// error (NonApplicableError, StackOverflowError, or any other error) into a
// *Error (spec.md §7). Panics with non-error values are re-raised.
func (e *Engine) Compute(t term.Term) (result numeric.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = e.convertPanic(r, t)
		}
	}()

	reduced := term.FullReduce(e.driver, t, term.ModeForced)
	c, ok := reduced.(*term.Constant)
	if !ok {
		return numeric.Value{}, &Error{
			Kind:     ErrInvalidDereference,
			Label:    labelOf(t),
			WorkerID: driverWorkerID,
		}
	}
	return c.Value(), nil
}

func (e *Engine) convertPanic(r any, t term.Term) error {
	label := labelOf(t)
	switch v := r.(type) {
	case term.NonApplicableError:
		return &Error{Kind: ErrNonApplicable, Label: label, WorkerID: driverWorkerID, Cause: v}
	case term.StackOverflowError:
		return &Error{Kind: ErrStackOverflow, Label: label, WorkerID: driverWorkerID, Cause: v}
	case error:
		return &Error{Kind: ErrInvalidDereference, Label: label, WorkerID: driverWorkerID, Cause: v}
	default:
		panic(r)
	}
}

func labelOf(t term.Term) string {
	if t == nil {
		return ""
	}
	return t.Header().Label()
}
