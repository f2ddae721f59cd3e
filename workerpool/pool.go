// Package workerpool implements the process state machine and worker
// goroutine loop from spec.md §4.6/§4.9: one goroutine per configured
// parallelism level, each cooperatively switching on a shared
// FastState, popping from the workqueue, driving reduction via the term
// package, and participating in barrier-synchronized global GC. Grounded
// on eventloop/loop.go's single-goroutine run() loop and state.go's
// FastState, generalized here to N cooperating goroutines instead of one.
package workerpool

import (
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/lambdago/lambda/gc"
	"github.com/lambdago/lambda/postpone"
	"github.com/lambdago/lambda/term"
	"github.com/lambdago/lambda/trace"
	"github.com/lambdago/lambda/workqueue"
)

// Config tunes the pool, following the environment variables named in
// spec.md §6.2 (parsed by engine.Config.FromEnv; workerpool itself only
// consumes the resolved values).
type Config struct {
	Workers               int
	QueueCapacityPerBand  int
	IdleSleepMin          time.Duration
	IdleSleepMax          time.Duration
	GlobalGCInterval      time.Duration // 0 disables the periodic timer
	StackDepth            int
	Sink                  trace.Sink
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.QueueCapacityPerBand < 1 {
		c.QueueCapacityPerBand = 1024
	}
	if c.IdleSleepMin <= 0 {
		c.IdleSleepMin = 2 * time.Millisecond
	}
	if c.IdleSleepMax <= 0 || c.IdleSleepMax < c.IdleSleepMin {
		c.IdleSleepMax = 64 * time.Millisecond
	}
	if c.StackDepth < 1 {
		c.StackDepth = 4096
	}
	if c.Sink == nil {
		c.Sink = trace.Noop()
	}
	return c
}

// resumeFunc is the item kind pushed by Scheduler.Postpone: an arbitrary
// continuation to run with a worker's Context, for callers that don't go
// through postpone.Continuation's term+mode retry discipline.
type resumeFunc func(ctx *term.Context)

// Pool owns the shared process state, the work queue, the GC collector,
// and one goroutine per worker. It implements term.Scheduler.
type Pool struct {
	cfg       Config
	state     *FastState
	queue     *workqueue.Queue
	collector *gc.Collector
	gcDriver  *gc.GlobalGC
	barrier   *Barrier
	sink      trace.Sink

	heaps  []*gc.Heap
	roots  []*gc.RootStack
	stacks []*term.Stack

	sigCh     chan os.Signal
	alarmChs  []chan os.Signal
	dotWriter atomic.Pointer[io.Writer]

	wg       sync.WaitGroup
	haltOnce sync.Once
}

// New constructs a Pool; call Run to launch the worker goroutines.
func New(cfg Config) *Pool {
	cfg = cfg.withDefaults()
	collector := gc.NewCollector()

	p := &Pool{
		cfg:       cfg,
		state:     NewFastState(),
		queue:     workqueue.New(cfg.QueueCapacityPerBand),
		collector: collector,
		gcDriver:  &gc.GlobalGC{Collector: collector},
		barrier:   NewBarrier(cfg.Workers),
		sink:      cfg.Sink,
		heaps:     make([]*gc.Heap, cfg.Workers),
		roots:     make([]*gc.RootStack, cfg.Workers),
		stacks:    make([]*term.Stack, cfg.Workers),
		alarmChs:  make([]chan os.Signal, cfg.Workers),
	}
	for i := 0; i < cfg.Workers; i++ {
		p.heaps[i] = collector.NewHeap(i)
		p.roots[i] = &gc.RootStack{}
		p.stacks[i] = term.NewStackWithLimit(64, cfg.StackDepth)
		p.alarmChs[i] = make(chan os.Signal, 1)
	}
	return p
}

// transition performs a CAS state transition and, on success, raises
// SIGALRM so any worker currently idle-sleeping wakes immediately instead
// of waiting out its randomized interval (spec.md §4.6).
func (p *Pool) transition(from, to ProcessState) bool {
	ok := p.state.TryTransition(from, to)
	if ok {
		raiseAlarm()
	}
	return ok
}

// Spawn implements term.Scheduler: pushes t onto the priority-0 band for
// later parallel forced reduction (spec.md §4.5's par()).
func (p *Pool) Spawn(t term.Term) {
	if !p.queue.Push(workqueue.PrioritySpawn, t) {
		p.sink.Emit(trace.Event{Label: "queue overflow", Fields: map[string]any{"priority": workqueue.PrioritySpawn}})
	}
}

// Postpone implements term.Scheduler: pushes resume onto the priority-1
// band, to be invoked with a worker's Context the next time it is popped.
func (p *Pool) Postpone(resume func(ctx *term.Context)) {
	if !p.queue.Push(workqueue.PriorityPostponed, resumeFunc(resume)) {
		p.sink.Emit(trace.Event{Label: "queue overflow", Fields: map[string]any{"priority": workqueue.PriorityPostponed}})
	}
}

// Halted implements term.Scheduler.
func (p *Pool) Halted() bool {
	return p.state.Load() == StateHalt || p.state.Load() == StateShutdown
}

// RequestDotDump asks the pool to transition to the dot_dump state, with
// the graph dump written to w, then return to evaluate.
func (p *Pool) RequestDotDump(w io.Writer) {
	p.dotWriter.Store(&w)
	p.transition(StateEvaluate, StateDotDump)
}

// RequestGlobalGC forces an out-of-schedule global GC cycle (e.g. on
// allocator exhaustion, spec.md §4.7's "Marking may temporarily suspend
// during reduction if the allocator detects exhaustion").
func (p *Pool) RequestGlobalGC() {
	p.transition(StateEvaluate, StateGlobalGC)
}

// RequestHalt transitions the process to halt, the same effect a SIGINT
// has (spec.md §4.9).
func (p *Pool) RequestHalt() {
	p.haltOnce.Do(func() {
		p.state.Store(StateHalt)
		raiseAlarm()
	})
}

// Run launches all worker goroutines and blocks until every one has
// exited the shutdown barrier. stop signals the pool to proceed to
// shutdown once it is next in the evaluate state (closed by
// engine.Shutdown);
// SIGINT (handled internally) also triggers halt->shutdown.
func (p *Pool) Run(stop <-chan struct{}) {
	p.sigCh = make(chan os.Signal, 1)
	signal.Notify(p.sigCh, unix.SIGINT)
	defer signal.Stop(p.sigCh)

	for _, ch := range p.alarmChs {
		signal.Notify(ch, unix.SIGALRM)
	}
	defer func() {
		for _, ch := range p.alarmChs {
			signal.Stop(ch)
		}
	}()

	go func() {
		<-p.sigCh
		p.RequestHalt()
	}()

	var alarmStop chan struct{}
	if p.cfg.GlobalGCInterval > 0 {
		alarmStop = make(chan struct{})
		go p.periodicGlobalGC(alarmStop)
	}

	go func() {
		<-stop
		// Retry until the pool is back in evaluate (it may still be in
		// startup, global_gc or dot_dump); halt reaches shutdown on its own.
		for !p.transition(StateEvaluate, StateShutdown) {
			if s := p.state.Load(); s == StateHalt || s == StateShutdown {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	p.wg.Add(p.cfg.Workers)
	for i := 0; i < p.cfg.Workers; i++ {
		go p.workerLoop(i)
	}
	p.wg.Wait()

	if alarmStop != nil {
		close(alarmStop)
	}
}

// periodicGlobalGC is the pool's periodic timer, run on its own goroutine
// (not on a worker): each tick moves evaluate to global_gc.
func (p *Pool) periodicGlobalGC(stop chan struct{}) {
	t := time.NewTicker(p.cfg.GlobalGCInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			p.transition(StateEvaluate, StateGlobalGC)
		}
	}
}

func (p *Pool) workerLoop(id int) {
	defer p.wg.Done()

	heap := p.heaps[id]
	roots := p.roots[id]
	stack := p.stacks[id]
	ctx := &term.Context{Stack: stack, Scheduler: p}

	prevState := StateStartup
	// startup barrier: all workers wait here together, then the last arriver
	// moves the process on to evaluate.
	p.barrier.Phase(func() {
		p.transition(StateStartup, StateEvaluate)
	})

	for {
		state := p.state.Load()
		if state != prevState {
			p.sink.Transition(id, prevState.String(), state.String())
			prevState = state
		}

		switch state {
		case StateGlobalGC:
			p.runGlobalGC(id)

		case StateDotDump:
			if id == 0 {
				if w := p.dotWriter.Load(); w != nil {
					dumpGraph(*w, p.roots, p.stacks)
				}
			}
			p.barrier.Phase(nil)
			p.transition(StateDotDump, StateEvaluate)

		case StateEvaluate:
			item, ok := p.queue.Pop()
			if !ok {
				gc.Local(heap, roots, stack)
				p.sleepIdle(id)
				continue
			}
			p.runItem(ctx, item)

		case StateHalt:
			if stack.Len() > 0 {
				stack.Top().Mode = term.ModeHalt
			}
			// No further queue items are popped: every worker meets at the
			// barrier, and the last arriver moves the process to shutdown.
			p.barrier.Phase(func() {
				p.transition(StateHalt, StateShutdown)
			})

		case StateShutdown:
			gc.Local(heap, roots, stack)
			gc.Local(heap, roots, stack)
			p.sink.Close()
			p.barrier.Phase(nil)
			return
		}
	}
}

func (p *Pool) runItem(ctx *term.Context, item workqueue.Item) {
	switch v := item.(type) {
	case term.Term:
		term.FullReduce(ctx, v, term.ModeForced)

	case *postpone.Continuation:
		_, _ = v.Resume(ctx, func(c *postpone.Continuation) {
			if !p.queue.Push(workqueue.PriorityPostponed, c) {
				p.sink.Emit(trace.Event{Label: "queue overflow", Fields: map[string]any{"priority": workqueue.PriorityPostponed}})
			}
		})

	case resumeFunc:
		v(ctx)
	}
}

// queuedTerms extracts the term.Term values from a queue snapshot,
// including the Term held by each postponed continuation; resume closures
// are skipped, since the terms they capture are not visible here.
func queuedTerms(items []workqueue.Item) []term.Term {
	var out []term.Term
	for _, item := range items {
		switch v := item.(type) {
		case term.Term:
			out = append(out, v)
		case *postpone.Continuation:
			out = append(out, v.Term)
		}
	}
	return out
}

func (p *Pool) idleSleep() time.Duration {
	lo, hi := p.cfg.IdleSleepMin, p.cfg.IdleSleepMax
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int63n(int64(hi-lo)))
}

// sleepIdle waits out a randomized idle interval, waking early if this
// worker's alarm channel receives SIGALRM (raised by whichever worker
// drove a state transition, spec.md §4.6).
func (p *Pool) sleepIdle(id int) {
	timer := time.NewTimer(p.idleSleep())
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-p.alarmChs[id]:
	}
}

// runGlobalGC drives one worker's participation in the six-phase
// barrier-synchronized cycle (spec.md §4.7); exactly one worker (the
// barrier's last arriver at each phase) performs the singleton work.
func (p *Pool) runGlobalGC(id int) {
	heap := p.heaps[id]

	p.barrier.Phase(func() {
		p.gcDriver.Phase1ResetToOld(p.heaps)
	})

	p.barrier.Phase(func() {
		queued := queuedTerms(p.queue.Snapshot())
		for i := range p.heaps {
			p.gcDriver.Phase2And3Mark(p.roots[i], p.stacks[i], queued)
		}
	})

	p.barrier.Phase(nil)
	p.gcDriver.Phase4SweepLocalAndNew(heap)

	p.barrier.Phase(func() {
		p.gcDriver.Phase5SweepGlobal()
	})

	p.barrier.Phase(func() {
		for _, h := range p.heaps {
			p.gcDriver.Phase6SweepOther(h)
		}
	})

	p.barrier.Phase(func() {
		p.transition(StateGlobalGC, StateEvaluate)
	})
}
