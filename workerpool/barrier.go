package workerpool

import "sync"

// Barrier is a cyclic rendezvous point for the N worker goroutines:
// Phase blocks every caller until all N have arrived, runs leaderWork
// exactly once (on the last arriver), then releases everyone together.
// This models spec.md §4.7's "each phase delimited by a barrier; one
// worker performs the singleton work of each phase, others idle" without
// pulling in a pthread_barrier_t equivalent from the donor repo (which has
// none — eventloop is single-goroutine).
type Barrier struct {
	mu       sync.Mutex
	cond     *sync.Cond
	n        int
	arrived  int
	gen      uint64
}

// NewBarrier returns a Barrier for n participants.
func NewBarrier(n int) *Barrier {
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Phase waits for all participants to arrive, runs leaderWork once (on
// whichever goroutine arrives last), then releases all of them. leaderWork
// may be nil.
func (b *Barrier) Phase(leaderWork func()) {
	b.mu.Lock()
	gen := b.gen
	b.arrived++
	if b.arrived == b.n {
		b.mu.Unlock()
		if leaderWork != nil {
			leaderWork()
		}
		b.mu.Lock()
		b.arrived = 0
		b.gen++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for b.gen == gen {
		b.cond.Wait()
	}
	b.mu.Unlock()
}
