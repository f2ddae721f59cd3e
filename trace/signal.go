package trace

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/joeycumines/go-longpoll"
	"github.com/joeycumines/go-microbatch"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/joeycumines/go-catrate"
)

// memorySampleRates caps "memory sample" events at 20/s sustained, 5/100ms
// burst, per worker category — a signal-trace file otherwise grows
// unboundedly fast next to the occasional state-transition event (spec.md
// §6.3's "occasional memory-usage samples").
var memorySampleRates = map[time.Duration]int{
	time.Second:            20,
	100 * time.Millisecond: 5,
}

// signalSink is the high-throughput per-worker JSON-lines trace sink: a
// stumpy-backed logiface logger, fed through a buffered channel drained
// by github.com/joeycumines/go-longpoll's min/max/partial-timeout batch
// receive, and flushed in groups via github.com/joeycumines/go-microbatch
// — restoring, in spirit, the per-worker VCD sample stream from
// SPEC_FULL.md §4 without adopting VCD's waveform file format.
type signalSink struct {
	logger  *logiface.Logger[*stumpy.Event]
	events  chan Event
	batcher *microbatch.Batcher[Event]
	memRate *catrate.Limiter
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
	closer  io.Closer
}

// NewSignalTraceSink writes stumpy-encoded JSON lines to w, batching
// writes so a burst of worker events (GC phase boundaries, blackhole
// contention, postponements) costs one lock acquisition instead of many.
func NewSignalTraceSink(w io.Writer) Sink {
	logger := logiface.New[*stumpy.Event](stumpy.WithStumpy(stumpy.WithWriter(w)))

	s := &signalSink{
		logger:  logger,
		events:  make(chan Event, 1024),
		memRate: catrate.NewLimiter(memorySampleRates),
	}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}

	s.batcher = microbatch.NewBatcher[Event](&microbatch.BatcherConfig{
		MaxSize:       64,
		FlushInterval: 20 * time.Millisecond,
	}, func(ctx context.Context, jobs []Event) error {
		for _, e := range jobs {
			s.write(e)
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	cfg := &longpoll.ChannelConfig{
		MaxSize:        64,
		MinSize:        1,
		PartialTimeout: 5 * time.Millisecond,
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = longpoll.Channel(ctx, cfg, s.events, func(e Event) error {
			_, _ = s.batcher.Submit(ctx, e)
			return nil
		})
	}()

	return s
}

func (s *signalSink) write(e Event) {
	b := s.logger.Trace().Int("worker", e.WorkerID)
	for k, v := range e.Fields {
		b = b.Any(k, v)
	}
	b.Log(e.Label)
}

func (s *signalSink) Transition(workerID int, from, to string) {
	s.Emit(Event{WorkerID: workerID, Label: "state transition", Fields: map[string]any{"from": from, "to": to}})
}

func (s *signalSink) SampleMemory(workerID int, bytes uint64) {
	if _, ok := s.memRate.Allow(workerID); !ok {
		return
	}
	s.Emit(Event{WorkerID: workerID, Label: "memory sample", Fields: map[string]any{"bytes": bytes}})
}

func (s *signalSink) Emit(e Event) {
	select {
	case s.events <- e:
	default:
		// Trace output is diagnostic, not load-bearing; a full channel
		// drops the event rather than blocking the worker that produced
		// it, mirroring the work queue's own overflow policy (spec.md
		// §4.5).
	}
}

func (s *signalSink) Close() error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	s.wg.Wait()
	_ = s.batcher.Close()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
