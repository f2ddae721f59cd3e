package trace

import (
	"io"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

// consoleSink is the default human/JSON console Sink, wired through
// logiface to zerolog exactly the way
// github.com/joeycumines/go-utilpkg/eventloop wires its own diagnostics in
// its test suite via izerolog.
type consoleSink struct {
	logger *logiface.Logger[*izerolog.Event]
}

// NewConsoleSink writes newline-delimited JSON events to w via zerolog.
func NewConsoleSink(w io.Writer) Sink {
	zl := zerolog.New(w).With().Timestamp().Logger()
	logger := logiface.New[*izerolog.Event](izerolog.WithZerolog(zl))
	return &consoleSink{logger: logger}
}

func (s *consoleSink) Transition(workerID int, from, to string) {
	s.logger.Info().
		Int("worker", workerID).
		Str("from", from).
		Str("to", to).
		Log("state transition")
}

func (s *consoleSink) SampleMemory(workerID int, bytes uint64) {
	s.logger.Debug().
		Int("worker", workerID).
		Int64("bytes", int64(bytes)).
		Log("memory sample")
}

func (s *consoleSink) Emit(e Event) {
	b := s.logger.Trace().Int("worker", e.WorkerID)
	for k, v := range e.Fields {
		b = b.Any(k, v)
	}
	b.Log(e.Label)
}

func (s *consoleSink) Close() error { return nil }
