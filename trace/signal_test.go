package trace

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalSink_WritesAndCloses(t *testing.T) {
	var buf bytes.Buffer
	s := NewSignalTraceSink(&buf)
	s.Transition(0, "startup", "evaluate")
	s.Emit(Event{WorkerID: 0, Label: "custom"})

	require.Eventually(t, func() bool {
		return buf.Len() > 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Close())
	assert.Contains(t, buf.String(), "startup")
}

func TestSignalSink_RateLimitsMemorySamples(t *testing.T) {
	var buf bytes.Buffer
	s := NewSignalTraceSink(&buf)
	defer s.Close()

	for i := 0; i < 50; i++ {
		s.SampleMemory(0, uint64(i))
	}
	time.Sleep(50 * time.Millisecond)

	n := bytes.Count(buf.Bytes(), []byte("memory sample"))
	assert.Less(t, n, 50, "rate limiter should have dropped some samples")
}
