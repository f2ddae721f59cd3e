package engine

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/lambdago/lambda/trace"
)

// Config tunes the Engine, per spec.md §6.2's recognized environment
// variables. DefaultConfig and FromEnv fill in defaults; New does not, so
// zero fields of a hand-built Config fall back to workerpool's own
// defaults instead (one worker, 1024-slot bands, 2-64ms idle sleep, worker
// stack depth 4096, no periodic global GC).
type Config struct {
	Workers              int
	MacroblockSize       int
	GlobalGCIntervalMS   int
	WorkerIdleSleepMinUS int
	WorkerIdleSleepMaxUS int
	QueueCapacityPerBand int
	StackDepth           int
	Sink                 trace.Sink
}

// DefaultConfig returns compile-time defaults: one worker per logical CPU,
// a 1 second global GC interval, and a 2-64ms idle sleep range.
func DefaultConfig() Config {
	return Config{
		Workers:              runtime.NumCPU(),
		MacroblockSize:       1 << 16,
		GlobalGCIntervalMS:   1000,
		WorkerIdleSleepMinUS: 2000,
		WorkerIdleSleepMaxUS: 64000,
		QueueCapacityPerBand: 1024,
		StackDepth:           1 << 16,
	}
}

// FromEnv starts from DefaultConfig and overrides any field whose
// environment variable (spec.md §6.2) is set and parses cleanly:
// workers, macroblock_size, global_gc_interval_ms,
// worker_idle_sleep_min/_max.
func (Config) FromEnv() Config {
	cfg := DefaultConfig()

	if v, ok := envInt("workers"); ok && v >= 1 {
		cfg.Workers = v
	}
	if v, ok := envInt("macroblock_size"); ok && v > 0 && v&(v-1) == 0 {
		cfg.MacroblockSize = v
	}
	if v, ok := envInt("global_gc_interval_ms"); ok && v >= 0 {
		cfg.GlobalGCIntervalMS = v
	}
	if v, ok := envInt("worker_idle_sleep_min"); ok && v >= 0 {
		cfg.WorkerIdleSleepMinUS = v
	}
	if v, ok := envInt("worker_idle_sleep_max"); ok && v >= 0 {
		cfg.WorkerIdleSleepMaxUS = v
	}

	return cfg
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c Config) globalGCInterval() time.Duration {
	return time.Duration(c.GlobalGCIntervalMS) * time.Millisecond
}

func (c Config) idleSleepMin() time.Duration {
	return time.Duration(c.WorkerIdleSleepMinUS) * time.Microsecond
}

func (c Config) idleSleepMax() time.Duration {
	return time.Duration(c.WorkerIdleSleepMaxUS) * time.Microsecond
}

// Option configures a Config programmatically, overriding FromEnv/
// DefaultConfig values. Grounded on eventloop/options.go's functional
// options pattern.
type Option interface {
	apply(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) apply(c *Config) { f(c) }

// WithWorkers overrides the worker count.
func WithWorkers(n int) Option {
	return optionFunc(func(c *Config) { c.Workers = n })
}

// WithGlobalGCInterval overrides the periodic global GC interval; 0
// disables the periodic timer (global GC can still be requested
// explicitly).
func WithGlobalGCInterval(d time.Duration) Option {
	return optionFunc(func(c *Config) { c.GlobalGCIntervalMS = int(d / time.Millisecond) })
}

// WithIdleSleepRange overrides the randomized idle sleep bounds.
func WithIdleSleepRange(min, max time.Duration) Option {
	return optionFunc(func(c *Config) {
		c.WorkerIdleSleepMinUS = int(min / time.Microsecond)
		c.WorkerIdleSleepMaxUS = int(max / time.Microsecond)
	})
}

// WithSink overrides the trace sink (default: trace.Noop()).
func WithSink(s trace.Sink) Option {
	return optionFunc(func(c *Config) { c.Sink = s })
}

// WithStackDepth overrides the per-worker evaluation stack depth limit.
func WithStackDepth(n int) Option {
	return optionFunc(func(c *Config) { c.StackDepth = n })
}
