package war

import (
	"corewars/internal/logger"
	"corewars/internal/memory"
)

type options struct {
	memoryListener memory.Listener
	startPaused    bool
	zombieSpeed    int
	minGap         int
	loadAttempts   int
	seed           *int64
	cpu            CPU
	logger         *logger.Logger
	metrics        MetricsCollector
}

func defaultOptions() options {
	return options{
		zombieSpeed:  1,
		minGap:       MinGap,
		loadAttempts: MaxLoadingTries,
		logger:       logger.NoopLogger(),
		metrics:      NoopMetricsCollector{},
	}
}

// Option configures a War.
type Option func(*options)

// WithMemoryListener attaches l to the core once the arena has been filled,
// so it observes warrior code being loaded and every write made in battle.
func WithMemoryListener(l memory.Listener) Option {
	return func(o *options) {
		o.memoryListener = l
	}
}

// WithStartPaused creates the War in the paused state.
func WithStartPaused(paused bool) Option {
	return func(o *options) {
		o.startPaused = paused
	}
}

// WithZombieSpeed sets how many opcodes a zombie runs per round (fast
// zombies run twice as many). Values below 1 are ignored.
func WithZombieSpeed(speed int) Option {
	return func(o *options) {
		if speed > 0 {
			o.zombieSpeed = speed
		}
	}
}

// WithMinGap overrides the minimal distance between loaded warriors and
// between a warrior and the arena boundaries.
func WithMinGap(gap int) Option {
	return func(o *options) {
		if gap >= 0 {
			o.minGap = gap
		}
	}
}

// WithLoadAttempts overrides how many random offsets are tried per warrior.
func WithLoadAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.loadAttempts = n
		}
	}
}

// WithSeed seeds the War's random source. Without it the source is seeded
// from the clock.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithCPU replaces the reference interpreter.
func WithCPU(c CPU) Option {
	return func(o *options) {
		o.cpu = c
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
