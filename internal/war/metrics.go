package war

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives engine measurements.
type MetricsCollector interface {
	// RecordLoad is called once per Load; err is nil on success.
	RecordLoad(warriors int, duration time.Duration, err error)

	// RecordRound is called after each round with the number of opcodes run.
	RecordRound(opcodes int, duration time.Duration)

	// RecordDeath is called for every warrior killed by a fault.
	RecordDeath(reason string)
}

// NoopMetricsCollector discards everything.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRound(int, time.Duration)       {}
func (NoopMetricsCollector) RecordDeath(string)                   {}

// BasicMetricsCollector keeps in-memory counters. It is safe to share
// between matches running on different goroutines.
type BasicMetricsCollector struct {
	Loads        atomic.Int64
	LoadErrors   atomic.Int64
	Warriors     atomic.Int64
	Rounds       atomic.Int64
	Opcodes      atomic.Int64
	RoundNanos   atomic.Int64
	CPUDeaths    atomic.Int64
	MemoryDeaths atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(warriors int, _ time.Duration, err error) {
	b.Loads.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.Warriors.Add(int64(warriors))
}

// RecordRound implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRound(opcodes int, duration time.Duration) {
	b.Rounds.Add(1)
	b.Opcodes.Add(int64(opcodes))
	b.RoundNanos.Add(duration.Nanoseconds())
}

// RecordDeath implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDeath(reason string) {
	if reason == ReasonMemory {
		b.MemoryDeaths.Add(1)
		return
	}
	b.CPUDeaths.Add(1)
}

// AvgRound returns the mean wall time of a round.
func (b *BasicMetricsCollector) AvgRound() time.Duration {
	n := b.Rounds.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(b.RoundNanos.Load() / n)
}
