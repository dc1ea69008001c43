package match

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"corewars/internal/config"
	"corewars/internal/logger"
	"corewars/internal/memory"
	"corewars/internal/report"
	"corewars/internal/war"
)

const pausePollInterval = 20 * time.Millisecond

type Placement struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset uint16 `json:"offset"`
	Size   int    `json:"size"`
	Stack  string `json:"stack"`
	Shared string `json:"shared"`
}

type Result struct {
	MatchID     string             `json:"match_id"`
	Seed        int64              `json:"seed"`
	Rounds      int                `json:"rounds"`
	Over        bool               `json:"over"`
	Draw        bool               `json:"draw"`
	TimedOut    bool               `json:"timed_out"`
	Winners     string             `json:"winners"`
	Scores      map[string]float64 `json:"scores"`
	Placements  []Placement        `json:"placements"`
	ArenaWrites uint64             `json:"arena_writes"`
	Events      []report.Event     `json:"events,omitempty"`
}

type options struct {
	logger    *logger.Logger
	metrics   war.MetricsCollector
	cpu       war.CPU
	listeners []war.WarriorListener
}

// Option configures a Runner.
type Option func(*options)

func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithMetrics(m war.MetricsCollector) Option {
	return func(o *options) { o.metrics = m }
}

// WithCPU runs the match on c instead of the reference interpreter.
func WithCPU(c war.CPU) Option {
	return func(o *options) { o.cpu = c }
}

// WithListener subscribes l to warrior births and deaths.
func WithListener(l war.WarriorListener) Option {
	return func(o *options) { o.listeners = append(o.listeners, l) }
}

// Runner owns one War and advances it round by round.
type Runner struct {
	id       string
	settings Settings
	war      *war.War
	events   *war.Broadcaster
	recorder *report.Recorder
	tracker  *memory.WriteTracker
	limiter  *rate.Limiter
	logger   *logger.Logger
	round    int
}

func NewRunner(s Settings, opts ...Option) *Runner {
	o := options{logger: logger.NoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if s.MaxRounds <= 0 {
		s.MaxRounds = config.DefaultMaxRounds
	}

	r := &Runner{
		id:       uuid.NewString(),
		settings: s,
		events:   war.NewBroadcaster(),
		tracker:  memory.NewWriteTracker(),
	}
	r.logger = o.logger.WithMatch(r.id)
	r.recorder = report.NewRecorder(func() int { return r.round })
	r.events.Add(r.recorder)
	for _, l := range o.listeners {
		r.events.Add(l)
	}
	if s.RoundsPerSecond > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(s.RoundsPerSecond), 1)
	}

	warOpts := []war.Option{
		war.WithSeed(s.Seed),
		war.WithZombieSpeed(s.ZombieSpeed),
		war.WithStartPaused(s.StartPaused),
		war.WithMinGap(s.MinGap),
		war.WithLoadAttempts(s.LoadAttempts),
		war.WithMemoryListener(r.tracker),
		war.WithLogger(r.logger),
		war.WithMetrics(o.metrics),
	}
	if o.cpu != nil {
		warOpts = append(warOpts, war.WithCPU(o.cpu))
	}
	r.war = war.New(r.events, warOpts...)
	return r
}

func (r *Runner) ID() string                    { return r.id }
func (r *Runner) War() *war.War                 { return r.war }
func (r *Runner) Events() *war.Broadcaster      { return r.events }
func (r *Runner) Tracker() *memory.WriteTracker { return r.tracker }

// Round returns the number of rounds run so far.
func (r *Runner) Round() int { return r.round }

func (r *Runner) Load(groups []war.WarriorGroup) error {
	return r.war.Load(groups)
}

// Step runs one round unless the match is paused. A single-round request
// pauses the match again afterwards.
func (r *Runner) Step(ctx context.Context) (bool, error) {
	if r.war.IsPaused() {
		return false, nil
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return false, err
		}
	}
	r.war.NextRound(r.round)
	r.round++
	if r.war.IsSingleRound() {
		r.war.Pause()
	}
	return true, nil
}

// Run advances the match until it is over, the round limit is hit or ctx
// is done. Cancellation is only noticed between rounds.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	for r.round < r.settings.MaxRounds && !r.war.IsOver() {
		if err := ctx.Err(); err != nil {
			return r.Result(), err
		}
		advanced, err := r.Step(ctx)
		if err != nil {
			return r.Result(), err
		}
		if !advanced {
			select {
			case <-ctx.Done():
				return r.Result(), ctx.Err()
			case <-time.After(pausePollInterval):
			}
		}
	}
	res := r.Result()
	r.logger.LogMatchEnd(ctx, res.Rounds, res.Winners, res.TimedOut)
	return res, nil
}

// Result is a snapshot of the match; final once the match is over.
func (r *Runner) Result() Result {
	w := r.war
	res := Result{
		MatchID:     r.id,
		Seed:        r.settings.Seed,
		Rounds:      r.round,
		Over:        w.IsOver(),
		Draw:        w.IsDraw(),
		TimedOut:    !w.IsOver() && r.round >= r.settings.MaxRounds,
		Winners:     w.RemainingNames(),
		Scores:      w.Scores(),
		ArenaWrites: r.tracker.Count(),
	}
	for i := 0; i < w.NumWarriors(); i++ {
		wr := w.Warrior(i)
		res.Placements = append(res.Placements, Placement{
			Name:   wr.Name(),
			Type:   wr.Type().String(),
			Offset: wr.LoadOffset(),
			Size:   wr.CodeSize(),
			Stack:  wr.InitialStack().String(),
			Shared: wr.SharedMemory().String(),
		})
	}
	if r.settings.Record {
		res.Events = r.recorder.Events()
	}
	return res
}
