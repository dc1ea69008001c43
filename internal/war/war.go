// Package war implements the battle: loading warrior groups into a shared
// arena, running them round by round and scoring the survivors.
package war

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"corewars/internal/cpu"
	"corewars/internal/logger"
	"corewars/internal/memory"
	"corewars/internal/util"
)

// War is a single match. It is not safe for concurrent use, except for the
// pause controls which may be flipped from another goroutine between rounds.
type War struct {
	warriors       []*Warrior
	numAlive       int
	currentWarrior int
	round          int
	loaded         bool

	core  *memory.RealMode
	alloc allocator
	cpu   CPU
	rng   *rand.Rand

	listener WarriorListener
	logger   *logger.Logger
	metrics  MetricsCollector

	zombieSpeed  int
	minGap       int
	loadAttempts int

	paused      atomic.Bool
	singleRound atomic.Bool
}

// New creates a War with the arena filled and ready for Load. listener may
// be nil.
func New(listener WarriorListener, opts ...Option) *War {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if listener == nil {
		listener = nopListener{}
	}

	w := &War{
		warriors:     make([]*Warrior, 0, MaxWarriors),
		core:         memory.NewRealMode(),
		alloc:        newAllocator(),
		listener:     listener,
		logger:       o.logger,
		metrics:      o.metrics,
		zombieSpeed:  o.zombieSpeed,
		minGap:       o.minGap,
		loadAttempts: o.loadAttempts,
	}
	if o.seed != nil {
		w.rng = util.New(*o.seed)
	} else {
		w.rng = util.Unseeded()
	}
	w.cpu = o.cpu
	if w.cpu == nil {
		w.cpu = NewInterpreterCPU(w.core)
	}
	w.paused.Store(o.startPaused)

	w.core.Fill(memory.NewAddress(ArenaSegment, 0), ArenaSize, ArenaByte)
	// attached only now so that the fill above is not reported
	if o.memoryListener != nil {
		_ = w.core.SetListener(o.memoryListener)
	}
	return w
}

// SetSeed reseeds the random source. It only makes a match reproducible
// when called before Load.
func (w *War) SetSeed(seed int64) error {
	if w.loaded {
		return ErrAlreadyLoaded
	}
	w.rng = util.New(seed)
	return nil
}

func (w *War) Pause()              { w.paused.Store(true) }
func (w *War) IsPaused() bool      { return w.paused.Load() }
func (w *War) IsSingleRound() bool { return w.singleRound.Load() }

// Memory returns the core the arena lives in.
func (w *War) Memory() *memory.RealMode { return w.core }

func (w *War) Resume() {
	w.paused.Store(false)
	w.singleRound.Store(false)
}

// RunSingleRound resumes the match for exactly one round; the driver is
// expected to pause again after it.
func (w *War) RunSingleRound() {
	w.Resume()
	w.singleRound.Store(true)
}

// Load places the given groups in the arena in random order. Either every
// warrior is loaded or, on error, the War is left untouched.
func (w *War) Load(groups []WarriorGroup) error {
	start := time.Now()
	n, err := w.load(groups)
	w.metrics.RecordLoad(n, time.Since(start), err)
	w.logger.LogLoad(context.Background(), len(groups), n, err)
	return err
}

func (w *War) load(groups []WarriorGroup) (int, error) {
	if w.loaded {
		return 0, ErrAlreadyLoaded
	}
	total := 0
	for _, g := range groups {
		total += len(g.Warriors)
	}
	if len(w.warriors)+total > MaxWarriors {
		return 0, fmt.Errorf("%w: %d, at most %d", ErrTooManyWarriors, total, MaxWarriors)
	}

	alloc := w.alloc
	placed := make([]span, 0, MaxWarriors)
	for _, other := range w.warriors {
		placed = append(placed, span{offset: int(other.loadOffset), size: other.codeSize})
	}
	planned := make([]*Warrior, 0, total)
	codes := make([][]byte, 0, total)

	left := append([]WarriorGroup(nil), groups...)
	for len(left) > 0 {
		i := w.rng.Intn(len(left))
		group := left[i]
		left = append(left[:i], left[i+1:]...)

		shared, err := alloc.allocate(GroupSharedMemorySize)
		if err != nil {
			return 0, fmt.Errorf("group %q: %w", group.Name, err)
		}
		for _, data := range group.Warriors {
			offset, err := chooseLoadOffset(w.rng, len(data.Code), placed, w.minGap, w.loadAttempts)
			if err != nil {
				return 0, fmt.Errorf("warrior %q: %w", data.Name, err)
			}
			stack, err := alloc.allocate(StackSize)
			if err != nil {
				return 0, fmt.Errorf("warrior %q: %w", data.Name, err)
			}
			loadAddress := memory.NewAddress(ArenaSegment, offset)
			initialStack := memory.NewAddress(stack.Segment, StackSize)

			planned = append(planned, newWarrior(data.Name, len(data.Code), loadAddress, initialStack, shared, data.Type))
			codes = append(codes, data.Code)
			placed = append(placed, span{offset: int(offset), size: len(data.Code)})
		}
	}

	w.alloc = alloc
	w.currentWarrior = 0
	for i, warrior := range planned {
		base := memory.NewAddress(ArenaSegment, warrior.loadOffset)
		for j, b := range codes[i] {
			_ = w.core.WriteByteAt(base.Add(j), b)
		}
		w.warriors = append(w.warriors, warrior)
		w.numAlive++
		w.currentWarrior++
		w.listener.OnWarriorBirth(warrior.name)
	}
	w.loaded = true
	return len(planned), nil
}

// NextRound lets every live warrior take its turn.
func (w *War) NextRound(round int) {
	start := time.Now()
	w.round = round
	opcodes := 0
	for i, warrior := range w.warriors {
		w.currentWarrior = i
		if !warrior.alive {
			continue
		}
		n, err := w.turn(warrior, round)
		opcodes += n
		if err != nil {
			w.kill(warrior, err)
		}
	}
	w.metrics.RecordRound(opcodes, time.Since(start))
}

// turn runs one warrior's opcodes for this round and returns how many were
// attempted. It stops at the first fault.
func (w *War) turn(warrior *Warrior, round int) (int, error) {
	if err := w.step(warrior); err != nil {
		return 1, err
	}
	executed := 1

	if w.cpu.IsZombie(warrior) {
		speed := w.zombieSpeed
		if warrior.typ == TypeZombieH {
			speed *= 2
		}
		for ; executed < speed; executed++ {
			if err := w.step(warrior); err != nil {
				return executed + 1, err
			}
		}
		return executed, nil
	}

	decayEnergy(warrior, round)
	if w.shouldRunExtraOpcode(warrior) {
		return executed + 1, w.step(warrior)
	}
	return executed, nil
}

// step executes one opcode. A panicking CPU counts as a CPU fault.
func (w *War) step(warrior *Warrior) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &cpu.Exception{Addr: warrior.state.PC(), Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()
	return w.cpu.NextOpcode(warrior)
}

func (w *War) kill(warrior *Warrior, err error) {
	reason := deathReason(err)
	warrior.kill()
	w.numAlive--
	w.metrics.RecordDeath(reason)
	w.logger.LogDeath(context.Background(), w.round, warrior.name, err)
	w.listener.OnWarriorDeath(warrior.name, reason)
}

func deathReason(err error) string {
	var memErr *memory.Exception
	if errors.As(err, &memErr) {
		return ReasonMemory
	}
	return ReasonCPU
}

// IsOver reports whether fewer than two warriors are alive. Only call it
// between rounds.
func (w *War) IsOver() bool {
	return w.numAlive < 2
}

// IsDraw reports a match that ended with every warrior dead.
func (w *War) IsDraw() bool {
	return len(w.warriors) > 0 && w.numAlive == 0
}

func (w *War) CurrentWarrior() int { return w.currentWarrior }
func (w *War) NumWarriors() int    { return len(w.warriors) }
func (w *War) NumRemaining() int   { return w.numAlive }
func (w *War) Round() int          { return w.round }

// Warrior returns the warrior in slot index, or nil.
func (w *War) Warrior(index int) *Warrior {
	if index < 0 || index >= len(w.warriors) {
		return nil
	}
	return w.warriors[index]
}

// RemainingNames returns the live warriors' names in load order.
func (w *War) RemainingNames() string {
	var names []string
	for _, warrior := range w.warriors {
		if warrior.alive {
			names = append(names, warrior.name)
		}
	}
	return strings.Join(names, ", ")
}

// Scores splits one point equally among the live warriors. Call it once
// the War is over. It is empty when nobody survived; see IsDraw.
func (w *War) Scores() map[string]float64 {
	scores := make(map[string]float64, w.numAlive)
	if w.numAlive == 0 {
		return scores
	}
	share := 1.0 / float64(w.numAlive)
	for _, warrior := range w.warriors {
		if warrior.alive {
			scores[warrior.name] = share
		}
	}
	return scores
}
