package war

import (
	"fmt"
	"strings"

	"corewars/internal/cpu"
	"corewars/internal/memory"
)

// Type is the warrior variant.
type Type uint8

const (
	TypeSurvivor Type = iota
	TypeZombie
	// TypeZombieH is the fast zombie; it runs at twice the zombie speed.
	TypeZombieH
)

func (t Type) String() string {
	switch t {
	case TypeSurvivor:
		return "survivor"
	case TypeZombie:
		return "zombie"
	case TypeZombieH:
		return "zombie_h"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// IsZombieClass reports whether warriors of this type can turn zombie.
func (t Type) IsZombieClass() bool {
	return t == TypeZombie || t == TypeZombieH
}

// ParseType accepts the names produced by Type.String. Empty means survivor.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "survivor":
		return TypeSurvivor, nil
	case "zombie":
		return TypeZombie, nil
	case "zombie_h", "zombieh":
		return TypeZombieH, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// WarriorData describes one warrior to be loaded.
type WarriorData struct {
	Name string
	Code []byte
	Type Type
}

// WarriorGroup is a team of warriors sharing one memory block.
type WarriorGroup struct {
	Name     string
	Warriors []WarriorData
}

// Warrior is a loaded combatant. It is owned by the War that created it.
type Warrior struct {
	name         string
	codeSize     int
	loadOffset   uint16
	initialStack memory.Address
	sharedMemory memory.Address
	energy       uint16
	alive        bool
	typ          Type
	state        *cpu.State
	regions      []memory.Region
}

func newWarrior(name string, codeSize int, loadAddress, initialStack, sharedMemory memory.Address, typ Type) *Warrior {
	w := &Warrior{
		name:         name,
		codeSize:     codeSize,
		loadOffset:   loadAddress.Offset,
		initialStack: initialStack,
		sharedMemory: sharedMemory,
		energy:       MaxEnergy,
		alive:        true,
		typ:          typ,
		state: &cpu.State{
			AX: loadAddress.Offset,
			IP: loadAddress.Offset,
			CS: loadAddress.Segment,
			DS: loadAddress.Segment,
			SS: initialStack.Segment,
			SP: initialStack.Offset,
			ES: sharedMemory.Segment,
		},
	}
	w.regions = []memory.Region{
		memory.RegionAt(memory.NewAddress(loadAddress.Segment, 0), ArenaSize),
		memory.RegionAt(memory.NewAddress(initialStack.Segment, 0), StackSize),
		memory.RegionAt(sharedMemory, GroupSharedMemorySize),
	}
	return w
}

func (w *Warrior) Name() string                 { return w.name }
func (w *Warrior) CodeSize() int                { return w.codeSize }
func (w *Warrior) LoadOffset() uint16           { return w.loadOffset }
func (w *Warrior) InitialStack() memory.Address { return w.initialStack }
func (w *Warrior) SharedMemory() memory.Address { return w.sharedMemory }
func (w *Warrior) Energy() uint16               { return w.energy }
func (w *Warrior) IsAlive() bool                { return w.alive }
func (w *Warrior) Type() Type                   { return w.typ }

// State exposes the execution state to the CPU implementation.
func (w *Warrior) State() *cpu.State { return w.state }

// Regions lists the memory the warrior may touch: the arena, its stack and
// its group's shared block.
func (w *Warrior) Regions() []memory.Region { return w.regions }

func (w *Warrior) kill() { w.alive = false }
