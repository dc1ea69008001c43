package war

import (
	"corewars/internal/cpu"
	"corewars/internal/memory"
)

// CPU executes warriors' code. NextOpcode returns a *cpu.Exception or a
// *memory.Exception when the warrior faults.
type CPU interface {
	NextOpcode(w *Warrior) error
	IsZombie(w *Warrior) bool
}

// InterpreterCPU runs warriors on the reference interpreter, each confined
// to its own regions of the core.
type InterpreterCPU struct {
	mem    memory.Memory
	interp *cpu.Interpreter
}

func NewInterpreterCPU(mem memory.Memory) *InterpreterCPU {
	return &InterpreterCPU{mem: mem, interp: cpu.NewInterpreter()}
}

func (c *InterpreterCPU) NextOpcode(w *Warrior) error {
	view := memory.NewRestricted(c.mem, w.Regions()...)
	if err := c.interp.Step(w.State(), view); err != nil {
		return err
	}
	// zombie-class warriors wake up on their first executed opcode
	if w.Type().IsZombieClass() {
		w.State().Zombie = true
	}
	return nil
}

func (c *InterpreterCPU) IsZombie(w *Warrior) bool {
	return w.State().Zombie
}
