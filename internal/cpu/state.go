// Package cpu holds the per-warrior execution state and a small reference
// interpreter for an 8086 instruction subset.
package cpu

import (
	"fmt"

	"corewars/internal/memory"
)

// State is a warrior's register file.
type State struct {
	AX, BX, CX, DX uint16
	SI, DI, BP, SP uint16
	IP             uint16
	CS, DS, ES, SS uint16
	Flags          uint16

	// Zombie is set by the CPU side once the warrior turns into a zombie.
	Zombie bool
}

// PC returns CS:IP.
func (s *State) PC() memory.Address {
	return memory.NewAddress(s.CS, s.IP)
}

// Exception is raised when an opcode cannot be executed.
type Exception struct {
	Opcode byte
	Addr   memory.Address
	Reason string
}

func (e *Exception) Error() string {
	return fmt.Sprintf("cpu exception at %s (opcode %02X): %s", e.Addr, e.Opcode, e.Reason)
}
