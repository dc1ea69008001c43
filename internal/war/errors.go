package war

import "errors"

var (
	ErrInvalidAllocationSize = errors.New("allocation size is not a multiple of the paragraph size")
	ErrOutOfMemory           = errors.New("allocation runs past the end of memory")
	ErrNoPlacement           = errors.New("no valid load offset found")
	ErrTooManyWarriors       = errors.New("too many warriors")
	ErrAlreadyLoaded         = errors.New("warriors already loaded")
	ErrUnknownType           = errors.New("unknown warrior type")
)

// Death reasons carried by OnWarriorDeath.
const (
	ReasonCPU    = "CPU exception"
	ReasonMemory = "memory exception"
)
