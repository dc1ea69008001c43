package war

import (
	"fmt"
	"math/rand"

	"corewars/internal/memory"
)

const (
	ArenaSegment = 0x1000
	// ArenaSize is the size of a single segment.
	ArenaSize             = memory.SegmentSize
	StackSize             = 2 * 1024
	GroupSharedMemorySize = 1024
	// ArenaByte fills the arena before anything is loaded.
	ArenaByte       = 0xCC
	MaxWarriors     = 20
	MaxLoadingTries = 100
	MinGap          = 1024
)

// firstFreeAddress is the first linear address after the arena segment.
const firstFreeAddress = memory.ParagraphSize * (ArenaSegment + memory.ParagraphsInSegment)

// allocator hands out stacks and shared blocks. Memory is never freed.
type allocator struct {
	next uint32
}

func newAllocator() allocator {
	return allocator{next: firstFreeAddress}
}

func (a *allocator) allocate(size int) (memory.Address, error) {
	if size < 0 || size%memory.ParagraphSize != 0 {
		return memory.Address{}, fmt.Errorf("%w: %d", ErrInvalidAllocationSize, size)
	}
	if uint64(a.next)+uint64(size) > memory.Size {
		return memory.Address{}, fmt.Errorf("%w: %d bytes at %05X", ErrOutOfMemory, size, a.next)
	}
	addr := memory.FromLinear(a.next)
	a.next += uint32(size)
	return addr, nil
}

// span is the arena interval occupied by one warrior's code.
type span struct {
	offset int
	size   int
}

// chooseLoadOffset draws random offsets until one is at least minGap away
// from the arena boundaries and from every placed warrior.
func chooseLoadOffset(rng *rand.Rand, size int, placed []span, minGap, attempts int) (uint16, error) {
	for try := 0; try < attempts; try++ {
		offset := rng.Intn(ArenaSize)
		if validOffset(offset, size, placed, minGap) {
			return uint16(offset), nil
		}
	}
	return 0, fmt.Errorf("%w: %d bytes after %d attempts", ErrNoPlacement, size, attempts)
}

func validOffset(offset, size int, placed []span, minGap int) bool {
	if offset < minGap || offset+size > ArenaSize-minGap {
		return false
	}
	for _, p := range placed {
		// reaching the other warrior's lower gap edge already collides
		if offset+size >= p.offset-minGap && offset < p.offset+p.size+minGap {
			return false
		}
	}
	return true
}
