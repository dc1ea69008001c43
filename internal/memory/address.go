// Package memory implements the real-mode address space the arena lives in.
package memory

import "fmt"

const (
	ParagraphSize       = 16
	ParagraphsInSegment = 0x1000
	SegmentSize         = ParagraphSize * ParagraphsInSegment
	// Size is the whole 20-bit real-mode address space.
	Size = 1 << 20
)

// Address is a segment:offset pair.
type Address struct {
	Segment uint16
	Offset  uint16
}

func NewAddress(segment, offset uint16) Address {
	return Address{Segment: segment, Offset: offset}
}

// FromLinear returns the canonical address of a linear one, with the
// offset kept below one paragraph.
func FromLinear(linear uint32) Address {
	linear &= Size - 1
	return Address{Segment: uint16(linear / ParagraphSize), Offset: uint16(linear % ParagraphSize)}
}

// Linear folds the address into the 20-bit space, wrapping like the 8086 does.
func (a Address) Linear() uint32 {
	return (uint32(a.Segment)*ParagraphSize + uint32(a.Offset)) & (Size - 1)
}

// Add returns the address n bytes further within the same segment.
func (a Address) Add(n int) Address {
	return Address{Segment: a.Segment, Offset: a.Offset + uint16(n)}
}

func (a Address) String() string {
	return fmt.Sprintf("%04X:%04X", a.Segment, a.Offset)
}
