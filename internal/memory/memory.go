package memory

import (
	"errors"
	"fmt"
)

var ErrListenerAttached = errors.New("memory listener already attached")

// Memory is byte-addressable storage as seen by an executing warrior.
type Memory interface {
	ReadByteAt(addr Address) (byte, error)
	WriteByteAt(addr Address, value byte) error
}

// Listener observes writes to memory.
type Listener interface {
	OnMemoryWrite(addr Address)
}

// Exception is raised by an access the memory refuses to serve.
type Exception struct {
	Addr  Address
	Write bool
}

func (e *Exception) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("memory exception: %s at %s", op, e.Addr)
}

// RealMode is the full 1 MiB real-mode memory. Every address is valid.
type RealMode struct {
	data     []byte
	listener Listener
}

func NewRealMode() *RealMode {
	return &RealMode{data: make([]byte, Size)}
}

// SetListener attaches the single write observer.
func (m *RealMode) SetListener(l Listener) error {
	if m.listener != nil {
		return ErrListenerAttached
	}
	m.listener = l
	return nil
}

func (m *RealMode) ReadByteAt(addr Address) (byte, error) {
	return m.data[addr.Linear()], nil
}

func (m *RealMode) WriteByteAt(addr Address, value byte) error {
	m.data[addr.Linear()] = value
	if m.listener != nil {
		m.listener.OnMemoryWrite(addr)
	}
	return nil
}

// Fill sets n bytes starting at addr without notifying the listener.
func (m *RealMode) Fill(addr Address, n int, value byte) {
	for i := 0; i < n; i++ {
		m.data[addr.Add(i).Linear()] = value
	}
}

// Segment returns a copy of the 64 KiB segment starting at seg:0000.
func (m *RealMode) Segment(seg uint16) []byte {
	out := make([]byte, SegmentSize)
	base := NewAddress(seg, 0)
	for i := range out {
		out[i] = m.data[base.Add(i).Linear()]
	}
	return out
}

// ReadWord reads a little-endian word; the high byte wraps within the segment.
func ReadWord(mem Memory, addr Address) (uint16, error) {
	lo, err := mem.ReadByteAt(addr)
	if err != nil {
		return 0, err
	}
	hi, err := mem.ReadByteAt(addr.Add(1))
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func WriteWord(mem Memory, addr Address, value uint16) error {
	if err := mem.WriteByteAt(addr, byte(value)); err != nil {
		return err
	}
	return mem.WriteByteAt(addr.Add(1), byte(value>>8))
}
