package memory

import "github.com/RoaringBitmap/roaring/v2"

// WriteTracker is a Listener that remembers every linear address written
// since it was attached.
type WriteTracker struct {
	rb *roaring.Bitmap
}

func NewWriteTracker() *WriteTracker {
	return &WriteTracker{rb: roaring.New()}
}

func (t *WriteTracker) OnMemoryWrite(addr Address) {
	t.rb.Add(addr.Linear())
}

// Count returns the number of distinct addresses written.
func (t *WriteTracker) Count() uint64 {
	return t.rb.GetCardinality()
}

func (t *WriteTracker) Contains(addr Address) bool {
	return t.rb.Contains(addr.Linear())
}

// CountRange returns how many distinct addresses in r were written.
func (t *WriteTracker) CountRange(r Region) uint64 {
	if r.End <= r.Start {
		return 0
	}
	n := t.rb.Rank(r.End - 1)
	if r.Start > 0 {
		n -= t.rb.Rank(r.Start - 1)
	}
	return n
}

// Reset forgets all recorded writes.
func (t *WriteTracker) Reset() {
	t.rb.Clear()
}
