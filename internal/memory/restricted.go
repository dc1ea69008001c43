package memory

// Region is a half-open range of linear addresses.
type Region struct {
	Start uint32
	End   uint32
}

// RegionAt returns the region of size bytes starting at addr.
func RegionAt(addr Address, size int) Region {
	start := addr.Linear()
	return Region{Start: start, End: start + uint32(size)}
}

func (r Region) Contains(linear uint32) bool {
	return linear >= r.Start && linear < r.End
}

// Restricted is a view over another Memory that only permits access to a
// fixed set of regions. Any other access raises an *Exception.
type Restricted struct {
	mem     Memory
	regions []Region
}

func NewRestricted(mem Memory, regions ...Region) *Restricted {
	return &Restricted{mem: mem, regions: regions}
}

func (r *Restricted) allowed(addr Address) bool {
	lin := addr.Linear()
	for _, reg := range r.regions {
		if reg.Contains(lin) {
			return true
		}
	}
	return false
}

func (r *Restricted) ReadByteAt(addr Address) (byte, error) {
	if !r.allowed(addr) {
		return 0, &Exception{Addr: addr}
	}
	return r.mem.ReadByteAt(addr)
}

func (r *Restricted) WriteByteAt(addr Address, value byte) error {
	if !r.allowed(addr) {
		return &Exception{Addr: addr, Write: true}
	}
	return r.mem.WriteByteAt(addr, value)
}
