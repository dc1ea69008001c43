package war

import "bytes"

// fakeCPU counts opcodes per warrior and fails on demand. Zombie-class
// warriors turn zombie after their first successful opcode.
type fakeCPU struct {
	calls  map[string]int
	faults map[string]func(call int) error
	zombie map[string]bool
}

func newFakeCPU() *fakeCPU {
	return &fakeCPU{
		calls:  map[string]int{},
		faults: map[string]func(int) error{},
		zombie: map[string]bool{},
	}
}

func (f *fakeCPU) NextOpcode(w *Warrior) error {
	f.calls[w.Name()]++
	if fn := f.faults[w.Name()]; fn != nil {
		if err := fn(f.calls[w.Name()]); err != nil {
			return err
		}
	}
	if w.Type().IsZombieClass() {
		f.zombie[w.Name()] = true
	}
	return nil
}

func (f *fakeCPU) IsZombie(w *Warrior) bool { return f.zombie[w.Name()] }

type death struct {
	name   string
	reason string
}

type recorder struct {
	births []string
	deaths []death
}

func (r *recorder) OnWarriorBirth(name string) { r.births = append(r.births, name) }
func (r *recorder) OnWarriorDeath(name, reason string) {
	r.deaths = append(r.deaths, death{name: name, reason: reason})
}

func nops(n int) []byte {
	return bytes.Repeat([]byte{0x90}, n)
}

func solo(name string, size int, typ Type) WarriorGroup {
	return WarriorGroup{Name: name, Warriors: []WarriorData{{Name: name, Code: nops(size), Type: typ}}}
}

func survivors(names ...string) []WarriorGroup {
	groups := make([]WarriorGroup, 0, len(names))
	for _, n := range names {
		groups = append(groups, solo(n, 64, TypeSurvivor))
	}
	return groups
}
