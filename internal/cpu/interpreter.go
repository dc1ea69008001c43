package cpu

import "corewars/internal/memory"

const (
	opIncAX    = 0x40
	opNop      = 0x90
	opMovMemAX = 0xA3
	opMovAXImm = 0xB8
	opMovMem8  = 0xC6
	opMovMem16 = 0xC7
	opInt3     = 0xCC
	opJmpNear  = 0xE9
	opJmpShort = 0xEB

	modrmDisp16 = 0x06
)

// Interpreter executes one instruction at a time. Only a handful of
// opcodes are understood; anything else raises an *Exception.
type Interpreter struct{}

func NewInterpreter() *Interpreter { return &Interpreter{} }

// Step executes the instruction at CS:IP. The state is left untouched when
// the instruction faults.
func (in *Interpreter) Step(st *State, mem memory.Memory) error {
	pc := st.PC()
	op, err := mem.ReadByteAt(pc)
	if err != nil {
		return err
	}
	fetch8 := func(n int) (byte, error) { return mem.ReadByteAt(pc.Add(n)) }
	fetch16 := func(n int) (uint16, error) { return memory.ReadWord(mem, pc.Add(n)) }
	fault := func(reason string) error { return &Exception{Opcode: op, Addr: pc, Reason: reason} }

	switch op {
	case opNop:
		st.IP++

	case opIncAX:
		st.AX++
		st.IP++

	case opMovAXImm:
		v, err := fetch16(1)
		if err != nil {
			return err
		}
		st.AX = v
		st.IP += 3

	case opMovMemAX:
		disp, err := fetch16(1)
		if err != nil {
			return err
		}
		if err := memory.WriteWord(mem, memory.NewAddress(st.DS, disp), st.AX); err != nil {
			return err
		}
		st.IP += 3

	case opMovMem8, opMovMem16:
		modrm, err := fetch8(1)
		if err != nil {
			return err
		}
		if modrm != modrmDisp16 {
			return fault("unsupported addressing mode")
		}
		disp, err := fetch16(2)
		if err != nil {
			return err
		}
		dst := memory.NewAddress(st.DS, disp)
		if op == opMovMem8 {
			v, err := fetch8(4)
			if err != nil {
				return err
			}
			if err := mem.WriteByteAt(dst, v); err != nil {
				return err
			}
			st.IP += 5
			break
		}
		v, err := fetch16(4)
		if err != nil {
			return err
		}
		if err := memory.WriteWord(mem, dst, v); err != nil {
			return err
		}
		st.IP += 6

	case opJmpShort:
		rel, err := fetch8(1)
		if err != nil {
			return err
		}
		st.IP = st.IP + 2 + uint16(int8(rel))

	case opJmpNear:
		rel, err := fetch16(1)
		if err != nil {
			return err
		}
		st.IP = st.IP + 3 + rel

	case opInt3:
		return fault("breakpoint")

	default:
		return fault("unsupported opcode")
	}
	return nil
}
