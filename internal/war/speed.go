package war

import "math/bits"

const (
	// MaxSpeed is reached at energy 0xFFFF.
	MaxSpeed = 16
	// DecelerationRounds is how often a warrior loses one point of energy.
	DecelerationRounds = 5
	MaxEnergy          = 0xFFFF
)

// Speed returns min(MaxSpeed, 1+floor(log2(energy))), or 0 without energy.
// A warrior gets an extra opcode in a round with probability speed/MaxSpeed.
func Speed(energy uint16) int {
	if energy == 0 {
		return 0
	}
	return min(MaxSpeed, bits.Len16(energy))
}

// decayEnergy drops one point of energy on deceleration rounds.
func decayEnergy(w *Warrior, round int) {
	if round%DecelerationRounds == 0 && w.energy > 0 {
		w.energy--
	}
}

func (w *War) shouldRunExtraOpcode(warrior *Warrior) bool {
	return w.rng.Intn(MaxSpeed) < Speed(warrior.energy)
}
