package war

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeed(t *testing.T) {
	tests := []struct {
		energy uint16
		want   int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{0x7FFF, 15},
		{0x8000, 16},
		{0xFFFF, 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Speed(tt.energy), "energy %#x", tt.energy)
	}

	prev := 0
	for e := 0; e <= MaxEnergy; e++ {
		s := Speed(uint16(e))
		require.GreaterOrEqual(t, s, prev, "energy %#x", e)
		require.LessOrEqual(t, s, MaxSpeed)
		prev = s
	}
}

func TestEnergyDecay(t *testing.T) {
	w := New(nil, WithSeed(1), WithCPU(newFakeCPU()))
	require.NoError(t, w.Load(survivors("a", "b")))

	for round := 0; round < 20; round++ {
		w.NextRound(round)
	}
	// rounds 0, 5, 10 and 15
	assert.Equal(t, uint16(MaxEnergy-4), w.Warrior(0).Energy())
	assert.Equal(t, uint16(MaxEnergy-4), w.Warrior(1).Energy())

	w.Warrior(0).energy = 0
	w.NextRound(20)
	assert.Zero(t, w.Warrior(0).Energy())
}

func TestExtraOpcodeFollowsEnergy(t *testing.T) {
	fake := newFakeCPU()
	w := New(nil, WithSeed(3), WithCPU(fake))
	require.NoError(t, w.Load(survivors("full", "empty")))

	var empty *Warrior
	for i := 0; i < w.NumWarriors(); i++ {
		if w.Warrior(i).Name() == "empty" {
			empty = w.Warrior(i)
		}
	}
	empty.energy = 0

	for round := 1; round <= 10; round++ {
		w.NextRound(round)
	}
	// full speed always wins the draw, zero speed never does
	assert.Equal(t, 20, fake.calls["full"])
	assert.Equal(t, 10, fake.calls["empty"])
}

func TestZombieOpcodes(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		speed int
		want  int
	}{
		{"fast zombie", TypeZombieH, 1, 2},
		{"zombie", TypeZombie, 1, 1},
		{"zombie at double speed", TypeZombie, 2, 2},
		{"fast zombie at triple speed", TypeZombieH, 3, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeCPU()
			w := New(nil, WithSeed(5), WithCPU(fake), WithZombieSpeed(tt.speed))
			groups := append(survivors("human"), solo("undead", 64, tt.typ))
			require.NoError(t, w.Load(groups))

			w.NextRound(0)
			assert.Equal(t, tt.want, fake.calls["undead"])
			w.NextRound(1)
			assert.Equal(t, 2*tt.want, fake.calls["undead"])

			for i := 0; i < w.NumWarriors(); i++ {
				if warrior := w.Warrior(i); warrior.Name() == "undead" {
					assert.Equal(t, uint16(MaxEnergy), warrior.Energy(), "zombies skip the energy model")
				}
			}
		})
	}
}
