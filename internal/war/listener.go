package war

import "corewars/internal/events"

// WarriorListener is notified when warriors enter the arena and when they die.
type WarriorListener interface {
	OnWarriorBirth(name string)
	OnWarriorDeath(name, reason string)
}

// Broadcaster fans warrior events out to any number of listeners.
type Broadcaster struct {
	mc *events.Multicaster[WarriorListener]
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{mc: events.NewMulticaster[WarriorListener]()}
}

// Add registers l. Listeners added during a broadcast receive events from
// the next broadcast on.
func (b *Broadcaster) Add(l WarriorListener)    { b.mc.Add(l) }
func (b *Broadcaster) Remove(l WarriorListener) { b.mc.Remove(l) }

func (b *Broadcaster) OnWarriorBirth(name string) {
	b.mc.Dispatch(func(l WarriorListener) { l.OnWarriorBirth(name) })
}

func (b *Broadcaster) OnWarriorDeath(name, reason string) {
	b.mc.Dispatch(func(l WarriorListener) { l.OnWarriorDeath(name, reason) })
}

type nopListener struct{}

func (nopListener) OnWarriorBirth(string)         {}
func (nopListener) OnWarriorDeath(string, string) {}
