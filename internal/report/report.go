// Package report records what happened in a match and writes results out.
package report

import (
	"encoding/json"
	"sync"
)

const (
	EventBirth = "Birth"
	EventDeath = "Death"
)

type Event struct {
	Round   int    `json:"round"`
	Type    string `json:"type"`
	Warrior string `json:"warrior"`
	Reason  string `json:"reason,omitempty"`
}

// Recorder is a war.WarriorListener that keeps every event, stamped with
// the round reported by roundNow.
type Recorder struct {
	mu       sync.Mutex
	roundNow func() int
	events   []Event
}

func NewRecorder(roundNow func() int) *Recorder {
	if roundNow == nil {
		roundNow = func() int { return 0 }
	}
	return &Recorder{roundNow: roundNow, events: make([]Event, 0, 64)}
}

func (r *Recorder) OnWarriorBirth(name string) {
	r.add(Event{Type: EventBirth, Warrior: name})
}

func (r *Recorder) OnWarriorDeath(name, reason string) {
	r.add(Event{Type: EventDeath, Warrior: name, Reason: reason})
}

func (r *Recorder) add(ev Event) {
	ev.Round = r.roundNow()
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
