package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type probe struct {
	name string
	hit  func(p *probe)
}

func collect(log *[]string) func(*probe) {
	return func(p *probe) {
		*log = append(*log, p.name)
		if p.hit != nil {
			p.hit(p)
		}
	}
}

func TestDispatchOrderAndDedup(t *testing.T) {
	m := NewMulticaster[*probe]()
	a, b := &probe{name: "a"}, &probe{name: "b"}
	m.Add(a)
	m.Add(b)
	m.Add(a)

	var log []string
	m.Dispatch(collect(&log))
	assert.Equal(t, []string{"a", "b"}, log)
	assert.Equal(t, 2, m.Len())
}

func TestAddDuringDispatchIsDeferred(t *testing.T) {
	m := NewMulticaster[*probe]()
	late := &probe{name: "late"}
	first := &probe{name: "first"}
	first.hit = func(*probe) { m.Add(late) }
	m.Add(first)

	var log []string
	m.Dispatch(collect(&log))
	assert.Equal(t, []string{"first"}, log)
	assert.Equal(t, 2, m.Len())

	log = nil
	m.Dispatch(collect(&log))
	assert.Equal(t, []string{"first", "late"}, log)
}

func TestRemoveDuringDispatch(t *testing.T) {
	m := NewMulticaster[*probe]()
	victim := &probe{name: "victim"}
	killer := &probe{name: "killer"}
	killer.hit = func(*probe) { m.Remove(victim) }
	m.Add(killer)
	m.Add(victim)

	var log []string
	m.Dispatch(collect(&log))
	// the running broadcast still reaches the removed listener
	assert.Equal(t, []string{"killer", "victim"}, log)

	log = nil
	m.Dispatch(collect(&log))
	assert.Equal(t, []string{"killer"}, log)
}

func TestRemoveDropsPendingAdd(t *testing.T) {
	m := NewMulticaster[*probe]()
	late := &probe{name: "late"}
	first := &probe{name: "first"}
	first.hit = func(*probe) {
		m.Add(late)
		m.Remove(late)
	}
	m.Add(first)

	var log []string
	m.Dispatch(collect(&log))
	m.Dispatch(collect(&log))
	assert.Equal(t, []string{"first", "first"}, log)
}

func TestNestedDispatchMergesAfterOutermost(t *testing.T) {
	m := NewMulticaster[*probe]()
	late := &probe{name: "late"}
	var inner []string
	outer := &probe{name: "outer"}
	outer.hit = func(*probe) {
		if len(inner) > 0 {
			return
		}
		m.Add(late)
		m.Dispatch(collect(&inner))
	}
	m.Add(outer)

	var log []string
	m.Dispatch(collect(&log))
	assert.Equal(t, []string{"outer"}, log)
	// late was queued by the outer broadcast, so the nested one skips it
	assert.Equal(t, []string{"outer"}, inner)
	assert.Equal(t, 2, m.Len())
}
