package core

import "github.com/go-drift/lite/pkg/errors"

// effect is one subscription: a callback and the value it last saw.
type effect struct {
	callback func(any)
	lastSeen any
	seen     bool
}

// QueueEffect schedules the effects of rec subscribed to key. Triggers are
// coalesced per (record, key) until the next effect flush; force makes
// every subscription run regardless of its last seen value.
func (rt *Runtime) QueueEffect(rec *Record, key string, value any, force bool) {
	rt.effects.put(rec, key, value, force)
	if !rt.effectScheduled {
		rt.effectScheduled = true
		rt.sched.RequestFrame(rt.flushEffects)
	}
}

func (rt *Runtime) flushEffects() {
	q := rt.effects
	rt.effects = newEffectQueue()
	rt.effectScheduled = false

	for _, rec := range q.records {
		re := q.byRecord[rec]
		for _, key := range re.keys {
			trigger := re.entries[key]
			// Copy: a callback may subscribe more effects to the key.
			subs := append([]*effect(nil), rec.effects[key]...)
			for _, e := range subs {
				if !trigger.force && e.seen && sameValue(e.lastSeen, trigger.value) {
					continue
				}
				e.seen = true
				e.lastSeen = trigger.value
				errors.Guard("core.flushEffects", func() {
					e.callback(trigger.value)
				})
			}
		}
	}
}
