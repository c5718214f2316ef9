package core

import "slices"

// Box is the single mutable slot backing one state key.
type Box struct {
	value any
}

// Load returns the current value.
func (b *Box) Load() any { return b.value }

// Store replaces the current value.
func (b *Box) Store(v any) { b.value = v }

// Record is the per-component bundle of state, effect subscriptions and the
// roots it drives.
type Record struct {
	id      string
	keys    []string
	state   map[string]*Box
	effects map[string][]*effect
	roots   []*Component
}

func newRecord(id string) *Record {
	return &Record{
		id:      id,
		state:   make(map[string]*Box),
		effects: make(map[string][]*effect),
	}
}

// ID returns the record's unique id.
func (r *Record) ID() string { return r.id }

// Keys returns the declared state keys in declaration order.
func (r *Record) Keys() []string {
	return slices.Clone(r.keys)
}

// Value returns the stored value for key.
func (r *Record) Value(key string) (any, bool) {
	box, ok := r.state[key]
	if !ok {
		return nil, false
	}
	return box.Load(), true
}

// Roots returns the components this record drives.
func (r *Record) Roots() []*Component {
	return slices.Clone(r.roots)
}

// EffectCount returns the number of effects subscribed to key.
func (r *Record) EffectCount(key string) int {
	return len(r.effects[key])
}

func (r *Record) declare(key string, initial any) bool {
	if _, ok := r.state[key]; ok {
		return false
	}
	r.state[key] = &Box{value: initial}
	r.keys = append(r.keys, key)
	return true
}

func (r *Record) addRoot(c *Component) {
	if !slices.Contains(r.roots, c) {
		r.roots = append(r.roots, c)
	}
}

func (r *Record) removeRoot(c *Component) {
	if i := slices.Index(r.roots, c); i >= 0 {
		r.roots = slices.Delete(r.roots, i, i+1)
	}
}
