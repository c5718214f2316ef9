package core

// State is the typed accessor pair for one declared key. Accessors resolve
// the component's current record on every call, so they keep working after
// the component is connected to another record.
type State[T any] struct {
	c   *Component
	key string
}

// UseState declares key on c's record with an initial value and returns its
// accessors. Declaring a key that already exists keeps the stored value.
func UseState[T any](c *Component, key string, initial T) State[T] {
	c.Declare(key, initial)
	return State[T]{c: c, key: key}
}

// StateOf returns accessors for a key declared elsewhere, typically by the
// record a connected component shares.
func StateOf[T any](c *Component, key string) State[T] {
	return State[T]{c: c, key: key}
}

// Key returns the state key.
func (s State[T]) Key() string { return s.key }

// Get returns the current value, or the zero T when the stored value is
// missing or of another type.
func (s State[T]) Get() T {
	v, _ := s.c.Get(s.key)
	t, _ := v.(T)
	return t
}

// Set replaces the value.
func (s State[T]) Set(next T) {
	s.c.Set(s.key, next)
}

// Update replaces the value with fn applied to the previous one.
func (s State[T]) Update(fn func(prev T) T) {
	s.c.Update(s.key, func(prev any) any {
		p, _ := prev.(T)
		return fn(p)
	})
}

// Apply runs a list operation built from the previous value. A nil
// operation does nothing.
func (s State[T]) Apply(fn func(prev T) ListOp) {
	op := fn(s.Get())
	if op == nil {
		return
	}
	s.c.Update(s.key, func(any) any { return op })
}

// UseEffect subscribes callback to every key. Each subscription fires once
// on the next effect flush with the key's current value, and again whenever
// a later flush sees a value different from the one it last saw.
func UseEffect(c *Component, callback func(value any), keys ...string) {
	if callback == nil {
		return
	}
	rec := c.record
	for _, key := range keys {
		rec.effects[key] = append(rec.effects[key], &effect{callback: callback})
		current, _ := rec.Value(key)
		c.rt.QueueEffect(rec, key, current, true)
	}
}
