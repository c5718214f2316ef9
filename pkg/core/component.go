package core

import (
	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/dom"
)

// Component is a render root: a live node driven by a record.
type Component struct {
	rt       *Runtime
	tag      string
	node     *html.Node
	record   *Record
	released bool
}

// Node returns the root node.
func (c *Component) Node() *html.Node { return c.node }

// Tag returns the component's tag name.
func (c *Component) Tag() string { return c.tag }

// ID returns the id of the record currently driving c. After ConnectDB it
// is the target's id.
func (c *Component) ID() string { return c.record.id }

// Record returns the record currently driving c.
func (c *Component) Record() *Record { return c.record }

// Runtime returns the runtime c is registered with.
func (c *Component) Runtime() *Runtime { return c.rt }

// Released reports whether Release was called for c.
func (c *Component) Released() bool { return c.released }

// ParentID returns the id of the component c should share state with:
// data-parent when the core has written one, else the data-root value.
func (c *Component) ParentID() string {
	if id, ok := dom.Attr(c.node, dom.AttrParent); ok && id != "" {
		return id
	}
	id, _ := dom.Attr(c.node, dom.AttrRoot)
	return id
}

// Declare declares key with an initial value if it is not declared yet,
// queueing the initial value for every root of the record. It reports
// whether the key was new.
func (c *Component) Declare(key string, initial any) bool {
	rec := c.record
	if !rec.declare(key, initial) {
		return false
	}
	for _, root := range rec.roots {
		c.rt.QueueDOMUpdate(root, key, initial)
	}
	return true
}

// Get returns the current value for key.
func (c *Component) Get(key string) (any, bool) {
	return c.record.Value(key)
}

// Set replaces the value for key. The value is never interpreted as a list
// operation.
func (c *Component) Set(key string, next any) {
	c.write(key, next, false)
}

// Update computes the next value from the previous one. A [ListOp] result
// is applied as a list operation against the current [List].
func (c *Component) Update(key string, fn func(prev any) any) {
	box, ok := c.record.state[key]
	if !ok {
		c.rt.logger.Debug("write to undeclared state key", "component", c.tag, "key", key)
		return
	}
	c.write(key, fn(box.Load()), true)
}

func (c *Component) write(key string, result any, interpret bool) {
	rec := c.record
	box, ok := rec.state[key]
	if !ok {
		c.rt.logger.Debug("write to undeclared state key", "component", c.tag, "key", key)
		return
	}

	next, domValue, reconcile := result, result, true
	if op, isOp := result.(ListOp); interpret && isOp {
		resolved, change, applied := resolveListOp(box.Load(), op)
		if !applied {
			// Not a list: the value stays as it is and there is nothing
			// to reconcile.
			c.rt.logger.Debug("list operation on non-list value", "component", c.tag, "key", key)
			next, reconcile = box.Load(), false
		} else {
			next, domValue = resolved, change
		}
	}

	box.Store(next)

	if reconcile {
		for _, root := range rec.roots {
			c.rt.QueueDOMUpdate(root, key, domValue)
		}
	}

	if len(rec.effects[key]) > 0 {
		c.rt.QueueEffect(rec, key, next, false)
	}
}
