package core

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/frame"
)

// Runtime is the process-wide context shared by all components.
type Runtime struct {
	sched  frame.Scheduler
	logger *slog.Logger
	newID  func(tag string) string

	records map[string]*Record
	repeats map[*Component]map[string]*repeatContext

	updates         *updateQueue
	updateScheduled bool
	effects         *effectQueue
	effectScheduled bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for debug diagnostics about missing
// markup and unknown connection targets.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithIDGenerator replaces the unique id generator. The default produces
// the upper-cased tag followed by a random UUID.
func WithIDGenerator(gen func(tag string) string) Option {
	return func(rt *Runtime) {
		if gen != nil {
			rt.newID = gen
		}
	}
}

// NewRuntime creates a runtime that flushes on sched's frames.
func NewRuntime(sched frame.Scheduler, opts ...Option) *Runtime {
	rt := &Runtime{
		sched:   sched,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:   defaultID,
		records: make(map[string]*Record),
		repeats: make(map[*Component]map[string]*repeatContext),
		updates: newUpdateQueue(),
		effects: newEffectQueue(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func defaultID(tag string) string {
	return strings.ToUpper(tag) + "-" + uuid.NewString()
}

// Scheduler returns the frame scheduler the runtime flushes on.
func (rt *Runtime) Scheduler() frame.Scheduler {
	return rt.sched
}

// Logger returns the diagnostics logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// Register creates a render root for node with a fresh record.
func (rt *Runtime) Register(tag string, node *html.Node) *Component {
	c := &Component{rt: rt, tag: tag, node: node}
	rec := newRecord(rt.newID(tag))
	rec.addRoot(c)
	c.record = rec
	rt.records[rec.id] = rec
	return c
}

// Lookup returns the record registered under id.
func (rt *Runtime) Lookup(id string) (*Record, bool) {
	rec, ok := rt.records[id]
	return rec, ok
}

// Idle reports whether no update or effect flush is pending.
func (rt *Runtime) Idle() bool {
	return !rt.updateScheduled && !rt.effectScheduled
}

// Release detaches c from the runtime. Its pending updates and repeat
// caches are dropped, and a flush already scheduled skips it. When c was the
// last root of its record, the record leaves the registry and its pending
// effects are dropped.
func (rt *Runtime) Release(c *Component) {
	if c == nil || c.released {
		return
	}
	c.released = true
	rec := c.record
	rec.removeRoot(c)
	rt.updates.drop(c)
	delete(rt.repeats, c)
	rt.dropIfOrphaned(rec)
}

// dropIfOrphaned removes rec from the registry and drops its pending
// effects once no root renders it.
func (rt *Runtime) dropIfOrphaned(rec *Record) {
	if len(rec.roots) > 0 {
		return
	}
	if rt.records[rec.id] == rec {
		delete(rt.records, rec.id)
	}
	rt.effects.drop(rec)
}

// ConnectDB rebinds c to the record registered under targetID, so that c
// renders and writes the target's state. Every key of the target is
// queued for c right away. The record c leaves is dropped when c was its
// last root. Returns false if no such record exists.
func (rt *Runtime) ConnectDB(c *Component, targetID string) bool {
	target, ok := rt.records[targetID]
	if !ok {
		rt.logger.Debug("connect target not found", "component", c.tag, "target", targetID)
		return false
	}
	if c.released {
		return false
	}
	prev := c.record
	if prev != target {
		prev.removeRoot(c)
		target.addRoot(c)
		c.record = target
		rt.dropIfOrphaned(prev)
	}

	for _, key := range target.keys {
		rt.QueueDOMUpdate(c, key, target.state[key].Load())
	}
	return true
}

// ConnectParent connects c to the record named by its data-parent
// attribute, falling back to the value of data-root. It reports whether a
// connection was made.
func (rt *Runtime) ConnectParent(c *Component) bool {
	id := c.ParentID()
	if id == "" {
		return false
	}
	if _, ok := rt.records[id]; !ok {
		return false
	}
	return rt.ConnectDB(c, id)
}
