package navigation

import (
	"slices"
	"strings"

	"github.com/go-drift/lite/pkg/frame"
)

// Location is the source of the current fragment.
type Location interface {
	// Hash returns the current fragment including its leading "#",
	// or "" when there is none.
	Hash() string
	// SetHash replaces the fragment. Listeners are notified only if the
	// fragment actually changed.
	SetHash(hash string)
	// Subscribe registers fn for fragment changes and returns a function
	// that removes it.
	Subscribe(fn func()) (cancel func())
}

// MemoryLocation is an in-process Location.
//
// With a scheduler, change notifications are delivered on the next frame,
// the way a browser delivers hashchange after the fragment write returns.
// Without one they are delivered synchronously from SetHash.
type MemoryLocation struct {
	hash      string
	sched     frame.Scheduler
	listeners map[int]func()
	nextID    int
}

// NewMemoryLocation returns a location holding the given fragment.
func NewMemoryLocation(hash string, sched frame.Scheduler) *MemoryLocation {
	return &MemoryLocation{
		hash:      formatHash(hash),
		sched:     sched,
		listeners: make(map[int]func()),
	}
}

// Hash returns the current fragment.
func (l *MemoryLocation) Hash() string {
	return l.hash
}

// SetHash replaces the fragment and notifies listeners if it changed.
func (l *MemoryLocation) SetHash(hash string) {
	hash = formatHash(hash)
	if hash == l.hash {
		return
	}
	l.hash = hash
	if l.sched != nil {
		l.sched.RequestFrame(l.notify)
		return
	}
	l.notify()
}

// Subscribe registers fn for fragment changes.
func (l *MemoryLocation) Subscribe(fn func()) func() {
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	return func() {
		delete(l.listeners, id)
	}
}

// Listeners returns the number of registered listeners.
func (l *MemoryLocation) Listeners() int {
	return len(l.listeners)
}

func (l *MemoryLocation) notify() {
	ids := make([]int, 0, len(l.listeners))
	for id := range l.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := l.listeners[id]; ok {
			fn()
		}
	}
}

func formatHash(hash string) string {
	hash = strings.TrimPrefix(hash, "#")
	if hash == "" {
		return ""
	}
	return "#" + hash
}
