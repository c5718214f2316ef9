package frame

import (
	"context"
	"sync"
	"time"

	"github.com/go-drift/lite/pkg/errors"
)

// DefaultInterval paces frames at roughly 60Hz.
const DefaultInterval = 16 * time.Millisecond

// Loop is a Scheduler backed by a single goroutine. Run owns execution: it
// drains dispatched tasks as they arrive and runs queued frame callbacks
// once per Interval. All state mutation and rendering must happen on that
// goroutine; Dispatch is the way in from any other goroutine.
type Loop struct {
	// Interval is the frame period. Zero means DefaultInterval.
	Interval time.Duration

	mu      sync.Mutex
	frames  []func()
	tasks   chan func()
	running bool
}

// NewLoop returns a loop with the given frame interval.
func NewLoop(interval time.Duration) *Loop {
	return &Loop{
		Interval: interval,
		tasks:    make(chan func(), 64),
	}
}

// RequestFrame queues cb for the next frame. Safe from any goroutine, but
// the callback always runs on the loop goroutine.
func (l *Loop) RequestFrame(cb func()) {
	if cb == nil {
		return
	}
	l.mu.Lock()
	l.frames = append(l.frames, cb)
	l.mu.Unlock()
}

// Dispatch queues fn to run on the loop goroutine as soon as possible.
// It blocks while the task buffer is full.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	l.tasks <- fn
}

// Run blocks, executing tasks and frames until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoopRunning
	}
	l.running = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			errors.Guard("frame.Loop.Dispatch", fn)
		case <-ticker.C:
			l.tick()
		}
	}
}

// Flush runs one frame immediately. It must be called from the loop
// goroutine, typically from a dispatched task that needs the tree settled
// before it continues.
func (l *Loop) Flush() {
	l.tick()
}

func (l *Loop) tick() {
	l.mu.Lock()
	batch := l.frames
	l.frames = nil
	l.mu.Unlock()
	for _, cb := range batch {
		errors.Guard("frame.Loop.tick", cb)
	}
}

// Pending returns the number of frame callbacks waiting for the next tick.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// FlushUntilIdle runs frames immediately until none are pending, giving up
// after maxFrames frames with ErrNotSettled. Like Flush it must be called
// from the loop goroutine.
func (l *Loop) FlushUntilIdle(maxFrames int) error {
	for i := 0; i < maxFrames; i++ {
		if l.Pending() == 0 {
			return nil
		}
		l.tick()
	}
	if l.Pending() > 0 {
		return ErrNotSettled
	}
	return nil
}
