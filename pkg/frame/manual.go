package frame

import "github.com/go-drift/lite/pkg/errors"

// Manual is a Scheduler driven by explicit Pump calls. It is the scheduler
// used by tests and by one-shot rendering, where there is no display to
// pace frames.
//
// Manual is not safe for concurrent use.
type Manual struct {
	queue  []func()
	frames int
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// RequestFrame queues cb for the next Pump.
func (m *Manual) RequestFrame(cb func()) {
	if cb == nil {
		return
	}
	m.queue = append(m.queue, cb)
}

// Pending returns the number of callbacks waiting for the next frame.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Frames returns how many non-empty frames have run.
func (m *Manual) Frames() int {
	return m.frames
}

// Pump runs one frame: every callback queued before the call, in order.
// Callbacks requested while pumping wait for the next frame. Returns the
// number of callbacks run.
func (m *Manual) Pump() int {
	batch := m.queue
	m.queue = nil
	if len(batch) == 0 {
		return 0
	}
	m.frames++
	for _, cb := range batch {
		errors.Guard("frame.Manual.Pump", cb)
	}
	return len(batch)
}

// PumpUntilIdle pumps until no callbacks are pending, giving up after
// maxFrames frames with ErrNotSettled.
func (m *Manual) PumpUntilIdle(maxFrames int) error {
	for i := 0; i < maxFrames; i++ {
		if m.Pump() == 0 {
			return nil
		}
	}
	if len(m.queue) > 0 {
		return ErrNotSettled
	}
	return nil
}
