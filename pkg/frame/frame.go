// Package frame provides the render-tick primitive the reactive core batches
// against.
//
// A Scheduler runs a callback on the next tick. The core only ever asks for
// one pending flush at a time, so the scheduler does not coalesce by itself;
// it just needs to guarantee that callbacks requested before a tick starts run
// during that tick, in request order, on the same goroutine as everything
// else.
package frame

import "errors"

// Scheduler runs callbacks on the next render tick.
type Scheduler interface {
	RequestFrame(cb func())
}

// Func adapts a function to Scheduler.
type Func func(cb func())

// RequestFrame calls f(cb).
func (f Func) RequestFrame(cb func()) { f(cb) }

// ErrNotSettled is returned when work keeps being scheduled past the frame
// limit given to PumpUntilIdle.
var ErrNotSettled = errors.New("frame: scheduler did not settle")

// ErrLoopRunning is returned by Loop.Run when the loop is already running.
var ErrLoopRunning = errors.New("frame: loop already running")
