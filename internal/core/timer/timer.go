// Package timer implements the countdown state machine. All duration
// arithmetic uses the monotonic reading of the caller-supplied clock; wall
// time is never consulted, so clock adjustments and system sleep cannot
// corrupt the countdown.
package timer

import (
	"errors"
	"fmt"
	"time"
)

// State represents the current countdown mode.
type State string

const (
	StateStopped  State = "stopped"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// MaxDuration is the longest countdown that can be started.
const MaxDuration = 24 * time.Hour

// ErrInvalidDuration indicates a start duration outside (0, 24h].
var ErrInvalidDuration = errors.New("duration must be positive and at most 24 hours")

// ErrInvalidTransition indicates an operation called from the wrong state.
// The call is a no-op; engine state is left unchanged.
var ErrInvalidTransition = errors.New("invalid timer state transition")

// Engine is the countdown state machine. It is not safe for concurrent use;
// the coordinator is its single owner and serializes all calls.
type Engine struct {
	state            State
	originalDuration time.Duration
	startedAt        time.Time
	remaining        time.Duration
}

// New creates an engine in the stopped state.
func New() *Engine {
	return &Engine{state: StateStopped}
}

// Start begins a new countdown. Valid only from Stopped or Finished.
func (engine *Engine) Start(now time.Time, duration time.Duration) error {
	if duration <= 0 || duration > MaxDuration {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	if engine.state != StateStopped && engine.state != StateFinished {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, engine.state)
	}

	engine.state = StateRunning
	engine.originalDuration = duration
	engine.startedAt = now
	engine.remaining = duration
	return nil
}

// Tick recomputes the remaining time. It reports true exactly once, on the
// tick that reaches zero and moves the engine to Finished. Ticks in any
// other state are no-ops.
func (engine *Engine) Tick(now time.Time) bool {
	if engine.state != StateRunning {
		return false
	}

	engine.remaining = engine.runningRemaining(now)
	if engine.remaining == 0 {
		engine.state = StateFinished
		return true
	}
	return false
}

// Pause freezes the countdown, capturing the remaining time. A pause that
// lands exactly on zero moves to Finished instead, without reporting
// completion; the next Tick already did or never will.
func (engine *Engine) Pause(now time.Time) error {
	if engine.state != StateRunning {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, engine.state)
	}

	engine.remaining = engine.runningRemaining(now)
	if engine.remaining == 0 {
		engine.state = StateFinished
		return nil
	}
	engine.state = StatePaused
	return nil
}

// Resume continues a paused countdown. The start instant is back-dated so
// that the monotonic clock stays the single source of truth; time spent
// asleep or suspended simply counts as elapsed.
func (engine *Engine) Resume(now time.Time) error {
	if engine.state != StatePaused {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, engine.state)
	}

	engine.startedAt = now.Add(-(engine.originalDuration - engine.remaining))
	engine.state = StateRunning
	return nil
}

// Reset returns to Stopped from any state and clears the remaining time.
func (engine *Engine) Reset() {
	engine.state = StateStopped
	engine.originalDuration = 0
	engine.remaining = 0
	engine.startedAt = time.Time{}
}

// State returns the current state.
func (engine *Engine) State() State {
	return engine.state
}

// OriginalDuration returns the duration of the last started countdown, or
// zero if none was ever started.
func (engine *Engine) OriginalDuration() time.Duration {
	return engine.originalDuration
}

// Remaining returns the time left on the countdown. It is zero for Stopped
// and Finished, frozen for Paused, and recomputed from the clock for
// Running.
func (engine *Engine) Remaining(now time.Time) time.Duration {
	switch engine.state {
	case StateRunning:
		return engine.runningRemaining(now)
	case StatePaused:
		return engine.remaining
	default:
		return 0
	}
}

// IsRunning reports whether the countdown is actively ticking.
func (engine *Engine) IsRunning() bool {
	return engine.state == StateRunning
}

// DisplayText formats the countdown for the overlay.
func (engine *Engine) DisplayText(now time.Time) string {
	switch engine.state {
	case StateStopped:
		return "00:00"
	case StateFinished:
		return "DONE!"
	default:
		return FormatDuration(engine.Remaining(now))
	}
}

func (engine *Engine) runningRemaining(now time.Time) time.Duration {
	elapsed := now.Sub(engine.startedAt)
	if elapsed >= engine.originalDuration {
		return 0
	}
	return engine.originalDuration - elapsed
}

// FormatDuration renders a duration as mm:ss, or h:mm:ss from one hour up.
func FormatDuration(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	if minutes >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", minutes/60, minutes%60, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
