package coordinator

import (
	"time"

	"ghosttimer/internal/core/model"
	"ghosttimer/internal/core/timer"
)

// EventType defines the type of coordinator event.
type EventType string

const (
	EventRender   EventType = "render"
	EventFinished EventType = "finished"
	EventWarning  EventType = "warning"
)

// RenderState is the complete visual state of the overlay at one instant.
// It is comparable, so the coordinator publishes only on actual change.
type RenderState struct {
	TimeText        string
	TimerState      timer.State
	Alpha           float64
	TextColor       model.Color
	Position        model.Point
	ControlsVisible bool
	Visible         bool
}

// Event represents a coordinator update for observers.
type Event struct {
	Type    EventType
	Render  RenderState
	Message string
	At      time.Time
}

// inputKind enumerates everything that can enter the dispatch queue.
type inputKind int

const (
	inputTick inputKind = iota
	inputStart
	inputPause
	inputResume
	inputReset
	inputHotkeyToggleVisibility
	inputHotkeyStartStop
	inputHotkeyReset
	inputPointerEntered
	inputPointerExited
	inputPointerPressed
	inputPointerMoved
	inputPointerReleased
	inputMenuOpened
	inputMenuClosed
	inputDPIChanged
	inputMonitorsChanged
	inputConfigUpdate
	inputSampleDone
	inputPersistDone
)

// input is one queued occurrence. Only the fields relevant to its kind are
// set.
type input struct {
	kind     inputKind
	duration time.Duration
	point    model.Point
	scale    float64
	monitors []model.MonitorInfo
	config   model.Configuration
	seq      uint64
	color    model.Color
	err      error
}
