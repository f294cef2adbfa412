// Package display tracks monitor and DPI context and derives a contrasting
// text color from sampled background pixels.
package display

import (
	"time"

	"ghosttimer/internal/core/model"
)

// SampleThrottle is the minimum wall time between background samples.
const SampleThrottle = 5 * time.Second

// Sampler reads the on-screen color of a region. Implementations are thin
// platform wrappers; any failure is non-fatal to the caller.
type Sampler interface {
	Sample(rect model.Rect) (model.Color, error)
}

// Adapter owns the display context: the monitor list, the DPI scale, the
// widget's logical position and the background-derived text color. It is
// mutated only from the coordinator's dispatch loop.
type Adapter struct {
	monitors   []model.MonitorInfo
	current    int
	dpiScale   float64
	position   model.Point
	widgetSize model.Size

	background  *model.Color
	textColor   model.Color
	lastSample  time.Time
	sampleDue   bool
	degraded    bool
}

// New creates an adapter with no monitors and a 1.0 DPI scale. The text
// color starts white, the safe choice over an unknown background.
func New(position model.Point, widgetSize model.Size) *Adapter {
	return &Adapter{
		dpiScale:   1.0,
		position:   position,
		widgetSize: widgetSize,
		textColor:  model.White,
		sampleDue:  true,
	}
}

// NotePositionChanged records a new widget position and marks background
// resampling as due. Sampling itself stays subject to the throttle; nothing
// is read here.
func (adapter *Adapter) NotePositionChanged(position model.Point) {
	adapter.position = position
	adapter.sampleDue = true

	if index, ok := adapter.monitorAt(position); ok {
		adapter.current = index
		adapter.dpiScale = adapter.monitors[index].ScaleFactor
	}
}

// SampleDue reports whether a background sample should be issued now:
// resampling was requested and the throttle window has elapsed.
func (adapter *Adapter) SampleDue(now time.Time) bool {
	if !adapter.sampleDue {
		return false
	}
	return adapter.lastSample.IsZero() || now.Sub(adapter.lastSample) >= SampleThrottle
}

// BeginSample stamps the throttle clock and returns the widget bounds the
// sample task should read. The stamp happens at issue time so a slow task
// cannot defeat the throttle.
func (adapter *Adapter) BeginSample(now time.Time) model.Rect {
	adapter.lastSample = now
	adapter.sampleDue = false
	return model.RectAt(adapter.position, adapter.widgetSize)
}

// CollectSample reads a 3x3 grid of points across bounds, each weighted
// equally, and returns the average color. It touches no adapter state and is
// safe to run off the dispatch loop. The first sampler failure aborts the
// collection.
func CollectSample(bounds model.Rect, sampler Sampler) (model.Color, error) {
	points := gridPoints(bounds)

	var sumR, sumG, sumB int
	for _, point := range points {
		color, err := sampler.Sample(model.Rect{X: point.X, Y: point.Y, Width: 1, Height: 1})
		if err != nil {
			return model.Color{}, err
		}
		sumR += int(color.R)
		sumG += int(color.G)
		sumB += int(color.B)
	}

	count := len(points)
	return model.Color{
		R: uint8(sumR / count),
		G: uint8(sumG / count),
		B: uint8(sumB / count),
		A: 255,
	}, nil
}

// ApplySample feeds a completed sample back into the context. On failure the
// text falls back to white and the context is marked degraded; the error is
// not surfaced further. It reports whether the visible state changed.
func (adapter *Adapter) ApplySample(color model.Color, err error) bool {
	if err != nil {
		changed := !adapter.degraded || adapter.textColor != model.White
		adapter.background = nil
		adapter.textColor = model.White
		adapter.degraded = true
		return changed
	}

	next := color.ContrastingText()
	changed := adapter.degraded || adapter.background == nil ||
		*adapter.background != color || adapter.textColor != next

	sampled := color
	adapter.background = &sampled
	adapter.textColor = next
	adapter.degraded = false
	return changed
}

// OnDPIChange rescales the stored logical position by the scale ratio, then
// clamps it back onto a monitor if the rescaled point fell off every known
// one. It reports whether the position changed.
func (adapter *Adapter) OnDPIChange(newScale float64) bool {
	if newScale <= 0 || newScale == adapter.dpiScale {
		return false
	}

	ratio := newScale / adapter.dpiScale
	adapter.dpiScale = newScale

	rescaled := model.Point{
		X: int(float64(adapter.position.X) * ratio),
		Y: int(float64(adapter.position.Y) * ratio),
	}
	if _, ok := adapter.monitorAt(rescaled); !ok {
		rescaled = adapter.constrain(rescaled)
	}

	if rescaled == adapter.position {
		return false
	}
	adapter.position = rescaled
	adapter.sampleDue = true
	return true
}

// OnMonitorTopologyChange replaces the monitor list. An invalidated current
// monitor falls back to the primary, and the position is clamped into the
// new layout. It reports whether the position changed.
func (adapter *Adapter) OnMonitorTopologyChange(monitors []model.MonitorInfo) bool {
	adapter.monitors = append([]model.MonitorInfo(nil), monitors...)

	if index, ok := adapter.monitorAt(adapter.position); ok {
		adapter.current = index
	} else if adapter.current >= len(adapter.monitors) {
		adapter.current = adapter.primaryIndex()
	}
	if adapter.current < len(adapter.monitors) {
		adapter.dpiScale = adapter.monitors[adapter.current].ScaleFactor
	}

	clamped := adapter.constrain(adapter.position)
	if clamped == adapter.position {
		return false
	}
	adapter.position = clamped
	adapter.sampleDue = true
	return true
}

// Position returns the widget's logical position as the adapter knows it.
func (adapter *Adapter) Position() model.Point {
	return adapter.position
}

// TextColor returns the background-derived text color. White until the
// first successful sample, and after any failed one.
func (adapter *Adapter) TextColor() model.Color {
	return adapter.textColor
}

// Background returns the last sampled background color, or nil if none.
func (adapter *Adapter) Background() *model.Color {
	return adapter.background
}

// Degraded reports whether the last sample attempt failed.
func (adapter *Adapter) Degraded() bool {
	return adapter.degraded
}

// Monitors returns the known monitor list.
func (adapter *Adapter) Monitors() []model.MonitorInfo {
	return adapter.monitors
}

// DPIScale returns the current scale factor.
func (adapter *Adapter) DPIScale() float64 {
	return adapter.dpiScale
}

func gridPoints(bounds model.Rect) []model.Point {
	xs := [3]int{bounds.X, bounds.X + bounds.Width/2, bounds.X + bounds.Width - 1}
	ys := [3]int{bounds.Y, bounds.Y + bounds.Height/2, bounds.Y + bounds.Height - 1}

	points := make([]model.Point, 0, 9)
	for _, y := range ys {
		for _, x := range xs {
			points = append(points, model.Point{X: x, Y: y})
		}
	}
	return points
}

func (adapter *Adapter) monitorAt(point model.Point) (int, bool) {
	for index, monitor := range adapter.monitors {
		if monitor.Contains(point) {
			return index, true
		}
	}
	return 0, false
}

func (adapter *Adapter) primaryIndex() int {
	for index, monitor := range adapter.monitors {
		if monitor.IsPrimary {
			return index
		}
	}
	return 0
}

// constrain clamps a position into the bounds of the most suitable monitor:
// the one containing the point, else the current one, else the primary,
// else the first known. With no monitors the point is only kept
// non-negative.
func (adapter *Adapter) constrain(position model.Point) model.Point {
	var target *model.MonitorInfo
	if index, ok := adapter.monitorAt(position); ok {
		target = &adapter.monitors[index]
	} else if adapter.current < len(adapter.monitors) {
		target = &adapter.monitors[adapter.current]
	} else if len(adapter.monitors) > 0 {
		target = &adapter.monitors[adapter.primaryIndex()]
	}

	if target == nil {
		if position.X < 0 {
			position.X = 0
		}
		if position.Y < 0 {
			position.Y = 0
		}
		return position
	}

	bounds := target.Bounds
	maxX := bounds.X + bounds.Width - adapter.widgetSize.Width
	maxY := bounds.Y + bounds.Height - adapter.widgetSize.Height

	position.X = clamp(position.X, bounds.X, maxX)
	position.Y = clamp(position.Y, bounds.Y, maxY)
	return position
}

func clamp(value, low, high int) int {
	if high < low {
		high = low
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
