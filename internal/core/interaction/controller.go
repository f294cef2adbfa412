// Package interaction tracks hover, drag, menu and visibility state and
// computes the effective transparency and position of the overlay widget.
package interaction

import (
	"time"

	"ghosttimer/internal/core/model"
)

// Controller owns the transient UI interaction state. It is rebuilt from raw
// input events and mutated only from the coordinator's dispatch loop.
type Controller struct {
	visible  bool
	hovered  bool
	dragging bool
	menuOpen bool

	position   model.Point
	widgetSize model.Size
	dragOffset model.Point

	// Hover-exit debounce. Zero means the revert is instantaneous; an open
	// menu or active drag defers it regardless.
	exitDebounce time.Duration
	exitPending  bool
	exitDeadline time.Time
}

// New creates a visible, idle controller at the given position.
func New(position model.Point, widgetSize model.Size) *Controller {
	return &Controller{
		visible:    true,
		position:   position,
		widgetSize: widgetSize,
	}
}

// SetExitDebounce sets the hover-exit debounce duration.
func (controller *Controller) SetExitDebounce(debounce time.Duration) {
	controller.exitDebounce = debounce
}

// OnHoverEnter switches to the hover transparency target. A repeated enter
// is a no-op.
func (controller *Controller) OnHoverEnter() bool {
	controller.exitPending = false
	if controller.hovered {
		return false
	}
	controller.hovered = true
	return true
}

// OnHoverExit reverts to the base transparency, after the configured
// debounce. While a menu is open or a drag is in progress the revert is
// deferred until those end.
func (controller *Controller) OnHoverExit(now time.Time) bool {
	if !controller.hovered {
		return false
	}
	if controller.menuOpen || controller.dragging {
		controller.exitPending = true
		return false
	}
	if controller.exitDebounce > 0 {
		controller.exitPending = true
		controller.exitDeadline = now.Add(controller.exitDebounce)
		return false
	}
	controller.hovered = false
	return true
}

// Tick applies a debounced hover exit once its deadline has passed.
func (controller *Controller) Tick(now time.Time) bool {
	if !controller.exitPending || controller.menuOpen || controller.dragging {
		return false
	}
	if controller.exitDebounce > 0 && now.Before(controller.exitDeadline) {
		return false
	}
	controller.exitPending = false
	if !controller.hovered {
		return false
	}
	controller.hovered = false
	return true
}

// OnPress starts a drag if the pointer is within the widget bounds,
// capturing the offset between the pointer and the widget origin.
func (controller *Controller) OnPress(pointer model.Point) bool {
	bounds := model.RectAt(controller.position, controller.widgetSize)
	if !bounds.Contains(pointer) {
		return false
	}
	controller.dragging = true
	controller.dragOffset = pointer.Sub(controller.position)
	return true
}

// OnMove recomputes the widget position while dragging. It reports whether
// the position actually moved.
func (controller *Controller) OnMove(pointer model.Point) bool {
	if !controller.dragging {
		return false
	}
	next := pointer.Sub(controller.dragOffset)
	if next == controller.position {
		return false
	}
	controller.position = next
	return true
}

// OnRelease ends the drag. It reports whether a drag was in progress, which
// is the caller's cue to persist the final position.
func (controller *Controller) OnRelease(now time.Time) bool {
	if !controller.dragging {
		return false
	}
	controller.dragging = false
	controller.dragOffset = model.Point{}

	if controller.exitPending {
		controller.applyDeferredExit(now)
	}
	return true
}

// OpenMenu pins the widget fully opaque while the context menu is shown.
func (controller *Controller) OpenMenu() bool {
	if controller.menuOpen {
		return false
	}
	controller.menuOpen = true
	return true
}

// CloseMenu releases the opacity pin and applies any deferred hover exit.
func (controller *Controller) CloseMenu(now time.Time) bool {
	if !controller.menuOpen {
		return false
	}
	controller.menuOpen = false
	if controller.exitPending {
		controller.applyDeferredExit(now)
	}
	return true
}

// ToggleVisibility flips widget visibility. A hidden timer keeps counting;
// this never touches timer state.
func (controller *Controller) ToggleVisibility() bool {
	controller.visible = !controller.visible
	return true
}

// SetPosition syncs the position after an external correction such as a
// DPI-change clamp.
func (controller *Controller) SetPosition(position model.Point) bool {
	if position == controller.position {
		return false
	}
	controller.position = position
	return true
}

// EffectiveAlpha computes the current transparency target: fully opaque
// while the menu is open, the hover value while hovered or dragging, the
// base value otherwise.
func (controller *Controller) EffectiveAlpha(display model.DisplayConfig) float64 {
	if controller.menuOpen {
		return 1.0
	}
	if controller.hovered || controller.dragging {
		return display.HoverTransparency
	}
	return display.Transparency
}

// ControlsVisible reports whether the start/pause controls should show.
func (controller *Controller) ControlsVisible(display model.DisplayConfig) bool {
	if !display.ShowControls {
		return false
	}
	return controller.hovered || controller.dragging || controller.menuOpen
}

// Visible reports widget visibility.
func (controller *Controller) Visible() bool { return controller.visible }

// Hovered reports whether the pointer is over the widget.
func (controller *Controller) Hovered() bool { return controller.hovered }

// Dragging reports whether a drag is in progress.
func (controller *Controller) Dragging() bool { return controller.dragging }

// MenuOpen reports whether the context menu is open.
func (controller *Controller) MenuOpen() bool { return controller.menuOpen }

// Position returns the widget's logical position.
func (controller *Controller) Position() model.Point { return controller.position }

func (controller *Controller) applyDeferredExit(now time.Time) {
	if controller.exitDebounce > 0 {
		controller.exitDeadline = now.Add(controller.exitDebounce)
		return
	}
	controller.exitPending = false
	controller.hovered = false
}
