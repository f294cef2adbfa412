package overlay

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// interactiveArea is the overlay's root widget. It forwards hover, press
// and drag events to the coordinator as logical screen coordinates.
type interactiveArea struct {
	widget.BaseWidget
	overlay *Window
	content fyne.CanvasObject
	pressed bool
}

var _ desktop.Hoverable = (*interactiveArea)(nil)
var _ desktop.Mouseable = (*interactiveArea)(nil)

func newInteractiveArea(overlay *Window, content fyne.CanvasObject) *interactiveArea {
	area := &interactiveArea{overlay: overlay, content: content}
	area.ExtendBaseWidget(area)
	return area
}

func (area *interactiveArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(area.content)
}

func (area *interactiveArea) MouseIn(event *desktop.MouseEvent) {
	area.overlay.coord.PointerEntered()
}

func (area *interactiveArea) MouseMoved(event *desktop.MouseEvent) {
	if !area.pressed {
		return
	}
	area.overlay.coord.PointerMoved(area.overlay.screenPoint(event.Position))
}

func (area *interactiveArea) MouseOut() {
	area.overlay.coord.PointerExited()
}

func (area *interactiveArea) MouseDown(event *desktop.MouseEvent) {
	switch event.Button {
	case desktop.MouseButtonPrimary:
		area.pressed = true
		area.overlay.coord.PointerPressed(area.overlay.screenPoint(event.Position))
	case desktop.MouseButtonSecondary:
		area.overlay.showMenu(event.Position)
	}
}

func (area *interactiveArea) MouseUp(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary {
		return
	}
	area.pressed = false
	area.overlay.coord.PointerReleased()
}
