// Package overlay renders the floating countdown widget and feeds its
// pointer interactions back into the coordinator.
package overlay

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"ghosttimer/internal/core/coordinator"
	"ghosttimer/internal/core/model"
	"ghosttimer/internal/core/timer"
	"ghosttimer/internal/storage"
	"ghosttimer/internal/ui/animation"
)

// Callbacks defines overlay menu action handlers.
type Callbacks struct {
	OnPreferences func()
	OnQuit        func()
}

// Window manages the overlay UI. All mutations go through Apply, which runs
// on the fyne main thread.
type Window struct {
	app       fyne.App
	window    fyne.Window
	coord     *coordinator.Coordinator
	presets   []storage.Preset
	callbacks Callbacks

	background *canvas.Rectangle
	timeText   *canvas.Text
	controls   *fyne.Container
	startBtn   *widget.Button
	resetBtn   *widget.Button

	flash *animation.Engine

	lastState coordinator.RenderState
	hasState  bool
	shown     bool
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window, undecorated where the driver supports it.
func New(app fyne.App, coord *coordinator.Coordinator, presets []storage.Preset, callbacks Callbacks) *Window {
	window := app.NewWindow("GhostTimer")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	overlay := &Window{
		app:       app,
		window:    window,
		coord:     coord,
		presets:   presets,
		callbacks: callbacks,
	}
	overlay.flash = animation.New(animation.DefaultConfig(), func(alpha float64) {
		fyne.Do(func() {
			overlay.applyNativeOpacity(alphaToByte(alpha))
		})
	})

	overlay.background = canvas.NewRectangle(color.NRGBA{R: 20, G: 20, B: 20, A: 90})

	overlay.timeText = canvas.NewText("00:00", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	overlay.timeText.Alignment = fyne.TextAlignCenter
	overlay.timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	overlay.timeText.TextSize = 34

	overlay.startBtn = widget.NewButton("Start", func() {
		overlay.coord.HotkeyStartStop()
	})
	overlay.resetBtn = widget.NewButton("Reset", func() {
		overlay.coord.Reset()
	})
	overlay.controls = container.NewHBox(overlay.startBtn, overlay.resetBtn)
	overlay.controls.Hide()

	content := container.NewBorder(nil, container.NewCenter(overlay.controls), nil, nil,
		container.NewCenter(overlay.timeText))
	area := newInteractiveArea(overlay, container.NewStack(overlay.background, content))
	window.SetContent(area)

	size := coordinator.DefaultWidgetSize
	window.Resize(fyne.NewSize(float32(size.Width), float32(size.Height)))

	return overlay
}

// Apply renders a new coordinator state. Safe to call from any goroutine.
func (overlay *Window) Apply(state coordinator.RenderState) {
	fyne.Do(func() {
		overlay.applyOnMain(state)
	})
}

// Flash runs the completion flash, returning to the given resting alpha.
func (overlay *Window) Flash(restingAlpha float64) {
	overlay.flash.StartFlash(context.Background(), restingAlpha)
}

// SetTopmost pins or unpins the window above all others.
func (overlay *Window) SetTopmost(topmost bool) {
	fyne.Do(func() {
		overlay.applyNativeTopmost(topmost)
	})
}

// Close hides the overlay and stops its animations.
func (overlay *Window) Close() {
	overlay.flash.Stop()
	fyne.Do(func() {
		overlay.window.Hide()
	})
}

func (overlay *Window) applyOnMain(state coordinator.RenderState) {
	previous := overlay.lastState
	first := !overlay.hasState
	overlay.lastState = state
	overlay.hasState = true

	if first || state.TimeText != previous.TimeText || state.TextColor != previous.TextColor {
		overlay.timeText.Text = state.TimeText
		overlay.timeText.Color = toNRGBA(state.TextColor)
		overlay.timeText.Refresh()
	}

	if first || state.TimerState != previous.TimerState {
		overlay.startBtn.SetText(startButtonLabel(state.TimerState))
	}

	if first || state.ControlsVisible != previous.ControlsVisible {
		if state.ControlsVisible {
			overlay.controls.Show()
		} else {
			overlay.controls.Hide()
		}
	}

	if first || state.Visible != previous.Visible {
		if state.Visible {
			overlay.window.Show()
			overlay.shown = true
			// Native styles reset when the window is recreated.
			overlay.applyNativePosition(state.Position)
			overlay.applyNativeOpacity(alphaToByte(state.Alpha))
		} else {
			overlay.window.Hide()
			overlay.shown = false
		}
	}

	if !overlay.shown {
		return
	}
	if first || state.Position != previous.Position {
		overlay.applyNativePosition(state.Position)
	}
	if first || state.Alpha != previous.Alpha {
		overlay.applyNativeOpacity(alphaToByte(state.Alpha))
	}
}

// showMenu builds and opens the context menu for the current timer state.
func (overlay *Window) showMenu(position fyne.Position) {
	overlay.coord.MenuOpened()

	var items []*fyne.MenuItem
	for _, preset := range overlay.presets {
		duration := preset.Duration
		items = append(items, fyne.NewMenuItem("Start "+preset.Name, func() {
			_ = overlay.coord.Start(duration)
		}))
	}
	items = append(items, fyne.NewMenuItemSeparator())

	switch overlay.lastState.TimerState {
	case timer.StateRunning:
		items = append(items, fyne.NewMenuItem("Pause", overlay.coord.Pause))
	case timer.StatePaused:
		items = append(items, fyne.NewMenuItem("Resume", overlay.coord.Resume))
	}
	items = append(items,
		fyne.NewMenuItem("Reset", overlay.coord.Reset),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Hide", overlay.coord.HotkeyToggleVisibility),
		fyne.NewMenuItem("Preferences", func() {
			if overlay.callbacks.OnPreferences != nil {
				overlay.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if overlay.callbacks.OnQuit != nil {
				overlay.callbacks.OnQuit()
			}
		}),
	)

	menu := fyne.NewMenu("", items...)
	popup := widget.NewPopUpMenu(menu, overlay.window.Canvas())
	popup.OnDismiss = func() {
		popup.Hide()
		overlay.coord.MenuClosed()
	}
	popup.ShowAtPosition(position)
}

// screenPoint converts a window-local event position to logical screen
// coordinates using the widget's known position.
func (overlay *Window) screenPoint(local fyne.Position) model.Point {
	return model.Point{
		X: overlay.lastState.Position.X + int(local.X),
		Y: overlay.lastState.Position.Y + int(local.Y),
	}
}

func startButtonLabel(state timer.State) string {
	switch state {
	case timer.StateRunning:
		return "Pause"
	case timer.StatePaused:
		return "Resume"
	default:
		return "Start"
	}
}

func toNRGBA(value model.Color) color.NRGBA {
	return color.NRGBA{R: value.R, G: value.G, B: value.B, A: value.A}
}

func alphaToByte(alpha float64) uint8 {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return uint8(alpha*254 + 1)
}
