// Package preferences implements the settings window.
package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"ghosttimer/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window fyne.Window
	config model.Configuration
	onSave func(model.Configuration)

	transparency  *widget.Slider
	hover         *widget.Slider
	positionX     *widget.Entry
	positionY     *widget.Entry
	autoColor     *widget.Check
	manualColor   *widget.Entry
	showControls  *widget.Check
	alwaysOnTop   *widget.Check
	rememberPos   *widget.Check
	autoDetect    *widget.Check
	minimizeTray  *widget.Check
	launchAtLogin *widget.Check
	hotkeyToggle  *widget.Entry
	hotkeyStart   *widget.Entry
	hotkeyReset   *widget.Entry
	soundEnabled  *widget.Check
	visualFlash   *widget.Check
	systemNotify  *widget.Check
	soundFile     *widget.Entry
}

// New creates a preferences window. onSave receives the edited
// configuration; validation and persistence happen downstream.
func New(app fyne.App, config model.Configuration, onSave func(model.Configuration)) *Window {
	window := app.NewWindow("GhostTimer Preferences")

	prefs := &Window{
		window: window,
		config: config,
		onSave: onSave,
	}

	prefs.transparency = widget.NewSlider(0, 1)
	prefs.transparency.Step = 0.05
	prefs.hover = widget.NewSlider(0, 1)
	prefs.hover.Step = 0.05

	prefs.positionX = widget.NewEntry()
	prefs.positionY = widget.NewEntry()

	prefs.manualColor = widget.NewEntry()
	prefs.manualColor.SetPlaceHolder("#RRGGBB")
	prefs.autoColor = widget.NewCheck("Pick text color from background", func(checked bool) {
		if checked {
			prefs.manualColor.Disable()
		} else {
			prefs.manualColor.Enable()
		}
	})

	prefs.showControls = widget.NewCheck("Show start/reset controls on hover", nil)
	prefs.alwaysOnTop = widget.NewCheck("Always on top", nil)
	prefs.rememberPos = widget.NewCheck("Remember position", nil)
	prefs.autoDetect = widget.NewCheck("Detect background brightness", nil)
	prefs.minimizeTray = widget.NewCheck("Minimize to tray on close", nil)
	prefs.launchAtLogin = widget.NewCheck("Launch at login", nil)

	prefs.hotkeyToggle = widget.NewEntry()
	prefs.hotkeyStart = widget.NewEntry()
	prefs.hotkeyReset = widget.NewEntry()

	prefs.soundEnabled = widget.NewCheck("Play sound", nil)
	prefs.visualFlash = widget.NewCheck("Flash the widget", nil)
	prefs.systemNotify = widget.NewCheck("System notification", nil)
	prefs.soundFile = widget.NewEntry()
	prefs.soundFile.SetPlaceHolder("default chime")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Idle transparency"),
		prefs.transparency,
		widget.NewLabel("Hover transparency"),
		prefs.hover,
		container.NewHBox(widget.NewLabel("Position"), prefs.positionX, widget.NewLabel("x"), prefs.positionY),
		prefs.autoColor,
		container.NewHBox(widget.NewLabel("Text color"), prefs.manualColor),
		prefs.showControls,

		widget.NewLabelWithStyle("Behavior", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.alwaysOnTop,
		prefs.rememberPos,
		prefs.autoDetect,
		prefs.minimizeTray,
		prefs.launchAtLogin,

		widget.NewLabelWithStyle("Hotkeys", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Show/hide"), prefs.hotkeyToggle),
		container.NewHBox(widget.NewLabel("Start/pause"), prefs.hotkeyStart),
		container.NewHBox(widget.NewLabel("Reset"), prefs.hotkeyReset),

		widget.NewLabelWithStyle("On completion", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.soundEnabled,
		prefs.visualFlash,
		prefs.systemNotify,
		container.NewHBox(widget.NewLabel("Sound file"), prefs.soundFile),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(440, 560))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateConfig(config)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces the window values, e.g. after an external reload.
func (prefs *Window) UpdateConfig(config model.Configuration) {
	prefs.config = config

	prefs.transparency.Value = config.Display.Transparency
	prefs.transparency.Refresh()
	prefs.hover.Value = config.Display.HoverTransparency
	prefs.hover.Refresh()
	prefs.positionX.SetText(strconv.Itoa(config.Display.Position.X))
	prefs.positionY.SetText(strconv.Itoa(config.Display.Position.Y))

	auto := config.Display.TextColor.IsAuto()
	prefs.autoColor.SetChecked(auto)
	if manual := config.Display.TextColor.Manual; manual != nil {
		prefs.manualColor.SetText(formatHexColor(*manual))
	} else {
		prefs.manualColor.SetText("")
	}
	if auto {
		prefs.manualColor.Disable()
	} else {
		prefs.manualColor.Enable()
	}

	prefs.showControls.SetChecked(config.Display.ShowControls)
	prefs.alwaysOnTop.SetChecked(config.Behavior.AlwaysOnTop)
	prefs.rememberPos.SetChecked(config.Behavior.RememberPosition)
	prefs.autoDetect.SetChecked(config.Behavior.AutoDetectBackground)
	prefs.minimizeTray.SetChecked(config.Behavior.MinimizeToTray)
	prefs.launchAtLogin.SetChecked(config.Behavior.LaunchAtLogin)

	prefs.hotkeyToggle.SetText(config.Hotkeys.ToggleVisibility)
	prefs.hotkeyStart.SetText(config.Hotkeys.StartStop)
	prefs.hotkeyReset.SetText(config.Hotkeys.Reset)

	prefs.soundEnabled.SetChecked(config.Notifications.SoundEnabled)
	prefs.visualFlash.SetChecked(config.Notifications.VisualFlash)
	prefs.systemNotify.SetChecked(config.Notifications.SystemNotification)
	prefs.soundFile.SetText(config.Notifications.SoundFile)
}

func (prefs *Window) handleSave() {
	config := prefs.config

	config.Display.Transparency = prefs.transparency.Value
	config.Display.HoverTransparency = prefs.hover.Value
	if x, ok := parseInt(prefs.positionX.Text); ok {
		config.Display.Position.X = x
	}
	if y, ok := parseInt(prefs.positionY.Text); ok {
		config.Display.Position.Y = y
	}

	if prefs.autoColor.Checked {
		config.Display.TextColor = model.AutoText
	} else if parsed, ok := parseHexColor(prefs.manualColor.Text); ok {
		config.Display.TextColor = model.ManualText(parsed)
	}

	config.Display.ShowControls = prefs.showControls.Checked
	config.Behavior.AlwaysOnTop = prefs.alwaysOnTop.Checked
	config.Behavior.RememberPosition = prefs.rememberPos.Checked
	config.Behavior.AutoDetectBackground = prefs.autoDetect.Checked
	config.Behavior.MinimizeToTray = prefs.minimizeTray.Checked
	config.Behavior.LaunchAtLogin = prefs.launchAtLogin.Checked

	config.Hotkeys.ToggleVisibility = strings.TrimSpace(prefs.hotkeyToggle.Text)
	config.Hotkeys.StartStop = strings.TrimSpace(prefs.hotkeyStart.Text)
	config.Hotkeys.Reset = strings.TrimSpace(prefs.hotkeyReset.Text)

	config.Notifications.SoundEnabled = prefs.soundEnabled.Checked
	config.Notifications.VisualFlash = prefs.visualFlash.Checked
	config.Notifications.SystemNotification = prefs.systemNotify.Checked
	config.Notifications.SoundFile = strings.TrimSpace(prefs.soundFile.Text)

	prefs.config = config
	if prefs.onSave != nil {
		prefs.onSave(config)
	}
	prefs.window.Hide()
}

func parseInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func formatHexColor(value model.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", value.R, value.G, value.B)
}

func parseHexColor(value string) (model.Color, bool) {
	text := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(text) != 6 {
		return model.Color{}, false
	}
	parsed, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return model.Color{}, false
	}
	return model.Color{
		R: uint8(parsed >> 16),
		G: uint8(parsed >> 8),
		B: uint8(parsed),
		A: 255,
	}, true
}
