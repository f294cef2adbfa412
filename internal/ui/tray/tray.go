// Package tray manages the system tray menu.
package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"ghosttimer/internal/core/timer"
	"ghosttimer/internal/storage"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart         func(time.Duration)
	OnPauseResume   func()
	OnReset         func()
	OnToggleOverlay func()
	OnPreferences   func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	presets     []storage.Preset
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	timerState  timer.State
	statusLabel string
}

// New creates a tray manager offering the given duration presets.
func New(app desktop.App, presets []storage.Preset, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		presets:    presets,
		callbacks:  callbacks,
		timerState: timer.StateStopped,
	}

	manager.statusItem = fyne.NewMenuItem("Stopped", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnPauseResume != nil {
			manager.callbacks.OnPauseResume()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line, normally the formatted remaining time.
func (manager *Manager) SetStatus(state timer.State, status string) {
	changedState := manager.timerState != state
	manager.timerState = state
	manager.statusLabel = status
	manager.statusItem.Label = statusLine(state, status)

	switch state {
	case timer.StatePaused:
		manager.pauseItem.Label = "Resume"
	default:
		manager.pauseItem.Label = "Pause"
	}
	manager.pauseItem.Disabled = state != timer.StateRunning && state != timer.StatePaused

	// Rebuilding the whole menu is how fyne propagates label changes.
	if changedState {
		manager.refreshMenu()
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}

	startMenu := fyne.NewMenuItem("Start timer", nil)
	var startItems []*fyne.MenuItem
	for _, preset := range manager.presets {
		duration := preset.Duration
		startItems = append(startItems, fyne.NewMenuItem(preset.Name, func() {
			if manager.callbacks.OnStart != nil {
				manager.callbacks.OnStart(duration)
			}
		}))
	}
	startMenu.ChildMenu = fyne.NewMenu("", startItems...)

	manager.app.SetSystemTrayMenu(fyne.NewMenu("GhostTimer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		startMenu,
		manager.pauseItem,
		fyne.NewMenuItem("Reset", func() {
			if manager.callbacks.OnReset != nil {
				manager.callbacks.OnReset()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show/hide overlay", func() {
			if manager.callbacks.OnToggleOverlay != nil {
				manager.callbacks.OnToggleOverlay()
			}
		}),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}

func statusLine(state timer.State, status string) string {
	switch state {
	case timer.StateRunning:
		return fmt.Sprintf("Running: %s", status)
	case timer.StatePaused:
		return fmt.Sprintf("Paused: %s", status)
	case timer.StateFinished:
		return "Finished"
	default:
		return "Stopped"
	}
}
