package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"ghosttimer/internal/core/coordinator"
	"ghosttimer/internal/core/model"
	"ghosttimer/internal/platform"
	"ghosttimer/internal/storage"
	"ghosttimer/internal/ui/overlay"
	"ghosttimer/internal/ui/preferences"
	"ghosttimer/internal/ui/tray"
)

const appName = "GhostTimer"

const monitorPollInterval = 5 * time.Second

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := storage.NewConfigStore("ghosttimer")
	if err != nil {
		log.Printf("config store: %v", err)
		return
	}
	config, warnings, err := store.Load()
	if err != nil {
		log.Printf("load config: %v", err)
	}
	for _, warning := range warnings {
		log.Printf("%s", warning)
	}

	presetsPath := filepath.Join(filepath.Dir(store.Path()), storage.PresetsFileName)
	presets, presetWarnings, err := storage.LoadPresets(presetsPath)
	if err != nil {
		log.Printf("load presets: %v", err)
	}
	for _, warning := range presetWarnings {
		log.Printf("%s", warning)
	}

	sampler, err := platform.NewPixelSampler()
	if err != nil {
		log.Printf("background sampling disabled: %v", err)
		sampler = nil
	}

	coord := coordinator.New(config, sampler, store, coordinator.Options{})

	fyneApp := app.NewWithID("com.ghosttimer.app")

	// The current configuration, for pieces that live outside the
	// coordinator's loop (completion behavior, autostart, topmost).
	var configMu sync.Mutex
	currentConfig := config
	readConfig := func() model.Configuration {
		configMu.Lock()
		defer configMu.Unlock()
		return currentConfig
	}

	var overlayWindow *overlay.Window
	applyConfigSideEffects := func(next model.Configuration) {
		configMu.Lock()
		previous := currentConfig
		currentConfig = next
		configMu.Unlock()

		if overlayWindow != nil {
			overlayWindow.SetTopmost(next.Behavior.AlwaysOnTop)
		}
		if next.Behavior.LaunchAtLogin != previous.Behavior.LaunchAtLogin {
			applyAutostart(next.Behavior.LaunchAtLogin)
		}
	}

	prefsWindow := preferences.New(fyneApp, config, func(updated model.Configuration) {
		coord.UpdateConfig(updated)
		applyConfigSideEffects(updated)
	})

	quit := func() {
		coord.Stop()
		fyneApp.Quit()
	}

	overlayWindow = overlay.New(fyneApp, coord, presets, overlay.Callbacks{
		OnPreferences: prefsWindow.Show,
		OnQuit:        quit,
	})
	overlayWindow.SetTopmost(config.Behavior.AlwaysOnTop)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, presets, tray.Callbacks{
			OnStart: func(duration time.Duration) {
				if err := coord.Start(duration); err != nil {
					log.Printf("start timer: %v", err)
				}
			},
			OnPauseResume:   coord.HotkeyStartStop,
			OnReset:         coord.Reset,
			OnToggleOverlay: coord.HotkeyToggleVisibility,
			OnPreferences:   prefsWindow.Show,
			OnQuit:          quit,
		})
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	hotkeys := platform.NewHotkeyManager(func(action platform.HotkeyAction) {
		switch action {
		case platform.HotkeyToggleVisibility:
			coord.HotkeyToggleVisibility()
		case platform.HotkeyStartStop:
			coord.HotkeyStartStop()
		case platform.HotkeyReset:
			coord.HotkeyReset()
		}
	})
	issues, err := hotkeys.Start([]platform.Binding{
		{Action: platform.HotkeyToggleVisibility, Combo: config.Hotkeys.ToggleVisibility},
		{Action: platform.HotkeyStartStop, Combo: config.Hotkeys.StartStop},
		{Action: platform.HotkeyReset, Combo: config.Hotkeys.Reset},
	})
	if err != nil {
		log.Printf("hotkeys disabled: %v", err)
	}
	for _, issue := range issues {
		log.Printf("hotkey not registered: %s", issue)
	}
	defer hotkeys.Stop()

	watcher, err := storage.NewConfigWatcher(store.Path(), func() {
		reloaded, reloadWarnings, err := store.Load()
		if err != nil {
			log.Printf("reload config: %v", err)
			return
		}
		for _, warning := range reloadWarnings {
			log.Printf("%s", warning)
		}
		coord.UpdateConfig(reloaded)
		applyConfigSideEffects(reloaded)
		fyne.Do(func() {
			prefsWindow.UpdateConfig(reloaded)
		})
	})
	if err != nil {
		log.Printf("config watcher disabled: %v", err)
	} else if err := watcher.Start(); err != nil {
		log.Printf("config watcher disabled: %v", err)
	} else {
		defer watcher.Stop()
	}

	// Subscribe before the loop starts: the first dispatch publishes the
	// initial render state, and a stopped timer never republishes it.
	events := coord.Subscribe(32)
	go func() {
		var lastRender coordinator.RenderState
		for event := range events {
			switch event.Type {
			case coordinator.EventRender:
				lastRender = event.Render
				overlayWindow.Apply(event.Render)
				if trayManager != nil {
					state, text := event.Render.TimerState, event.Render.TimeText
					fyne.Do(func() {
						trayManager.SetStatus(state, text)
					})
				}
			case coordinator.EventFinished:
				notifyCompletion(fyneApp, overlayWindow, readConfig(), lastRender.Alpha)
			case coordinator.EventWarning:
				log.Printf("%s", event.Message)
			}
		}
	}()

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go coord.Run(runCtx)
	go pollMonitors(runCtx, coord)

	fyneApp.Run()
}

// pollMonitors keeps the coordinator's monitor list current. Enumeration is
// cheap and the coordinator ignores no-op updates, so simple polling beats
// platform-specific topology hooks.
func pollMonitors(ctx context.Context, coord *coordinator.Coordinator) {
	push := func() {
		monitors, err := platform.QueryMonitors()
		if err != nil {
			return
		}
		coord.MonitorsChanged(monitors)
	}
	push()

	ticker := time.NewTicker(monitorPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			push()
		}
	}
}

func notifyCompletion(fyneApp fyne.App, overlayWindow *overlay.Window, config model.Configuration, restingAlpha float64) {
	if config.Notifications.VisualFlash {
		overlayWindow.Flash(restingAlpha)
	}
	if config.Notifications.SystemNotification {
		fyneApp.SendNotification(fyne.NewNotification(appName, "Time's up!"))
	}
}

func applyAutostart(enabled bool) {
	service := platform.NewService()
	if !enabled {
		if err := service.DisableAutostart(appName); err != nil {
			log.Printf("disable autostart: %v", err)
		}
		return
	}

	execPath, err := os.Executable()
	if err != nil {
		log.Printf("enable autostart: %v", err)
		return
	}
	if err := service.EnableAutostart(appName, execPath); err != nil {
		log.Printf("enable autostart: %v", err)
	}
}
