package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ConfigVersion is the version string written to new configuration files.
const ConfigVersion = "1.0"

// Configuration holds all user preferences.
type Configuration struct {
	Version       string             `json:"version"`
	Display       DisplayConfig      `json:"display"`
	Behavior      BehaviorConfig     `json:"behavior"`
	Hotkeys       HotkeyConfig       `json:"hotkeys"`
	Notifications NotificationConfig `json:"notifications"`
}

// DisplayConfig controls how the overlay is drawn.
type DisplayConfig struct {
	Transparency      float64   `json:"transparency"`
	HoverTransparency float64   `json:"hover_transparency"`
	Position          Point     `json:"position"`
	TextColor         TextColor `json:"text_color"`
	ShowControls      bool      `json:"show_controls"`
}

// BehaviorConfig controls window behavior.
type BehaviorConfig struct {
	AlwaysOnTop          bool `json:"always_on_top"`
	RememberPosition     bool `json:"remember_position"`
	AutoDetectBackground bool `json:"auto_detect_background"`
	MinimizeToTray       bool `json:"minimize_to_tray"`
	LaunchAtLogin        bool `json:"launch_at_login"`
}

// HotkeyConfig holds global hotkey combos. An empty string disables the
// binding.
type HotkeyConfig struct {
	ToggleVisibility string `json:"toggle_visibility"`
	StartStop        string `json:"start_stop"`
	Reset            string `json:"reset"`
}

// NotificationConfig controls completion notifications.
type NotificationConfig struct {
	SoundEnabled       bool   `json:"sound_enabled"`
	VisualFlash        bool   `json:"visual_flash"`
	SystemNotification bool   `json:"system_notification"`
	SoundFile          string `json:"sound_file"`
}

// DefaultConfiguration returns the documented defaults.
func DefaultConfiguration() Configuration {
	return Configuration{
		Version: ConfigVersion,
		Display: DisplayConfig{
			Transparency:      0.3,
			HoverTransparency: 0.8,
			Position:          Point{X: 100, Y: 100},
			TextColor:         AutoText,
			ShowControls:      true,
		},
		Behavior: BehaviorConfig{
			AlwaysOnTop:          true,
			RememberPosition:     true,
			AutoDetectBackground: true,
			MinimizeToTray:       false,
			LaunchAtLogin:        false,
		},
		Hotkeys: HotkeyConfig{
			ToggleVisibility: "Ctrl+Alt+T",
			StartStop:        "Ctrl+Alt+S",
			Reset:            "Ctrl+Alt+R",
		},
		Notifications: NotificationConfig{
			SoundEnabled:       true,
			VisualFlash:        true,
			SystemNotification: true,
			SoundFile:          "",
		},
	}
}

// FieldIssue names a configuration field that failed validation.
type FieldIssue struct {
	Field  string
	Reason string
}

func (issue FieldIssue) String() string {
	return fmt.Sprintf("%s: %s", issue.Field, issue.Reason)
}

// Validate checks all configuration values and returns one issue per
// offending field. An empty result means the configuration is valid.
func (config Configuration) Validate() []FieldIssue {
	var issues []FieldIssue

	if config.Display.Transparency < 0 || config.Display.Transparency > 1 {
		issues = append(issues, FieldIssue{
			Field:  "display.transparency",
			Reason: fmt.Sprintf("%v outside [0, 1]", config.Display.Transparency),
		})
	}
	if config.Display.HoverTransparency < 0 || config.Display.HoverTransparency > 1 {
		issues = append(issues, FieldIssue{
			Field:  "display.hover_transparency",
			Reason: fmt.Sprintf("%v outside [0, 1]", config.Display.HoverTransparency),
		})
	} else if config.Display.HoverTransparency < config.Display.Transparency &&
		config.Display.Transparency >= 0 && config.Display.Transparency <= 1 {
		issues = append(issues, FieldIssue{
			Field:  "display.hover_transparency",
			Reason: "lower than display.transparency",
		})
	}

	position := config.Display.Position
	if position.X < -5000 || position.X > 10000 || position.Y < -5000 || position.Y > 10000 {
		issues = append(issues, FieldIssue{
			Field:  "display.position",
			Reason: fmt.Sprintf("(%d, %d) outside plausible screen bounds", position.X, position.Y),
		})
	}

	hotkeyFields := []struct {
		field string
		combo string
	}{
		{"hotkeys.toggle_visibility", config.Hotkeys.ToggleVisibility},
		{"hotkeys.start_stop", config.Hotkeys.StartStop},
		{"hotkeys.reset", config.Hotkeys.Reset},
	}
	for _, entry := range hotkeyFields {
		if entry.combo != "" && !validHotkeyCombo(entry.combo) {
			issues = append(issues, FieldIssue{
				Field:  entry.field,
				Reason: fmt.Sprintf("malformed combo %q", entry.combo),
			})
		}
	}

	return issues
}

// Normalize replaces every invalid field with its documented default and
// returns the issues that were fixed. Loading and saving never fail on bad
// values; they degrade to defaults field by field.
func (config *Configuration) Normalize() []FieldIssue {
	issues := config.Validate()
	if len(issues) == 0 {
		return nil
	}

	defaults := DefaultConfiguration()
	for _, issue := range issues {
		switch issue.Field {
		case "display.transparency":
			config.Display.Transparency = defaults.Display.Transparency
		case "display.hover_transparency":
			config.Display.HoverTransparency = defaults.Display.HoverTransparency
		case "display.position":
			config.Display.Position = defaults.Display.Position
		case "hotkeys.toggle_visibility":
			config.Hotkeys.ToggleVisibility = ""
		case "hotkeys.start_stop":
			config.Hotkeys.StartStop = ""
		case "hotkeys.reset":
			config.Hotkeys.Reset = ""
		}
	}
	return issues
}

func validHotkeyCombo(combo string) bool {
	return combo != "" &&
		!strings.Contains(combo, "++") &&
		!strings.HasPrefix(combo, "+") &&
		!strings.HasSuffix(combo, "+")
}

// MarshalJSON writes the manual color directly, or null for auto detection,
// so the stored form stays a plain color-or-null.
func (choice TextColor) MarshalJSON() ([]byte, error) {
	if choice.Manual == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*choice.Manual)
}

// UnmarshalJSON accepts a color object or null.
func (choice *TextColor) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		choice.Manual = nil
		return nil
	}
	var color Color
	if err := json.Unmarshal(data, &color); err != nil {
		return err
	}
	choice.Manual = &color
	return nil
}
