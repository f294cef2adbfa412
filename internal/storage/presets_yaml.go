package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"ghosttimer/internal/core/timer"
)

// PresetsFileName is the presets file under the app's config directory.
const PresetsFileName = "presets.yaml"

// Preset is a named countdown duration offered in the tray and context
// menus.
type Preset struct {
	Name     string
	Duration time.Duration
}

// presetsFile is the on-disk shape. Durations use Go syntax ("25m", "1h30m").
type presetsFile struct {
	Presets []presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Name     string `yaml:"name"`
	Duration string `yaml:"duration"`
}

// DefaultPresets returns the built-in durations used when no presets file
// exists.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "5 minutes", Duration: 5 * time.Minute},
		{Name: "15 minutes", Duration: 15 * time.Minute},
		{Name: "25 minutes", Duration: 25 * time.Minute},
		{Name: "30 minutes", Duration: 30 * time.Minute},
		{Name: "1 hour", Duration: time.Hour},
	}
}

// LoadPresets reads the presets file. A missing file yields the defaults.
// Entries with an unparsable or out-of-range duration are skipped; the
// returned warnings name each one.
func LoadPresets(path string) ([]Preset, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultPresets(), nil, nil
		}
		return DefaultPresets(), nil, fmt.Errorf("read presets file: %w", err)
	}

	var file presetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return DefaultPresets(), nil, fmt.Errorf("parse presets yaml: %w", err)
	}

	var presets []Preset
	var warnings []string
	for _, entry := range file.Presets {
		duration, err := time.ParseDuration(entry.Duration)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("preset %q skipped: bad duration %q", entry.Name, entry.Duration))
			continue
		}
		if duration <= 0 || duration > timer.MaxDuration {
			warnings = append(warnings, fmt.Sprintf("preset %q skipped: duration %v out of range", entry.Name, duration))
			continue
		}
		name := entry.Name
		if name == "" {
			name = timer.FormatDuration(duration)
		}
		presets = append(presets, Preset{Name: name, Duration: duration})
	}

	if len(presets) == 0 {
		return DefaultPresets(), warnings, nil
	}
	return presets, warnings, nil
}

// SavePresets writes the presets file, creating the directory if needed.
func SavePresets(path string, presets []Preset) error {
	file := presetsFile{}
	for _, preset := range presets {
		file.Presets = append(file.Presets, presetEntry{
			Name:     preset.Name,
			Duration: preset.Duration.String(),
		})
	}

	serialized, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal presets yaml: %w", err)
	}
	return writeFileInDir(path, serialized)
}

func writeFileInDir(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
