package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPresetsMissingFileReturnsDefaults(t *testing.T) {
	presets, warnings, err := LoadPresets(filepath.Join(t.TempDir(), "presets.yaml"))

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultPresets(), presets)
}

func TestLoadPresetsParsesDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	document := `presets:
  - name: Pomodoro
    duration: 25m
  - name: Deep work
    duration: 1h30m
  - duration: 45s
`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))

	presets, warnings, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, presets, 3)
	assert.Equal(t, Preset{Name: "Pomodoro", Duration: 25 * time.Minute}, presets[0])
	assert.Equal(t, Preset{Name: "Deep work", Duration: 90 * time.Minute}, presets[1])
	// A nameless entry gets a formatted duration label.
	assert.Equal(t, Preset{Name: "00:45", Duration: 45 * time.Second}, presets[2])
}

func TestLoadPresetsSkipsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	document := `presets:
  - name: Broken
    duration: banana
  - name: Too long
    duration: 25h
  - name: Valid
    duration: 10m
`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))

	presets, warnings, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
	require.Len(t, presets, 1)
	assert.Equal(t, "Valid", presets[0].Name)
}

func TestLoadPresetsAllInvalidFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - duration: nope\n"), 0o644))

	presets, warnings, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Equal(t, DefaultPresets(), presets)
}

func TestSavePresetsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "presets.yaml")
	presets := []Preset{
		{Name: "Standup", Duration: 15 * time.Minute},
		{Name: "Focus", Duration: 52 * time.Minute},
	}

	require.NoError(t, SavePresets(path, presets))

	loaded, warnings, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, presets, loaded)
}
