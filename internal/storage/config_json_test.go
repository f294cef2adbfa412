package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghosttimer/internal/core/model"
)

func tempConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	return NewConfigStoreAt(filepath.Join(t.TempDir(), "config.json"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := tempConfigStore(t)

	config, warnings, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, model.DefaultConfiguration(), config)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := tempConfigStore(t)

	config := model.DefaultConfiguration()
	config.Display.Transparency = 0.5
	config.Display.Position = model.Point{X: 640, Y: 480}
	config.Display.TextColor = model.ManualText(model.Color{R: 10, G: 200, B: 30, A: 255})
	config.Behavior.MinimizeToTray = true
	config.Hotkeys.Reset = "Ctrl+Shift+R"
	require.NoError(t, store.Save(config))

	reloaded := NewConfigStoreAt(store.Path())
	loaded, warnings, err := reloaded.Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, config, loaded)
}

func TestLoadPartialFileKeepsDefaultsForAbsentFields(t *testing.T) {
	store := tempConfigStore(t)
	partial := `{"display": {"transparency": 0.6}, "hotkeys": {"reset": "Ctrl+Shift+R"}}`
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(partial), 0o644))

	config, warnings, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	defaults := model.DefaultConfiguration()
	assert.Equal(t, 0.6, config.Display.Transparency)
	assert.Equal(t, "Ctrl+Shift+R", config.Hotkeys.Reset)
	// Absent fields, including inside partially given sections, stay at
	// their defaults.
	assert.Equal(t, defaults.Display.HoverTransparency, config.Display.HoverTransparency)
	assert.Equal(t, defaults.Display.Position, config.Display.Position)
	assert.Equal(t, defaults.Hotkeys.StartStop, config.Hotkeys.StartStop)
	assert.Equal(t, defaults.Behavior, config.Behavior)
}

func TestUnknownFieldsSurviveRoundTrip(t *testing.T) {
	store := tempConfigStore(t)
	document := `{
  "version": "1.0",
  "display": {"transparency": 0.4, "future_blur_radius": 12},
  "experimental": {"shader": "crt"}
}`
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(document), 0o644))

	config, _, err := store.Load()
	require.NoError(t, err)

	config.Display.Transparency = 0.7
	require.NoError(t, store.Save(config))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var saved map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Contains(t, saved, "experimental")

	var display map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(saved["display"], &display))
	assert.Contains(t, display, "future_blur_radius")
	assert.JSONEq(t, "0.7", string(display["transparency"]))
}

func TestCorruptFileIsBackedUpAndDefaultsReturned(t *testing.T) {
	store := tempConfigStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	config, warnings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfiguration(), config)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "using defaults")

	// The broken file was moved aside, not deleted.
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
	backups, err := filepath.Glob(store.Path() + ".corrupted.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestInvalidValuesDegradeToDefaultsWithWarnings(t *testing.T) {
	store := tempConfigStore(t)
	document := `{"display": {"transparency": 7.5}, "hotkeys": {"start_stop": "+Ctrl+"}}`
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(document), 0o644))

	config, warnings, err := store.Load()
	require.NoError(t, err)

	defaults := model.DefaultConfiguration()
	assert.Equal(t, defaults.Display.Transparency, config.Display.Transparency)
	assert.Equal(t, "", config.Hotkeys.StartStop)
	assert.Len(t, warnings, 2)
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")
	store := NewConfigStoreAt(path)

	require.NoError(t, store.Save(model.DefaultConfiguration()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestAutoTextColorStoredAsNull(t *testing.T) {
	store := tempConfigStore(t)
	require.NoError(t, store.Save(model.DefaultConfiguration()))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var saved map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &saved))
	var display map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(saved["display"], &display))
	assert.JSONEq(t, "null", string(display["text_color"]))
}
