// Package storage persists the configuration and duration presets and
// watches the config file for external edits.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ghosttimer/internal/core/model"
)

const configFileName = "config.json"

// ConfigStore reads and writes the JSON configuration file. Fields the
// application does not know about survive a load/save round trip, so a
// newer version's settings are not destroyed by an older binary.
type ConfigStore struct {
	mu   sync.Mutex
	path string

	// Raw top-level document from the last load, merged under the known
	// fields on every save.
	raw map[string]json.RawMessage
}

// NewConfigStore places the configuration under the user config directory.
func NewConfigStore(appName string) (*ConfigStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return NewConfigStoreAt(filepath.Join(configDir, appName, configFileName)), nil
}

// NewConfigStoreAt uses an explicit file path.
func NewConfigStoreAt(path string) *ConfigStore {
	return &ConfigStore{path: path}
}

// Path returns the config file path.
func (store *ConfigStore) Path() string {
	return store.path
}

// Load reads the configuration. A missing file yields the defaults. A file
// that is not valid JSON is moved aside to a timestamped backup and the
// defaults are returned; invalid field values degrade to their defaults one
// by one. The returned warnings describe everything that was fixed up.
func (store *ConfigStore) Load() (model.Configuration, []string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	config := model.DefaultConfiguration()
	store.raw = nil

	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil, nil
		}
		return config, nil, fmt.Errorf("read config file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		warning, backupErr := store.backupCorrupt(err)
		if backupErr != nil {
			return config, []string{warning}, backupErr
		}
		return config, []string{warning}, nil
	}

	// Defaults first: absent fields keep their default values, including
	// inside nested sections.
	if err := json.Unmarshal(data, &config); err != nil {
		warning, backupErr := store.backupCorrupt(err)
		if backupErr != nil {
			return model.DefaultConfiguration(), []string{warning}, backupErr
		}
		return model.DefaultConfiguration(), []string{warning}, nil
	}
	store.raw = raw

	var warnings []string
	for _, issue := range config.Normalize() {
		warnings = append(warnings, "config field reset to default: "+issue.String())
	}
	return config, warnings, nil
}

// Save writes the configuration atomically, preserving any unknown fields
// captured by the last Load.
func (store *ConfigStore) Save(config model.Configuration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	known, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	merged := known
	if store.raw != nil {
		previous, err := json.Marshal(store.raw)
		if err == nil {
			merged = mergeObjects(previous, known)
		}
	}

	var document map[string]json.RawMessage
	if err := json.Unmarshal(merged, &document); err != nil {
		return fmt.Errorf("merge config document: %w", err)
	}
	store.raw = document

	serialized, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	serialized = append(serialized, '\n')

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a torn file.
	tmpPath := store.path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.Rename(tmpPath, store.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace config file: %w", err)
	}
	return nil
}

// backupCorrupt moves the unreadable file aside so the next save starts
// clean, and reports what happened.
func (store *ConfigStore) backupCorrupt(cause error) (string, error) {
	backupPath := store.path + ".corrupted." + time.Now().Format("20060102-150405")
	if err := os.Rename(store.path, backupPath); err != nil {
		return "", fmt.Errorf("backup corrupted config: %w", err)
	}
	return fmt.Sprintf("config file unreadable (%v), moved to %s, using defaults",
		cause, filepath.Base(backupPath)), nil
}

// mergeObjects overlays the updated JSON object onto the previous one. Keys
// present only in the previous document are kept; keys present in both are
// merged recursively when both sides are objects, otherwise the update
// wins.
func mergeObjects(previous, updated json.RawMessage) json.RawMessage {
	var previousMap, updatedMap map[string]json.RawMessage
	if json.Unmarshal(previous, &previousMap) != nil ||
		json.Unmarshal(updated, &updatedMap) != nil ||
		previousMap == nil || updatedMap == nil {
		return updated
	}

	for key, value := range updatedMap {
		if existing, ok := previousMap[key]; ok {
			previousMap[key] = mergeObjects(existing, value)
		} else {
			previousMap[key] = value
		}
	}

	merged, err := json.Marshal(previousMap)
	if err != nil {
		return updated
	}
	return merged
}
