package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/LoadCalc/internal/model"
)

// DefaultPresetsPath returns the default file path for custom container
// presets. This is located at ~/.loadcalc/presets.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the custom presets to a JSON file.
func SavePresets(path string, store model.PresetStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create presets directory: %w", err)
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads custom presets from a JSON file.
// If the file does not exist, returns an empty store. Presets with invalid
// dimensions are rejected.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, fmt.Errorf("failed to read presets: %w", err)
	}

	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to parse presets: %w", err)
	}
	if store.Presets == nil {
		store.Presets = []model.ContainerPreset{}
	}
	for i := range store.Presets {
		p := &store.Presets[i]
		if err := p.Inner.Validate("preset " + p.Name); err != nil {
			return model.PresetStore{}, err
		}
		p.IsBuiltIn = false
	}
	return store, nil
}
