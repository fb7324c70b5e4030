package model

import (
	"strings"

	"github.com/google/uuid"
)

// ContainerPreset is a named container with known inner dimensions.
type ContainerPreset struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Inner       Dimensions `json:"inner"` // cm
	IsBuiltIn   bool       `json:"is_built_in"`
}

// NewContainerPreset creates a custom preset with a generated ID.
func NewContainerPreset(name, description string, inner Dimensions) ContainerPreset {
	return ContainerPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		Inner:       inner,
	}
}

// Built-in container presets (inner dimensions, cm).
var ContainerPresets = []ContainerPreset{
	{
		ID:          "20ft",
		Name:        "20ft",
		Description: "20ft standard dry container",
		Inner:       Dimensions{Length: 589, Width: 235, Height: 239},
		IsBuiltIn:   true,
	},
	{
		ID:          "40ft",
		Name:        "40ft",
		Description: "40ft standard dry container",
		Inner:       Dimensions{Length: 1203, Width: 235, Height: 239},
		IsBuiltIn:   true,
	},
	{
		ID:          "40hc",
		Name:        "40ft HC",
		Description: "40ft high cube dry container",
		Inner:       Dimensions{Length: 1203, Width: 235, Height: 269},
		IsBuiltIn:   true,
	},
	{
		ID:          "40rf",
		Name:        "40ft Reefer HC",
		Description: "40ft high cube refrigerated container",
		Inner:       Dimensions{Length: 1158, Width: 228, Height: 252},
		IsBuiltIn:   true,
	},
}

// GetPreset returns a built-in preset by name or ID (case-insensitive).
func GetPreset(name string) (ContainerPreset, bool) {
	for _, p := range ContainerPresets {
		if strings.EqualFold(p.Name, name) || strings.EqualFold(p.ID, name) {
			return p, true
		}
	}
	return ContainerPreset{}, false
}

// GetPresetNames returns the names of all built-in presets.
func GetPresetNames() []string {
	var names []string
	for _, p := range ContainerPresets {
		names = append(names, p.Name)
	}
	return names
}

// PresetStore holds user-defined container presets.
type PresetStore struct {
	Presets []ContainerPreset `json:"presets"`
}

// NewPresetStore creates an empty store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []ContainerPreset{},
	}
}

// Add adds a preset to the store. Custom presets are never built-in.
func (ps *PresetStore) Add(p ContainerPreset) {
	p.IsBuiltIn = false
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *ContainerPreset {
	for i := range ps.Presets {
		if strings.EqualFold(ps.Presets[i].Name, name) {
			return &ps.Presets[i]
		}
	}
	return nil
}

// All returns the built-in presets followed by the custom ones.
func (ps *PresetStore) All() []ContainerPreset {
	all := make([]ContainerPreset, 0, len(ContainerPresets)+len(ps.Presets))
	all = append(all, ContainerPresets...)
	all = append(all, ps.Presets...)
	return all
}

// Lookup finds a preset by name among custom presets first, then built-ins.
func (ps *PresetStore) Lookup(name string) (ContainerPreset, bool) {
	if p := ps.FindByName(name); p != nil {
		return *p, true
	}
	return GetPreset(name)
}
