package model

import "testing"

func TestGetPreset(t *testing.T) {
	p, ok := GetPreset("40ft reefer hc")
	if !ok {
		t.Fatal("expected reefer preset to be found")
	}
	if p.Inner != NewDimensions(1158, 228, 252) {
		t.Errorf("unexpected reefer dimensions %+v", p.Inner)
	}
	if !p.IsBuiltIn {
		t.Error("expected built-in preset")
	}

	if _, ok := GetPreset("20FT"); !ok {
		t.Error("expected lookup by ID to be case-insensitive")
	}
	if _, ok := GetPreset("53ft"); ok {
		t.Error("expected unknown preset to be missing")
	}
}

func TestGetPresetNames(t *testing.T) {
	names := GetPresetNames()
	if len(names) != len(ContainerPresets) {
		t.Errorf("expected %d names, got %d", len(ContainerPresets), len(names))
	}
}

func TestPresetStoreAddRemove(t *testing.T) {
	store := NewPresetStore()
	p := NewContainerPreset("Truck", "Box truck", NewDimensions(700, 240, 240))
	p.IsBuiltIn = true
	store.Add(p)

	if len(store.Presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(store.Presets))
	}
	if store.Presets[0].IsBuiltIn {
		t.Error("custom presets must not be marked built-in")
	}
	if p.ID == "" {
		t.Error("expected generated ID")
	}

	if found := store.FindByName("truck"); found == nil {
		t.Error("expected FindByName to find Truck")
	}
	if !store.Remove(p.ID) {
		t.Error("expected Remove to succeed")
	}
	if store.Remove(p.ID) {
		t.Error("expected second Remove to fail")
	}
}

func TestPresetStoreLookupPrefersCustom(t *testing.T) {
	store := NewPresetStore()
	store.Add(NewContainerPreset("20ft", "Shortened", NewDimensions(500, 200, 200)))

	p, ok := store.Lookup("20ft")
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if p.Inner.Length != 500 {
		t.Errorf("expected custom preset to win, got %+v", p.Inner)
	}

	if _, ok := store.Lookup("40ft HC"); !ok {
		t.Error("expected fallback to built-in presets")
	}
	if len(store.All()) != len(ContainerPresets)+1 {
		t.Errorf("expected %d presets, got %d", len(ContainerPresets)+1, len(store.All()))
	}
}
