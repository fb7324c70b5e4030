package model

// AppConfig holds application-wide preferences and default inputs.
type AppConfig struct {
	// Default calculation inputs
	DefaultContainer     Dimensions `json:"default_container" toml:"default_container"`
	DefaultBox           Dimensions `json:"default_box" toml:"default_box"`
	DefaultPattern       Pattern    `json:"default_pattern" toml:"default_pattern"`
	DefaultAllowRotation bool       `json:"default_allow_rotation" toml:"default_allow_rotation"`

	// Rendering
	Palette    []string `json:"palette" toml:"palette"`         // hex colors, empty = DefaultPalette
	RandomSeed int64    `json:"random_seed" toml:"random_seed"` // 0 = cycle the palette deterministically

	// Service
	ServerAddr string `json:"server_addr" toml:"server_addr"`
	LogLevel   string `json:"log_level" toml:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with the demo defaults:
// a 40ft reefer container and a 60x40x30 carton.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultContainer:     Dimensions{Length: 1158, Width: 228, Height: 252},
		DefaultBox:           Dimensions{Length: 60, Width: 40, Height: 30},
		DefaultPattern:       PatternNormal,
		DefaultAllowRotation: false,
		Palette:              []string{},
		RandomSeed:           0,
		ServerAddr:           ":8080",
		LogLevel:             "info",
	}
}

// ColorAssigner builds the assigner described by the config.
func (c AppConfig) ColorAssigner() ColorAssigner {
	palette := ParsePalette(c.Palette)
	if c.RandomSeed != 0 {
		return NewRandomPalette(palette, c.RandomSeed)
	}
	return NewPaletteCycle(palette)
}
