package model

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// Color is a display color for a placed box. It carries no layout meaning.
type Color string

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return string(c)
}

// RGB decodes the color into 0-255 components. Malformed values decode to grey.
func (c Color) RGB() (r, g, b int) {
	s := strings.TrimPrefix(string(c), "#")
	if len(s) != 6 {
		return 128, 128, 128
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 128, 128, 128
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// ColorFromRGB builds a Color from 0-255 components.
func ColorFromRGB(r, g, b int) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", r&0xff, g&0xff, b&0xff))
}

// DefaultPalette is the carton palette used by the layer diagrams.
var DefaultPalette = []Color{
	"#4cc9f0", "#4895ef", "#4361ee", "#3f37c9",
	"#f72585", "#b5179e", "#7209b7", "#560bad",
	"#3a0ca3", "#480ca8", "#3a86ff", "#8338ec",
}

// ContainerColor is the outline color of the container in diagrams.
const ContainerColor Color = "#3a86ff"

// ColorAssigner picks a display color for the box with the given index.
type ColorAssigner interface {
	AssignColor(index int) Color
}

// PaletteCycle cycles through a fixed palette by index. It is deterministic.
type PaletteCycle struct {
	Palette []Color
}

// NewPaletteCycle returns a cycling assigner; an empty palette uses DefaultPalette.
func NewPaletteCycle(palette []Color) PaletteCycle {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return PaletteCycle{Palette: palette}
}

func (p PaletteCycle) AssignColor(index int) Color {
	palette := p.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if index < 0 {
		index = -index
	}
	return palette[index%len(palette)]
}

// RandomPalette draws a random palette entry for every box. It is safe for
// concurrent use.
type RandomPalette struct {
	Palette []Color

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPalette returns a random assigner seeded with seed.
func NewRandomPalette(palette []Color, seed int64) *RandomPalette {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &RandomPalette{
		Palette: palette,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (p *RandomPalette) AssignColor(int) Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Palette[p.rng.Intn(len(p.Palette))]
}

// ParsePalette converts hex strings (with or without '#') into colors,
// skipping entries that are not six hex digits.
func ParsePalette(values []string) []Color {
	var out []Color
	for _, v := range values {
		s := strings.TrimPrefix(strings.TrimSpace(v), "#")
		if len(s) != 6 {
			continue
		}
		if _, err := strconv.ParseUint(s, 16, 32); err != nil {
			continue
		}
		out = append(out, Color("#"+strings.ToLower(s)))
	}
	return out
}
