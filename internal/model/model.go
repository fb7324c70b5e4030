package model

import (
	"fmt"
	"math"
	"strings"
)

// cubicCmPerCubicMeter converts cm³ to m³.
const cubicCmPerCubicMeter = 1_000_000.0

// Dimensions is an axis-aligned size in centimeters.
type Dimensions struct {
	Length float64 `json:"length" toml:"length"` // cm, along X
	Width  float64 `json:"width" toml:"width"`   // cm, along Y
	Height float64 `json:"height" toml:"height"` // cm, along Z (vertical)
}

// NewDimensions is a shorthand constructor.
func NewDimensions(l, w, h float64) Dimensions {
	return Dimensions{Length: l, Width: w, Height: h}
}

// Volume returns the volume in cubic centimeters.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// VolumeCubicMeters returns the volume in cubic meters.
func (d Dimensions) VolumeCubicMeters() float64 {
	return d.Volume() / cubicCmPerCubicMeter
}

// Axis returns the extent along axis i (0 = length, 1 = width, 2 = height).
func (d Dimensions) Axis(i int) float64 {
	switch i {
	case 0:
		return d.Length
	case 1:
		return d.Width
	default:
		return d.Height
	}
}

// Validate reports the first non-positive or non-numeric field.
// subject names the value in the error ("container", "box").
func (d Dimensions) Validate(subject string) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"length", d.Length},
		{"width", d.Width},
		{"height", d.Height},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return &InvalidDimensionError{Subject: subject, Field: f.name, Value: f.value}
		}
	}
	return nil
}

// Orientation is an axis permutation applied to a box: oriented axis i takes
// the original axis Perm[i].
type Orientation struct {
	Perm [3]int `json:"perm"`
}

// Identity is the as-given orientation.
var Identity = Orientation{Perm: [3]int{0, 1, 2}}

// AllOrientations lists the six axis permutations in lexical order.
var AllOrientations = []Orientation{
	{Perm: [3]int{0, 1, 2}},
	{Perm: [3]int{0, 2, 1}},
	{Perm: [3]int{1, 0, 2}},
	{Perm: [3]int{1, 2, 0}},
	{Perm: [3]int{2, 0, 1}},
	{Perm: [3]int{2, 1, 0}},
}

// Apply returns d with its axes permuted.
func (o Orientation) Apply(d Dimensions) Dimensions {
	return Dimensions{
		Length: d.Axis(o.Perm[0]),
		Width:  d.Axis(o.Perm[1]),
		Height: d.Axis(o.Perm[2]),
	}
}

// IsIdentity reports whether the orientation leaves the box as given.
func (o Orientation) IsIdentity() bool {
	return o == Identity
}

func (o Orientation) String() string {
	letters := [3]byte{'L', 'W', 'H'}
	return string([]byte{letters[o.Perm[0]], letters[o.Perm[1]], letters[o.Perm[2]]})
}

// MarshalText encodes the orientation by name ("LWH", "WLH", ...).
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an orientation name produced by MarshalText.
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, ok := ParseOrientation(string(text))
	if !ok {
		return fmt.Errorf("unknown orientation %q", string(text))
	}
	*o = parsed
	return nil
}

// ParseOrientation looks up an orientation by name, e.g. "WLH".
func ParseOrientation(name string) (Orientation, bool) {
	for _, o := range AllOrientations {
		if o.String() == strings.ToUpper(strings.TrimSpace(name)) {
			return o, true
		}
	}
	return Orientation{}, false
}

// Position is the minimum corner of a placed box, in cm.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlacedBox is one box located inside the container.
type PlacedBox struct {
	Index      int        `json:"index"`
	Position   Position   `json:"position"`
	Size       Dimensions `json:"size"`
	LayerIndex int        `json:"layer_index"` // 0-based
	Color      Color      `json:"color"`
}

// Max returns the maximum corner of the box.
func (p PlacedBox) Max() Position {
	return Position{
		X: p.Position.X + p.Size.Length,
		Y: p.Position.Y + p.Size.Width,
		Z: p.Position.Z + p.Size.Height,
	}
}

// FitCounts holds how many boxes fit along each container axis.
type FitCounts struct {
	AlongLength int `json:"along_length"`
	AlongWidth  int `json:"along_width"`
	AlongHeight int `json:"along_height"`
}

// Total returns the product of the three counts.
func (f FitCounts) Total() int {
	return f.AlongLength * f.AlongWidth * f.AlongHeight
}

// PerLayer returns the number of boxes in one full layer.
func (f FitCounts) PerLayer() int {
	return f.AlongLength * f.AlongWidth
}

// Pattern names a placement strategy.
type Pattern string

const (
	PatternNormal Pattern = "normal" // Axis-aligned grid, one orientation
)

// LayoutResult is the outcome of one calculation. It is never mutated after
// creation; a new calculation produces a new result.
type LayoutResult struct {
	ID                string      `json:"id"`
	Container         Dimensions  `json:"container"`
	Box               Dimensions  `json:"box"` // as given, unrotated
	Pattern           Pattern     `json:"pattern"`
	RotationAllowed   bool        `json:"rotation_allowed"`
	Orientation       Orientation `json:"orientation"`
	FitCounts         FitCounts   `json:"fit_counts"`
	TotalBoxCount     int         `json:"total_box_count"`
	EfficiencyPercent float64     `json:"efficiency_percent"`
	PlacedBoxes       []PlacedBox `json:"placed_boxes"`
}

// OrientedBox returns the box dimensions as placed.
func (r LayoutResult) OrientedBox() Dimensions {
	return r.Orientation.Apply(r.Box)
}

// Fits reports whether at least one box was placed.
func (r LayoutResult) Fits() bool {
	return r.TotalBoxCount > 0
}

// ContainerVolume returns the container volume in cm³.
func (r LayoutResult) ContainerVolume() float64 {
	return r.Container.Volume()
}

// BoxVolume returns the volume of a single box in cm³.
func (r LayoutResult) BoxVolume() float64 {
	return r.Box.Volume()
}

// UsedVolume returns the volume occupied by all placed boxes in cm³.
func (r LayoutResult) UsedVolume() float64 {
	return float64(r.TotalBoxCount) * r.BoxVolume()
}

// WastedVolume returns the unoccupied container volume in cm³.
func (r LayoutResult) WastedVolume() float64 {
	return r.ContainerVolume() - r.UsedVolume()
}

// WastePercent returns the share of the container left empty.
func (r LayoutResult) WastePercent() float64 {
	return 100.0 - r.EfficiencyPercent
}

// EfficiencyRounded returns the efficiency with one decimal place, for display.
func (r LayoutResult) EfficiencyRounded() float64 {
	return RoundTo(r.EfficiencyPercent, 1)
}

// TotalLayers returns the number of layers the container height allows for the
// chosen orientation.
func (r LayoutResult) TotalLayers() int {
	return r.FitCounts.AlongHeight
}

// Layer groups the placed boxes of one horizontal band.
type Layer struct {
	Number int         `json:"layer"` // 1-based, bottom first
	Boxes  []PlacedBox `json:"boxes"`
	Count  int         `json:"count"`
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
