package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/piwi3910/LoadCalc/internal/model"
)

// fitTolerance is the relative slack allowed when a row of boxes ends on the
// container wall, so that 3×0.1 still fits in 0.3.
const fitTolerance = 1e-12

// MaxPlacedBoxes caps how many boxes one layout enumerates. Larger layouts
// fail with model.ErrTooManyBoxes.
const MaxPlacedBoxes = 1_000_000

// PatternFunc lays out boxes of one fixed orientation inside the container.
// It must be pure: the same inputs always produce the same placements.
type PatternFunc func(container, box model.Dimensions) []model.PlacedBox

// Patterns holds the registered placement strategies by name.
var Patterns = map[model.Pattern]PatternFunc{
	model.PatternNormal: normalGrid,
}

// PatternNames returns the registered pattern names.
func PatternNames() []string {
	names := make([]string, 0, len(Patterns))
	for p := range Patterns {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// Calculator computes box layouts. The zero value cycles DefaultPalette.
type Calculator struct {
	Colors model.ColorAssigner
}

func New(colors model.ColorAssigner) *Calculator {
	return &Calculator{Colors: colors}
}

// ComputeLayout computes a layout with the default deterministic palette.
func ComputeLayout(container, box model.Dimensions, pattern model.Pattern, rotationAllowed bool) (model.LayoutResult, error) {
	return New(nil).Compute(container, box, pattern, rotationAllowed)
}

// Compute validates the inputs, picks the orientation that fits the most
// boxes, and enumerates the placements of the chosen pattern.
//
// Zero boxes fitting is a valid result, not an error.
func (c *Calculator) Compute(container, box model.Dimensions, pattern model.Pattern, rotationAllowed bool) (model.LayoutResult, error) {
	if err := container.Validate("container"); err != nil {
		return model.LayoutResult{}, err
	}
	if err := box.Validate("box"); err != nil {
		return model.LayoutResult{}, err
	}
	pattern, strategy, err := lookupPattern(pattern)
	if err != nil {
		return model.LayoutResult{}, err
	}

	candidates := CandidateOrientations(box, rotationAllowed)
	bestOrientation := candidates[0]
	bestFit := FitAlong(container, bestOrientation.Apply(box))
	for _, o := range candidates[1:] {
		fit := FitAlong(container, o.Apply(box))
		// Strictly greater: ties keep the earlier candidate.
		if fit.Total() > bestFit.Total() {
			bestOrientation = o
			bestFit = fit
		}
	}

	if err := checkCapacity(container, bestOrientation.Apply(box)); err != nil {
		return model.LayoutResult{}, err
	}

	result := model.LayoutResult{
		ID:              uuid.New().String()[:8],
		Container:       container,
		Box:             box,
		Pattern:         pattern,
		RotationAllowed: rotationAllowed,
		Orientation:     bestOrientation,
		FitCounts:       bestFit,
		PlacedBoxes:     []model.PlacedBox{},
	}
	if bestFit.Total() == 0 {
		return result, nil
	}

	placed := strategy(container, bestOrientation.Apply(box))
	AssignColors(placed, c.colors())

	result.PlacedBoxes = placed
	result.TotalBoxCount = len(placed)
	result.EfficiencyPercent = Efficiency(container, box, len(placed))
	return result, nil
}

func (c *Calculator) colors() model.ColorAssigner {
	if c == nil || c.Colors == nil {
		return model.NewPaletteCycle(nil)
	}
	return c.Colors
}

// lookupPattern normalizes the pattern name; an empty name means normal.
func lookupPattern(pattern model.Pattern) (model.Pattern, PatternFunc, error) {
	name := model.Pattern(strings.ToLower(strings.TrimSpace(string(pattern))))
	if name == "" {
		name = model.PatternNormal
	}
	strategy, ok := Patterns[name]
	if !ok {
		return pattern, nil, &model.UnknownPatternError{Pattern: pattern}
	}
	return name, strategy, nil
}

// CandidateOrientations returns the orientations to try: only the identity
// when rotation is not allowed, otherwise all six permutations in lexical
// order with duplicates (equal oriented dimensions) removed.
func CandidateOrientations(box model.Dimensions, rotationAllowed bool) []model.Orientation {
	if !rotationAllowed {
		return []model.Orientation{model.Identity}
	}
	seen := make(map[model.Dimensions]bool)
	var out []model.Orientation
	for _, o := range model.AllOrientations {
		d := o.Apply(box)
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, o)
	}
	return out
}

// FitAlong returns how many boxes of the given (already oriented) size fit
// along each container axis.
func FitAlong(container, box model.Dimensions) model.FitCounts {
	return model.FitCounts{
		AlongLength: fitCount(container.Length, box.Length),
		AlongWidth:  fitCount(container.Width, box.Width),
		AlongHeight: fitCount(container.Height, box.Height),
	}
}

// fitCount is fitRatio as an int, capped at MaxPlacedBoxes+1 so the product
// of three axes cannot overflow.
func fitCount(space, size float64) int {
	n := fitRatio(space, size)
	if n > MaxPlacedBoxes {
		return MaxPlacedBoxes + 1
	}
	return int(n)
}

// fitRatio returns how many whole boxes of size fit in space. A box that
// overshoots the wall only by float rounding still counts.
func fitRatio(space, size float64) float64 {
	if size <= 0 || space <= 0 {
		return 0
	}
	n := math.Floor(space / size)
	if math.IsNaN(n) {
		return 0
	}
	if math.IsInf(n, 0) {
		return n
	}
	limit := space * (1 + fitTolerance)
	if (n+1)*size <= limit {
		n++
	} else if n > 0 && n*size > limit {
		n--
	}
	return n
}

// capacity returns the uncapped number of boxes of the oriented size that fit.
func capacity(container, oriented model.Dimensions) float64 {
	return fitRatio(container.Length, oriented.Length) *
		fitRatio(container.Width, oriented.Width) *
		fitRatio(container.Height, oriented.Height)
}

func checkCapacity(container, oriented model.Dimensions) error {
	if n := capacity(container, oriented); n > MaxPlacedBoxes {
		return &model.TooManyBoxesError{Count: n, Limit: MaxPlacedBoxes}
	}
	return nil
}

// Efficiency returns the percentage of the container volume filled by count
// boxes. Rotation does not change a box's own volume.
func Efficiency(container, box model.Dimensions, count int) float64 {
	cv := container.Volume()
	if cv <= 0 || count <= 0 {
		return 0
	}
	return float64(count) * box.Volume() / cv * 100.0
}

// AssignColors sets the display color of each box in place.
func AssignColors(boxes []model.PlacedBox, colors model.ColorAssigner) {
	for i := range boxes {
		boxes[i].Color = colors.AssignColor(boxes[i].Index)
	}
}

// Recolor returns a copy of result with colors drawn from colors. Counts,
// positions and efficiency are unchanged.
func Recolor(result model.LayoutResult, colors model.ColorAssigner) model.LayoutResult {
	boxes := make([]model.PlacedBox, len(result.PlacedBoxes))
	copy(boxes, result.PlacedBoxes)
	AssignColors(boxes, colors)
	result.PlacedBoxes = boxes
	return result
}

// normalGrid fills the container with a full axis-aligned grid. Leftover
// space along each axis is left empty.
func normalGrid(container, box model.Dimensions) []model.PlacedBox {
	fit := FitAlong(container, box)
	boxes := make([]model.PlacedBox, 0, fit.Total())

	for ix := 0; ix < fit.AlongLength; ix++ {
		for iy := 0; iy < fit.AlongWidth; iy++ {
			for iz := 0; iz < fit.AlongHeight; iz++ {
				boxes = append(boxes, model.PlacedBox{
					Index: len(boxes),
					Position: model.Position{
						X: float64(ix) * box.Length,
						Y: float64(iy) * box.Width,
						Z: float64(iz) * box.Height,
					},
					Size:       box,
					LayerIndex: iz,
				})
			}
		}
	}
	return boxes
}
