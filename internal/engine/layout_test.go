package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	reefer = model.NewDimensions(1158, 228, 252)
	carton = model.NewDimensions(60, 40, 30)
)

func TestComputeLayout_ReeferWithoutRotation(t *testing.T) {
	result, err := ComputeLayout(reefer, carton, model.PatternNormal, false)
	require.NoError(t, err)

	assert.Equal(t, model.FitCounts{AlongLength: 19, AlongWidth: 5, AlongHeight: 8}, result.FitCounts)
	assert.Equal(t, 760, result.TotalBoxCount)
	assert.Len(t, result.PlacedBoxes, 760)
	assert.InDelta(t, 82.24360555966773, result.EfficiencyPercent, 1e-9)
	assert.Equal(t, 82.2, result.EfficiencyRounded())
	assert.Equal(t, model.Identity, result.Orientation)
	assert.NotEmpty(t, result.ID)
}

func TestComputeLayout_ReeferWithRotation(t *testing.T) {
	result, err := ComputeLayout(reefer, carton, model.PatternNormal, true)
	require.NoError(t, err)

	// Standing the carton on its long side gives 19 x 7 x 6.
	assert.Equal(t, "LHW", result.Orientation.String())
	assert.Equal(t, model.FitCounts{AlongLength: 19, AlongWidth: 7, AlongHeight: 6}, result.FitCounts)
	assert.Equal(t, 798, result.TotalBoxCount)
	assert.InDelta(t, 86.35578583765113, result.EfficiencyPercent, 1e-9)
}

func TestComputeLayout_PlacementsInsideContainer(t *testing.T) {
	result, err := ComputeLayout(reefer, carton, model.PatternNormal, true)
	require.NoError(t, err)

	const eps = 1e-6
	seen := make(map[model.Position]bool, len(result.PlacedBoxes))
	for i, b := range result.PlacedBoxes {
		assert.Equal(t, i, b.Index)
		end := b.Max()
		assert.GreaterOrEqual(t, b.Position.X, 0.0)
		assert.GreaterOrEqual(t, b.Position.Y, 0.0)
		assert.GreaterOrEqual(t, b.Position.Z, 0.0)
		assert.LessOrEqual(t, end.X, reefer.Length+eps)
		assert.LessOrEqual(t, end.Y, reefer.Width+eps)
		assert.LessOrEqual(t, end.Z, reefer.Height+eps)
		assert.False(t, seen[b.Position], "duplicate position %+v", b.Position)
		seen[b.Position] = true
		assert.NotEmpty(t, b.Color)
	}
}

func TestComputeLayout_VolumeBound(t *testing.T) {
	cases := []struct {
		container, box model.Dimensions
	}{
		{reefer, carton},
		{model.NewDimensions(100, 100, 100), model.NewDimensions(33, 33, 33)},
		{model.NewDimensions(0.3, 0.3, 0.3), model.NewDimensions(0.1, 0.1, 0.1)},
		{model.NewDimensions(589, 235, 239), model.NewDimensions(47.5, 31.2, 22.8)},
	}
	for _, tc := range cases {
		for _, rotate := range []bool{false, true} {
			result, err := ComputeLayout(tc.container, tc.box, model.PatternNormal, rotate)
			require.NoError(t, err)
			assert.LessOrEqual(t, float64(result.TotalBoxCount)*tc.box.Volume(), tc.container.Volume()+1e-6)
			assert.LessOrEqual(t, result.EfficiencyPercent, 100.0+1e-9)
			assert.Equal(t, result.FitCounts.Total(), result.TotalBoxCount)
		}
	}
}

func TestComputeLayout_FloatNoiseDoesNotLoseABox(t *testing.T) {
	result, err := ComputeLayout(model.NewDimensions(0.3, 0.3, 0.3), model.NewDimensions(0.1, 0.1, 0.1), model.PatternNormal, false)
	require.NoError(t, err)
	assert.Equal(t, 27, result.TotalBoxCount)
}

func TestComputeLayout_JustOversizedBoxDoesNotFit(t *testing.T) {
	result, err := ComputeLayout(model.NewDimensions(100, 100, 100), model.NewDimensions(100.00000005, 100.00000005, 100.00000005), model.PatternNormal, false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalBoxCount)
	assert.Equal(t, 0.0, result.EfficiencyPercent)
	assert.Empty(t, result.PlacedBoxes)
}

func TestFitCount_WallTolerance(t *testing.T) {
	tests := []struct {
		space, size float64
		want        int
	}{
		{0.3, 0.1, 3},
		{0.7, 0.1, 7},
		{1158, 60, 19},
		{100, 100, 1},
		{100, 100.00000005, 0},
		{100, 50.00000005, 1},
		{0, 10, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fitCount(tt.space, tt.size), "fitCount(%v, %v)", tt.space, tt.size)
	}
}

func TestComputeLayout_TooManyBoxes(t *testing.T) {
	cases := []struct {
		name      string
		container model.Dimensions
	}{
		{"beyond int range", model.NewDimensions(1e19, 1, 1)},
		{"beyond enumeration limit", model.NewDimensions(10000, 10000, 10000)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, rotate := range []bool{false, true} {
				_, err := ComputeLayout(tc.container, model.NewDimensions(1, 1, 1), model.PatternNormal, rotate)
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrTooManyBoxes))

				var tooMany *model.TooManyBoxesError
				require.True(t, errors.As(err, &tooMany))
				assert.Equal(t, MaxPlacedBoxes, tooMany.Limit)
				assert.Greater(t, tooMany.Count, float64(MaxPlacedBoxes))
			}

			_, err := CompareOrientations(tc.container, model.NewDimensions(1, 1, 1), model.PatternNormal)
			assert.True(t, errors.Is(err, model.ErrTooManyBoxes))
		})
	}
}

func TestComputeLayout_AtEnumerationLimit(t *testing.T) {
	result, err := ComputeLayout(model.NewDimensions(100, 100, 100), model.NewDimensions(1, 1, 1), model.PatternNormal, false)
	require.NoError(t, err)
	assert.Equal(t, MaxPlacedBoxes, result.TotalBoxCount)
}

func TestCalculator_SharedAcrossGoroutines(t *testing.T) {
	calc := New(model.NewRandomPalette(model.DefaultPalette, 42))

	var wg sync.WaitGroup
	counts := make([]int, 8)
	errs := make([]error, len(counts))
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := calc.Compute(reefer, carton, model.PatternNormal, false)
			counts[i], errs[i] = result.TotalBoxCount, err
		}(i)
	}
	wg.Wait()

	for i := range counts {
		require.NoError(t, errs[i])
		assert.Equal(t, 760, counts[i])
	}
}

func TestComputeLayout_MonotonicInContainer(t *testing.T) {
	small, err := ComputeLayout(model.NewDimensions(200, 100, 100), carton, model.PatternNormal, true)
	require.NoError(t, err)

	for _, bigger := range []model.Dimensions{
		model.NewDimensions(260, 100, 100),
		model.NewDimensions(200, 140, 100),
		model.NewDimensions(200, 100, 130),
		reefer,
	} {
		big, err := ComputeLayout(bigger, carton, model.PatternNormal, true)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, big.TotalBoxCount, small.TotalBoxCount, "container %+v", bigger)
	}
}

func TestComputeLayout_RotationNeverWorse(t *testing.T) {
	boxes := []model.Dimensions{
		carton,
		model.NewDimensions(120, 80, 14.5),
		model.NewDimensions(30, 10, 20),
		model.NewDimensions(25, 25, 25),
	}
	for _, box := range boxes {
		fixed, err := ComputeLayout(reefer, box, model.PatternNormal, false)
		require.NoError(t, err)
		rotated, err := ComputeLayout(reefer, box, model.PatternNormal, true)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rotated.TotalBoxCount, fixed.TotalBoxCount, "box %+v", box)
	}
}

func TestComputeLayout_NothingFits(t *testing.T) {
	result, err := ComputeLayout(model.NewDimensions(50, 50, 50), model.NewDimensions(60, 10, 10), model.PatternNormal, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalBoxCount)
	assert.NotNil(t, result.PlacedBoxes)
	assert.Empty(t, result.PlacedBoxes)
	assert.Equal(t, 0.0, result.EfficiencyPercent)
	assert.False(t, result.Fits())
}

func TestComputeLayout_RotationRescuesOversizedBox(t *testing.T) {
	container := model.NewDimensions(10, 20, 30)
	box := model.NewDimensions(30, 10, 20)

	fixed, err := ComputeLayout(container, box, model.PatternNormal, false)
	require.NoError(t, err)
	assert.Equal(t, 0, fixed.TotalBoxCount)

	rotated, err := ComputeLayout(container, box, model.PatternNormal, true)
	require.NoError(t, err)
	assert.Equal(t, 1, rotated.TotalBoxCount)
	assert.Equal(t, "WHL", rotated.Orientation.String())
	assert.InDelta(t, 100.0, rotated.EfficiencyPercent, 1e-9)
}

func TestComputeLayout_InvalidDimensions(t *testing.T) {
	_, err := ComputeLayout(model.NewDimensions(0, 10, 10), carton, model.PatternNormal, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidDimension))

	var dimErr *model.InvalidDimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, "container", dimErr.Subject)
	assert.Equal(t, "length", dimErr.Field)

	_, err = ComputeLayout(reefer, model.NewDimensions(60, -40, 30), model.PatternNormal, false)
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, "box", dimErr.Subject)
	assert.Equal(t, "width", dimErr.Field)
}

func TestComputeLayout_UnknownPattern(t *testing.T) {
	_, err := ComputeLayout(reefer, carton, model.Pattern("pinwheel"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownPattern)

	var patErr *model.UnknownPatternError
	require.ErrorAs(t, err, &patErr)
	assert.Equal(t, model.Pattern("pinwheel"), patErr.Pattern)
}

func TestComputeLayout_PatternNameIsNormalized(t *testing.T) {
	for _, name := range []model.Pattern{"", "Normal", " normal "} {
		result, err := ComputeLayout(reefer, carton, name, false)
		require.NoError(t, err, "pattern %q", name)
		assert.Equal(t, model.PatternNormal, result.Pattern)
	}
}

func TestComputeLayout_Idempotent(t *testing.T) {
	a, err := ComputeLayout(reefer, carton, model.PatternNormal, true)
	require.NoError(t, err)
	b, err := ComputeLayout(reefer, carton, model.PatternNormal, true)
	require.NoError(t, err)

	assert.Equal(t, a.FitCounts, b.FitCounts)
	assert.Equal(t, a.Orientation, b.Orientation)
	assert.Equal(t, a.EfficiencyPercent, b.EfficiencyPercent)
	assert.Equal(t, a.PlacedBoxes, b.PlacedBoxes)
}

func TestComputeLayout_TieKeepsEarlierOrientation(t *testing.T) {
	// LWH and LHW both give four boxes; the identity comes first.
	result, err := ComputeLayout(model.NewDimensions(20, 20, 20), model.NewDimensions(10, 10, 20), model.PatternNormal, true)
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalBoxCount)
	assert.Equal(t, model.Identity, result.Orientation)
}

func TestCandidateOrientations(t *testing.T) {
	assert.Equal(t, []model.Orientation{model.Identity}, CandidateOrientations(carton, false))
	assert.Len(t, CandidateOrientations(carton, true), 6)
	assert.Len(t, CandidateOrientations(model.NewDimensions(10, 10, 20), true), 3)
	assert.Len(t, CandidateOrientations(model.NewDimensions(10, 10, 10), true), 1)
}

func TestFitAlong(t *testing.T) {
	fit := FitAlong(reefer, carton)
	assert.Equal(t, 19, fit.AlongLength)
	assert.Equal(t, 5, fit.AlongWidth)
	assert.Equal(t, 8, fit.AlongHeight)
	assert.Equal(t, 95, fit.PerLayer())
}

func TestCalculator_CustomColors(t *testing.T) {
	calc := New(model.NewPaletteCycle([]model.Color{"#111111", "#222222"}))
	result, err := calc.Compute(model.NewDimensions(30, 10, 10), model.NewDimensions(10, 10, 10), model.PatternNormal, false)
	require.NoError(t, err)
	require.Len(t, result.PlacedBoxes, 3)

	assert.Equal(t, model.Color("#111111"), result.PlacedBoxes[0].Color)
	assert.Equal(t, model.Color("#222222"), result.PlacedBoxes[1].Color)
	assert.Equal(t, model.Color("#111111"), result.PlacedBoxes[2].Color)
}

func TestRecolor_LeavesGeometryAlone(t *testing.T) {
	result, err := ComputeLayout(reefer, carton, model.PatternNormal, false)
	require.NoError(t, err)

	recolored := Recolor(result, model.NewRandomPalette(nil, 42))
	require.Len(t, recolored.PlacedBoxes, len(result.PlacedBoxes))
	assert.Equal(t, result.TotalBoxCount, recolored.TotalBoxCount)
	assert.Equal(t, result.EfficiencyPercent, recolored.EfficiencyPercent)
	for i := range result.PlacedBoxes {
		assert.Equal(t, result.PlacedBoxes[i].Position, recolored.PlacedBoxes[i].Position)
	}
	// The original result is not mutated.
	assert.Equal(t, model.DefaultPalette[0], result.PlacedBoxes[0].Color)
}

func TestPatternNames(t *testing.T) {
	assert.Contains(t, PatternNames(), "normal")
}
