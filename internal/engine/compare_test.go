package engine

import (
	"testing"

	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareOrientations_SortedBestFirst(t *testing.T) {
	options, err := CompareOrientations(reefer, carton, model.PatternNormal)
	require.NoError(t, err)
	require.Len(t, options, 6)

	assert.Equal(t, "LHW", options[0].Orientation.String())
	assert.Equal(t, 798, options[0].TotalBoxCount)
	assert.True(t, options[0].Selected)
	for i := 1; i < len(options); i++ {
		assert.False(t, options[i].Selected)
		assert.GreaterOrEqual(t, options[i-1].TotalBoxCount, options[i].TotalBoxCount)
	}

	// LWH and HWL both give 760; the stable sort keeps LWH ahead.
	var tied []string
	for _, o := range options {
		if o.TotalBoxCount == 760 {
			tied = append(tied, o.Orientation.String())
		}
	}
	assert.Equal(t, []string{"LWH", "HWL"}, tied)
}

func TestCompareOrientations_MatchesComputeLayout(t *testing.T) {
	options, err := CompareOrientations(reefer, carton, "")
	require.NoError(t, err)

	result, err := ComputeLayout(reefer, carton, model.PatternNormal, true)
	require.NoError(t, err)

	assert.Equal(t, result.Orientation, options[0].Orientation)
	assert.Equal(t, result.TotalBoxCount, options[0].TotalBoxCount)
	assert.Equal(t, result.EfficiencyPercent, options[0].EfficiencyPercent)
}

func TestCompareOrientations_Errors(t *testing.T) {
	_, err := CompareOrientations(reefer, model.NewDimensions(0, 1, 1), model.PatternNormal)
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = CompareOrientations(reefer, carton, "stacked")
	assert.ErrorIs(t, err, model.ErrUnknownPattern)
}

func TestCompareContainers(t *testing.T) {
	calc := New(nil)
	comparisons, err := calc.CompareContainers(model.ContainerPresets, carton, model.PatternNormal, false)
	require.NoError(t, err)
	require.Len(t, comparisons, len(model.ContainerPresets))

	for i, cmp := range comparisons {
		assert.Equal(t, model.ContainerPresets[i].ID, cmp.Preset.ID)
		assert.Equal(t, cmp.Preset.Inner, cmp.Result.Container)
	}

	best, ok := BestContainer(comparisons)
	require.True(t, ok)
	assert.True(t, best.Result.Fits())
	for _, cmp := range comparisons {
		assert.LessOrEqual(t, cmp.Result.EfficiencyPercent, best.Result.EfficiencyPercent)
	}
}

func TestCompareContainers_PropagatesErrors(t *testing.T) {
	_, err := New(nil).CompareContainers(model.ContainerPresets, carton, "zigzag", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownPattern)
	assert.Contains(t, err.Error(), "preset")
}

func TestBestContainer_NoneFit(t *testing.T) {
	comparisons, err := New(nil).CompareContainers(model.ContainerPresets, model.NewDimensions(2000, 10, 10), model.PatternNormal, false)
	require.NoError(t, err)

	_, ok := BestContainer(comparisons)
	assert.False(t, ok)
}
