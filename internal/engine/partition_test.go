package engine

import (
	"testing"

	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionIntoLayers_Reefer(t *testing.T) {
	result, err := ComputeLayout(reefer, carton, model.PatternNormal, false)
	require.NoError(t, err)

	layers := PartitionIntoLayers(result, carton.Height)
	require.Len(t, layers, 8)

	total := 0
	for i, l := range layers {
		assert.Equal(t, i+1, l.Number)
		assert.Equal(t, 95, l.Count)
		assert.Len(t, l.Boxes, l.Count)
		for _, b := range l.Boxes {
			assert.InDelta(t, float64(i)*carton.Height, b.Position.Z, 1e-9)
		}
		total += l.Count
	}
	assert.Equal(t, result.TotalBoxCount, total)
}

func TestPartitionIntoLayers_EveryBoxExactlyOnce(t *testing.T) {
	result, err := ComputeLayout(reefer, carton, model.PatternNormal, true)
	require.NoError(t, err)

	layers := Layers(result)
	require.Len(t, layers, result.FitCounts.AlongHeight)

	seen := make(map[int]int)
	for _, l := range layers {
		for _, b := range l.Boxes {
			seen[b.Index]++
		}
	}
	assert.Len(t, seen, result.TotalBoxCount)
	for idx, n := range seen {
		assert.Equal(t, 1, n, "box %d", idx)
	}
}

func TestPartitionIntoLayers_MismatchedHeightKeepsAllBoxes(t *testing.T) {
	result, err := ComputeLayout(model.NewDimensions(10, 10, 90), model.NewDimensions(10, 10, 30), model.PatternNormal, false)
	require.NoError(t, err)
	require.Equal(t, 3, result.TotalBoxCount)

	// A band height of 20 puts boxes at z=0, 30, 60 into bands 1, 2 and 4.
	layers := PartitionIntoLayers(result, 20)
	require.Len(t, layers, 3)
	assert.Equal(t, []int{1, 2, 4}, []int{layers[0].Number, layers[1].Number, layers[2].Number})

	total := 0
	for _, l := range layers {
		total += l.Count
		for _, b := range l.Boxes {
			assert.Equal(t, l.Number-1, b.LayerIndex)
		}
	}
	assert.Equal(t, 3, total)

	// The result itself keeps the placement layer.
	assert.Equal(t, []int{0, 1, 2}, []int{
		result.PlacedBoxes[0].LayerIndex,
		result.PlacedBoxes[1].LayerIndex,
		result.PlacedBoxes[2].LayerIndex,
	})
}

func TestPartitionIntoLayers_Degenerate(t *testing.T) {
	result, err := ComputeLayout(reefer, carton, model.PatternNormal, false)
	require.NoError(t, err)

	assert.Empty(t, PartitionIntoLayers(result, 0))
	assert.Empty(t, PartitionIntoLayers(result, -5))
	assert.NotNil(t, PartitionIntoLayers(result, 0))

	empty, err := ComputeLayout(model.NewDimensions(10, 10, 10), carton, model.PatternNormal, false)
	require.NoError(t, err)
	assert.Empty(t, PartitionIntoLayers(empty, carton.Height))
}

func TestTotalLayers(t *testing.T) {
	assert.Equal(t, 8, TotalLayers(252, 30))
	assert.Equal(t, 6, TotalLayers(252, 40))
	assert.Equal(t, 0, TotalLayers(20, 30))
	assert.Equal(t, 0, TotalLayers(252, 0))
	assert.Equal(t, 3, TotalLayers(0.3, 0.1))
}

func TestFindLayer(t *testing.T) {
	result, err := ComputeLayout(reefer, carton, model.PatternNormal, false)
	require.NoError(t, err)
	layers := Layers(result)

	l, ok := FindLayer(layers, 3)
	require.True(t, ok)
	assert.Equal(t, 3, l.Number)

	_, ok = FindLayer(layers, 9)
	assert.False(t, ok)
}
