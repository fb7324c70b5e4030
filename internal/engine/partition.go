package engine

import (
	"sort"

	"github.com/piwi3910/LoadCalc/internal/model"
)

// TotalLayers returns how many layers of boxHeight fit in containerHeight.
func TotalLayers(containerHeight, boxHeight float64) int {
	return fitCount(containerHeight, boxHeight)
}

// PartitionIntoLayers groups the placed boxes of result into horizontal
// layers of boxHeight. Layers are numbered from 1 at the container floor and
// returned bottom first; a band without boxes is not materialized.
func PartitionIntoLayers(result model.LayoutResult, boxHeight float64) []model.Layer {
	layers := []model.Layer{}
	if boxHeight <= 0 || len(result.PlacedBoxes) == 0 {
		return layers
	}

	buckets := make(map[int][]model.PlacedBox)
	for _, b := range result.PlacedBoxes {
		idx := layerOf(b.Position.Z, boxHeight)
		b.LayerIndex = idx
		buckets[idx] = append(buckets[idx], b)
	}

	indices := make([]int, 0, len(buckets))
	for idx := range buckets {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		boxes := buckets[idx]
		layers = append(layers, model.Layer{
			Number: idx + 1,
			Boxes:  boxes,
			Count:  len(boxes),
		})
	}
	return layers
}

// Layers partitions result using the height of the box as placed.
func Layers(result model.LayoutResult) []model.Layer {
	return PartitionIntoLayers(result, result.OrientedBox().Height)
}

// FindLayer returns the layer with the given 1-based number.
func FindLayer(layers []model.Layer, number int) (model.Layer, bool) {
	for _, l := range layers {
		if l.Number == number {
			return l, true
		}
	}
	return model.Layer{}, false
}

func layerOf(z, boxHeight float64) int {
	if z <= 0 {
		return 0
	}
	// A box starting at k*boxHeight lies in band k even if z/boxHeight
	// rounds just below k.
	return fitCount(z, boxHeight)
}
