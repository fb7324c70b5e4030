package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/LoadCalc/internal/model"
)

// OrientationOption describes how one box orientation fills the container.
type OrientationOption struct {
	Orientation       model.Orientation `json:"orientation"`
	Box               model.Dimensions  `json:"box"` // oriented
	FitCounts         model.FitCounts   `json:"fit_counts"`
	TotalBoxCount     int               `json:"total_box_count"`
	EfficiencyPercent float64           `json:"efficiency_percent"`
	Selected          bool              `json:"selected"` // the orientation Compute would choose
}

// CompareOrientations evaluates every distinct orientation of box and returns
// them best first. Ties keep candidate order, so the first entry is the one
// ComputeLayout picks with rotation allowed.
func CompareOrientations(container, box model.Dimensions, pattern model.Pattern) ([]OrientationOption, error) {
	if err := container.Validate("container"); err != nil {
		return nil, err
	}
	if err := box.Validate("box"); err != nil {
		return nil, err
	}
	if _, _, err := lookupPattern(pattern); err != nil {
		return nil, err
	}

	candidates := CandidateOrientations(box, true)
	options := make([]OrientationOption, 0, len(candidates))
	for _, o := range candidates {
		oriented := o.Apply(box)
		if err := checkCapacity(container, oriented); err != nil {
			return nil, err
		}
		fit := FitAlong(container, oriented)
		options = append(options, OrientationOption{
			Orientation:       o,
			Box:               oriented,
			FitCounts:         fit,
			TotalBoxCount:     fit.Total(),
			EfficiencyPercent: Efficiency(container, box, fit.Total()),
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].TotalBoxCount > options[j].TotalBoxCount
	})
	options[0].Selected = true
	return options, nil
}

// ContainerComparison holds the layout of one box in one container preset.
type ContainerComparison struct {
	Preset model.ContainerPreset `json:"preset"`
	Result model.LayoutResult    `json:"result"`
}

// CompareContainers runs the same box through every preset so the caller can
// see which container carries the most cartons. Results keep preset order.
func (c *Calculator) CompareContainers(presets []model.ContainerPreset, box model.Dimensions, pattern model.Pattern, rotationAllowed bool) ([]ContainerComparison, error) {
	results := make([]ContainerComparison, 0, len(presets))
	for _, p := range presets {
		r, err := c.Compute(p.Inner, box, pattern, rotationAllowed)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		results = append(results, ContainerComparison{Preset: p, Result: r})
	}
	return results, nil
}

// BestContainer returns the comparison with the highest efficiency among
// those that fit at least one box.
func BestContainer(comparisons []ContainerComparison) (ContainerComparison, bool) {
	best := -1
	for i, cmp := range comparisons {
		if !cmp.Result.Fits() {
			continue
		}
		if best < 0 || cmp.Result.EfficiencyPercent > comparisons[best].Result.EfficiencyPercent {
			best = i
		}
	}
	if best < 0 {
		return ContainerComparison{}, false
	}
	return comparisons[best], true
}
