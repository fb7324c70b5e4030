package model

import "math"

// ShipmentEstimate holds the result of a container count calculation for an
// order of cartons.
type ShipmentEstimate struct {
	CartonsOrdered       int     `json:"cartons_ordered"`
	CartonsPerContainer  int     `json:"cartons_per_container"`
	ContainersExact      float64 `json:"containers_exact"`       // Fractional number of containers
	ContainersNeeded     int     `json:"containers_needed"`      // Ceiling of exact
	CartonsInLast        int     `json:"cartons_in_last"`        // Cartons loaded into the last container
	LastContainerPercent float64 `json:"last_container_percent"` // Fill of the last container by count
	TotalVolumeM3        float64 `json:"total_volume_m3"`        // Volume of all ordered cartons
}

// EstimateShipment computes how many containers an order of cartons needs,
// given the per-container count from a layout result.
func EstimateShipment(result LayoutResult, cartons int) ShipmentEstimate {
	est := ShipmentEstimate{
		CartonsOrdered:      cartons,
		CartonsPerContainer: result.TotalBoxCount,
		TotalVolumeM3:       float64(cartons) * result.Box.VolumeCubicMeters(),
	}
	if cartons <= 0 || result.TotalBoxCount <= 0 {
		return est
	}

	per := result.TotalBoxCount
	est.ContainersExact = float64(cartons) / float64(per)
	est.ContainersNeeded = int(math.Ceil(est.ContainersExact))

	est.CartonsInLast = cartons - (est.ContainersNeeded-1)*per
	est.LastContainerPercent = float64(est.CartonsInLast) / float64(per) * 100.0
	return est
}
