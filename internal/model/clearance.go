package model

// Clearance is the unused space left along each container axis after the
// grid of boxes, in cm. Leftover space is not packed further.
type Clearance struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Clearance returns the leftover gap along each axis for the chosen orientation.
// A result with no boxes reports the full container as clearance.
func (r LayoutResult) Clearance() Clearance {
	if !r.Fits() {
		return Clearance{
			Length: r.Container.Length,
			Width:  r.Container.Width,
			Height: r.Container.Height,
		}
	}
	ob := r.OrientedBox()
	return Clearance{
		Length: r.Container.Length - float64(r.FitCounts.AlongLength)*ob.Length,
		Width:  r.Container.Width - float64(r.FitCounts.AlongWidth)*ob.Width,
		Height: r.Container.Height - float64(r.FitCounts.AlongHeight)*ob.Height,
	}
}
