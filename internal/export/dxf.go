package export

import (
	"fmt"

	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names. Each loading layer gets its own DXF layer, named by
// LayerName, so CAD users can toggle them one at a time.
const (
	DXFContainerLayer = "CONTAINER"
	DXFSideViewLayer  = "SIDE_VIEW"
)

// sideViewGap separates the side view from the top view, in cm.
const sideViewGap = 50.0

var dxfLayerColors = []color.ColorNumber{
	color.Red,
	color.Yellow,
	color.Green,
	color.Cyan,
	color.Blue,
	color.Magenta,
}

// LayerName returns the DXF layer name used for a 1-based loading layer.
func LayerName(number int) string {
	return fmt.Sprintf("SAP_%02d", number)
}

// ExportDXF writes box outlines to a DXF drawing in cm. The top view of each
// loading layer is drawn at its floor elevation on its own DXF layer; a side
// view of the front row sits below the container outline.
func ExportDXF(path string, result model.LayoutResult) error {
	if err := result.Container.Validate("container"); err != nil {
		return err
	}

	d := dxf.NewDrawing()
	c := result.Container

	if _, err := d.AddLayer(DXFContainerLayer, color.Blue, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add DXF layer %s: %w", DXFContainerLayer, err)
	}
	if err := rect(d, 0, 0, 0, c.Length, c.Width); err != nil {
		return err
	}

	layers := engine.Layers(result)
	for i, layer := range layers {
		name := LayerName(layer.Number)
		if _, err := d.AddLayer(name, dxfLayerColors[i%len(dxfLayerColors)], dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add DXF layer %s: %w", name, err)
		}
		for _, b := range layer.Boxes {
			if err := rect(d, b.Position.X, b.Position.Y, b.Position.Z, b.Size.Length, b.Size.Width); err != nil {
				return err
			}
		}
	}

	// Side view: length along X, height along Y, placed below the top view.
	if _, err := d.AddLayer(DXFSideViewLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add DXF layer %s: %w", DXFSideViewLayer, err)
	}
	baseY := -(c.Height + sideViewGap)
	if err := rect(d, 0, baseY, 0, c.Length, c.Height); err != nil {
		return err
	}
	for _, b := range result.PlacedBoxes {
		if b.Position.Y > 0 {
			continue
		}
		if err := rect(d, b.Position.X, baseY+b.Position.Z, 0, b.Size.Length, b.Size.Height); err != nil {
			return err
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF %s: %w", path, err)
	}
	return nil
}

// rect draws an axis-aligned rectangle as four lines on the current layer.
func rect(d *drawing.Drawing, x, y, z, w, h float64) error {
	corners := [5][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y}}
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[i+1]
		if _, err := d.Line(a[0], a[1], z, b[0], b[1], z); err != nil {
			return fmt.Errorf("failed to draw DXF line: %w", err)
		}
	}
	return nil
}
