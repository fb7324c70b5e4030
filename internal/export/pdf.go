// Package export writes layout results to PDF, spreadsheet, DXF and HTML
// chart formats.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

const footerText = "Generated by LoadCalc - Container Loading Calculator"

// viewRect is one box outline in a 2D projection, in container cm.
type viewRect struct {
	x, y, w, h float64
	color      model.Color
	label      string
}

// ExportPDF writes a loading report to path: a summary page, a side view of
// all layers and a top view of every layer.
func ExportPDF(path string, result model.LayoutResult) error {
	pdf, err := buildPDF(result)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", path, err)
	}
	return nil
}

// WritePDF writes the same report as ExportPDF to w.
func WritePDF(w io.Writer, result model.LayoutResult) error {
	pdf, err := buildPDF(result)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func buildPDF(result model.LayoutResult) (*fpdf.Fpdf, error) {
	if err := result.Container.Validate("container"); err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("Container loading plan", true)

	layers := engine.Layers(result)

	pdf.AddPage()
	renderSummaryPage(pdf, result, layers)

	if result.Fits() {
		pdf.AddPage()
		renderSideView(pdf, result, layers)

		for _, layer := range layers {
			pdf.AddPage()
			renderLayerPage(pdf, result, layer, len(layers))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}
	return pdf, nil
}

// renderLayerPage draws the top view (length x width) of one layer.
func renderLayerPage(pdf *fpdf.Fpdf, result model.LayoutResult, layer model.Layer, totalLayers int) {
	c := result.Container
	title := fmt.Sprintf("Layer %d of %d - %d boxes", layer.Number, totalLayers, layer.Count)
	stats := fmt.Sprintf("Top view | Container: %.0f x %.0f cm | Layer height: %.0f - %.0f cm",
		c.Length, c.Width, layerFloor(result, layer.Number), layerFloor(result, layer.Number+1))
	renderPageHeader(pdf, title, stats)

	rects := make([]viewRect, 0, len(layer.Boxes))
	for _, b := range layer.Boxes {
		rects = append(rects, viewRect{
			x: b.Position.X, y: b.Position.Y,
			w: b.Size.Length, h: b.Size.Width,
			color: b.Color,
			label: fmt.Sprintf("%d", b.Index+1),
		})
	}
	offsetY, canvasH := drawView(pdf, c.Length, c.Width, rects)

	box := result.OrientedBox()
	drawLegend(pdf, offsetY+canvasH+6, []legendItem{
		{color: model.ContainerColor, text: fmt.Sprintf("Container (%.0f x %.0f cm)", c.Length, c.Width)},
		{color: firstColor(layer.Boxes), text: fmt.Sprintf("Box (%.0f x %.0f cm)", box.Length, box.Width)},
	})
}

// renderSideView draws every box projected onto the length x height plane
// with the container floor at the bottom.
func renderSideView(pdf *fpdf.Fpdf, result model.LayoutResult, layers []model.Layer) {
	c := result.Container
	title := fmt.Sprintf("All layers - %d layers, %d boxes", len(layers), result.TotalBoxCount)
	stats := fmt.Sprintf("Side view | Container: %.0f x %.0f cm", c.Length, c.Height)
	renderPageHeader(pdf, title, stats)

	var rects []viewRect
	for _, layer := range layers {
		for _, b := range layer.Boxes {
			// Only the front row is visible from the side.
			if b.Position.Y > 0 {
				continue
			}
			rects = append(rects, viewRect{
				x: b.Position.X, y: c.Height - b.Position.Z - b.Size.Height,
				w: b.Size.Length, h: b.Size.Height,
				color: b.Color,
			})
		}
	}
	offsetY, canvasH := drawView(pdf, c.Length, c.Height, rects)

	items := []legendItem{{color: model.ContainerColor, text: fmt.Sprintf("Container (%.0f x %.0f cm)", c.Length, c.Height)}}
	for i, layer := range layers {
		if i == 3 {
			items = append(items, legendItem{color: "#888888", text: fmt.Sprintf("+ %d more layers", len(layers)-3)})
			break
		}
		items = append(items, legendItem{color: firstColor(layer.Boxes), text: fmt.Sprintf("Layer %d (%d boxes)", layer.Number, layer.Count)})
	}
	drawLegend(pdf, offsetY+canvasH+6, items)
}

func renderPageHeader(pdf *fpdf.Fpdf, title, stats string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")
}

// drawView scales a spanX x spanY container outline and its boxes into the
// drawing area. It returns the top offset and height of the drawn canvas.
func drawView(pdf *fpdf.Fpdf, spanX, spanY float64, rects []viewRect) (float64, float64) {
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/spanX, drawHeight/spanY)
	canvasW := spanX * scale
	canvasH := spanY * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(248, 248, 248)
	pdf.SetDrawColor(model.ContainerColor.RGB())
	pdf.SetLineWidth(0.5)
	pdf.SetDashPattern([]float64{2, 2}, 0)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")
	pdf.SetDashPattern([]float64{}, 0)

	pdf.SetAlpha(0.7, "Normal")
	for _, r := range rects {
		rw := r.w * scale
		rh := r.h * scale
		rx := offsetX + r.x*scale
		ry := offsetY + r.y*scale

		pdf.SetFillColor(r.color.RGB())
		pdf.SetDrawColor(51, 51, 51)
		pdf.SetLineWidth(0.2)
		pdf.Rect(rx, ry, rw, rh, "FD")

		if r.label != "" && rw > 6 && rh > 4 {
			pdf.SetFont("Helvetica", "", labelFontSize(rw, rh))
			pdf.SetTextColor(0, 0, 0)
			lw := pdf.GetStringWidth(r.label)
			if lw < rw-1 {
				pdf.SetXY(rx+(rw-lw)/2, ry+rh/2-1.5)
				pdf.CellFormat(lw, 3, r.label, "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetAlpha(1, "Normal")

	drawDimensionAnnotations(pdf, spanX, spanY, offsetX, offsetY, canvasW, canvasH)
	return offsetY, canvasH
}

// drawDimensionAnnotations labels the outline's horizontal span below it and
// its vertical span to its left.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, spanX, spanY, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f cm", spanX)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f cm", spanY)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

type legendItem struct {
	color model.Color
	text  string
}

func drawLegend(pdf *fpdf.Fpdf, startY float64, items []legendItem) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	xPos := marginLeft
	maxX := pageWidth - marginRight

	for _, item := range items {
		labelW := pdf.GetStringWidth(item.text) + 6
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(item.color.RGB())
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, item.text, "", 0, "L", false, 0, "")
		xPos += labelW + 4
	}
}

// renderSummaryPage draws the result card and the per-layer breakdown.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.LayoutResult, layers []model.Layer) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Container Loading Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Result", "", 0, "L", false, 0, "")
	y += 9

	c := result.Container
	oriented := result.OrientedBox()
	clearance := result.Clearance()
	fit := result.FitCounts

	summaryItems := []struct {
		label string
		value string
	}{
		{"Container", fmt.Sprintf("%.0f x %.0f x %.0f cm (%.2f m³)", c.Length, c.Width, c.Height, c.VolumeCubicMeters())},
		{"Box", fmt.Sprintf("%.0f x %.0f x %.0f cm", result.Box.Length, result.Box.Width, result.Box.Height)},
		{"Orientation", fmt.Sprintf("%s (%.0f x %.0f x %.0f cm)", result.Orientation, oriented.Length, oriented.Width, oriented.Height)},
		{"Pattern", string(result.Pattern)},
		{"Fit (L x W x H)", fmt.Sprintf("%d x %d x %d", fit.AlongLength, fit.AlongWidth, fit.AlongHeight)},
		{"Total Boxes", fmt.Sprintf("%d", result.TotalBoxCount)},
		{"Layers", fmt.Sprintf("%d (%d boxes per layer)", len(layers), fit.PerLayer())},
		{"Used Volume", fmt.Sprintf("%.2f m³", result.UsedVolume()/1e6)},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.EfficiencyRounded())},
		{"Remaining Space", fmt.Sprintf("%.1f%%", model.RoundTo(result.WastePercent(), 1))},
		{"Clearance (L x W x H)", fmt.Sprintf("%.1f x %.1f x %.1f cm", clearance.Length, clearance.Width, clearance.Height)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if !result.Fits() {
		y += 5
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "The box does not fit in the container.", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		renderFooter(pdf)
		return
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Layer Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 30, 60}
	headers := []string{"Layer", "Boxes", "Height (cm)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, layer := range layers {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", layer.Number),
			fmt.Sprintf("%d", layer.Count),
			fmt.Sprintf("%.0f - %.0f", layerFloor(result, layer.Number), layerFloor(result, layer.Number+1)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	renderFooter(pdf)
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footerText, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// layerFloor returns the height in cm at which the given 1-based layer starts.
func layerFloor(result model.LayoutResult, number int) float64 {
	return float64(number-1) * result.OrientedBox().Height
}

func firstColor(boxes []model.PlacedBox) model.Color {
	if len(boxes) == 0 || boxes[0].Color == "" {
		return model.DefaultPalette[0]
	}
	return boxes[0].Color
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 7
	case minDim > 10:
		return 6
	default:
		return 5
	}
}
