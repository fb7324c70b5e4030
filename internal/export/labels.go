package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each carton label's QR code.
type LabelInfo struct {
	PlanID string  `json:"plan"`
	Box    int     `json:"box"` // 1-based loading sequence
	Layer  int     `json:"layer"`
	Length float64 `json:"length_cm"`
	Width  float64 `json:"width_cm"`
	Height float64 `json:"height_cm"`
	X      float64 `json:"x_cm"`
	Y      float64 `json:"y_cm"`
	Z      float64 `json:"z_cm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per placed carton in
// loading order, on Avery 5160 sheets.
func ExportLabels(path string, result model.LayoutResult) error {
	pdf, err := buildLabels(result)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write labels %s: %w", path, err)
	}
	return nil
}

// WriteLabels writes the label sheets to w.
func WriteLabels(w io.Writer, result model.LayoutResult) error {
	pdf, err := buildLabels(result)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write labels: %w", err)
	}
	return nil
}

func buildLabels(result model.LayoutResult) (*fpdf.Fpdf, error) {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return nil, fmt.Errorf("no boxes placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return nil, fmt.Errorf("failed to render label for box %d: %w", label.Box, err)
		}
	}
	return pdf, nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PlanID, info.Box)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("Box %d", info.Box), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f x %.0f cm", info.Length, info.Width, info.Height)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Layer %d", info.Layer), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	pos := fmt.Sprintf("@ (%.0f, %.0f, %.0f)", info.X, info.Y, info.Z)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+16.5)
	pdf.CellFormat(textW, 3, "Plan "+info.PlanID, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos returns one label per placed box, ordered by layer and
// then by loading sequence.
func CollectLabelInfos(result model.LayoutResult) []LabelInfo {
	var labels []LabelInfo
	for _, layer := range engine.Layers(result) {
		for _, b := range layer.Boxes {
			labels = append(labels, LabelInfo{
				PlanID: result.ID,
				Box:    b.Index + 1,
				Layer:  layer.Number,
				Length: b.Size.Length,
				Width:  b.Size.Width,
				Height: b.Size.Height,
				X:      b.Position.X,
				Y:      b.Position.Y,
				Z:      b.Position.Z,
			})
		}
	}
	return labels
}
