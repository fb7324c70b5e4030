package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the loading plan workbook.
const (
	SheetSummary = "Summary"
	SheetLayers  = "Layers"
	SheetBoxes   = "Boxes"
)

// ExportXLSX writes a loading plan workbook with summary, layer and box
// sheets to path.
func ExportXLSX(path string, result model.LayoutResult) error {
	f, err := buildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}
	return nil
}

// WriteXLSX writes the workbook to w.
func WriteXLSX(w io.Writer, result model.LayoutResult) error {
	f, err := buildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(result model.LayoutResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetLayers, SheetBoxes} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	layers := engine.Layers(result)
	writers := []func(*excelize.File, model.LayoutResult, []model.Layer, int) error{
		writeSummarySheet,
		writeLayersSheet,
		writeBoxesSheet,
	}
	for _, write := range writers {
		if err := write(f, result, layers, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSummarySheet(f *excelize.File, result model.LayoutResult, layers []model.Layer, headerStyle int) error {
	c := result.Container
	b := result.Box
	o := result.OrientedBox()
	fit := result.FitCounts

	rows := [][]interface{}{
		{"Field", "Value"},
		{"Plan ID", result.ID},
		{"Container length (cm)", c.Length},
		{"Container width (cm)", c.Width},
		{"Container height (cm)", c.Height},
		{"Container volume (m³)", c.VolumeCubicMeters()},
		{"Box length (cm)", b.Length},
		{"Box width (cm)", b.Width},
		{"Box height (cm)", b.Height},
		{"Pattern", string(result.Pattern)},
		{"Rotation allowed", result.RotationAllowed},
		{"Orientation", result.Orientation.String()},
		{"Oriented box (cm)", fmt.Sprintf("%.1f x %.1f x %.1f", o.Length, o.Width, o.Height)},
		{"Fit along length", fit.AlongLength},
		{"Fit along width", fit.AlongWidth},
		{"Fit along height", fit.AlongHeight},
		{"Total boxes", result.TotalBoxCount},
		{"Layers", len(layers)},
		{"Used volume (m³)", result.UsedVolume() / 1e6},
		{"Efficiency (%)", result.EfficiencyRounded()},
		{"Remaining space (%)", model.RoundTo(result.WastePercent(), 1)},
	}
	if err := writeRows(f, SheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", SheetSummary, err)
	}
	return f.SetColWidth(SheetSummary, "A", "B", 26)
}

func writeLayersSheet(f *excelize.File, result model.LayoutResult, layers []model.Layer, headerStyle int) error {
	h := result.OrientedBox().Height
	rows := [][]interface{}{{"Layer", "Boxes", "From (cm)", "To (cm)"}}
	for _, l := range layers {
		rows = append(rows, []interface{}{l.Number, l.Count, float64(l.Number-1) * h, float64(l.Number) * h})
	}
	if err := writeRows(f, SheetLayers, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetLayers, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", SheetLayers, err)
	}
	return nil
}

func writeBoxesSheet(f *excelize.File, _ model.LayoutResult, layers []model.Layer, headerStyle int) error {
	rows := [][]interface{}{{"Box", "Layer", "X (cm)", "Y (cm)", "Z (cm)", "Length (cm)", "Width (cm)", "Height (cm)", "Color"}}
	for _, l := range layers {
		for _, b := range l.Boxes {
			rows = append(rows, []interface{}{
				b.Index + 1, l.Number,
				b.Position.X, b.Position.Y, b.Position.Z,
				b.Size.Length, b.Size.Width, b.Size.Height,
				b.Color.Hex(),
			})
		}
	}
	if err := writeRows(f, SheetBoxes, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetBoxes, "A1", "I1", headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", SheetBoxes, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
