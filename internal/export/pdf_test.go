package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
)

// buildTestResult computes the reefer demo layout: 760 boxes in 8 layers.
func buildTestResult(t *testing.T) model.LayoutResult {
	t.Helper()
	result, err := engine.ComputeLayout(
		model.NewDimensions(1158, 228, 252),
		model.NewDimensions(60, 40, 30),
		model.PatternNormal, false)
	if err != nil {
		t.Fatalf("ComputeLayout returned error: %v", err)
	}
	return result
}

func buildEmptyResult(t *testing.T) model.LayoutResult {
	t.Helper()
	result, err := engine.ComputeLayout(
		model.NewDimensions(50, 50, 50),
		model.NewDimensions(60, 40, 30),
		model.PatternNormal, false)
	if err != nil {
		t.Fatalf("ComputeLayout returned error: %v", err)
	}
	return result
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.pdf")

	err := ExportPDF(path, buildTestResult(t))
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestBuildPDF_PageCount(t *testing.T) {
	pdf, err := buildPDF(buildTestResult(t))
	if err != nil {
		t.Fatalf("buildPDF returned error: %v", err)
	}
	// Summary, side view and one page per layer.
	if got := pdf.PageCount(); got != 10 {
		t.Errorf("PageCount() = %d, want 10", got)
	}
}

func TestExportPDF_NothingFits(t *testing.T) {
	pdf, err := buildPDF(buildEmptyResult(t))
	if err != nil {
		t.Fatalf("buildPDF returned error: %v", err)
	}
	if got := pdf.PageCount(); got != 1 {
		t.Errorf("PageCount() = %d, want 1", got)
	}
}

func TestExportPDF_InvalidContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	if err := ExportPDF(path, model.LayoutResult{}); err == nil {
		t.Fatal("expected error for zero container, got nil")
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, buildTestResult(t)); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:8])
	}
}

func TestExportPDF_RotatedLayout(t *testing.T) {
	result, err := engine.ComputeLayout(
		model.NewDimensions(1158, 228, 252),
		model.NewDimensions(60, 40, 30),
		model.PatternNormal, true)
	if err != nil {
		t.Fatalf("ComputeLayout returned error: %v", err)
	}

	pdf, err := buildPDF(result)
	if err != nil {
		t.Fatalf("buildPDF returned error: %v", err)
	}
	if got := pdf.PageCount(); got != 2+result.FitCounts.AlongHeight {
		t.Errorf("PageCount() = %d, want %d", got, 2+result.FitCounts.AlongHeight)
	}
}

func TestLayerFloor(t *testing.T) {
	result := buildTestResult(t)
	if got := layerFloor(result, 1); got != 0 {
		t.Errorf("layerFloor(1) = %v, want 0", got)
	}
	if got := layerFloor(result, 4); got != 90 {
		t.Errorf("layerFloor(4) = %v, want 90", got)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 7},
		{30, 15, 6},
		{10, 5, 5},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
