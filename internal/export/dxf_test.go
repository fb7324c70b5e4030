package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_Lines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")
	result := buildTestResult(t)
	require.NoError(t, ExportDXF(path, result))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	lines := 0
	for _, ent := range drawing.Entities() {
		if _, ok := ent.(*entity.Line); ok {
			lines++
		}
	}
	// Two outlines, every box in the top views and the 19 x 8 front row.
	want := 4 + 4*result.TotalBoxCount + 4 + 4*19*8
	assert.Equal(t, want, lines)
}

func TestExportDXF_LayerPerLoadingLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")
	require.NoError(t, ExportDXF(path, buildTestResult(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	for n := 1; n <= 8; n++ {
		assert.True(t, strings.Contains(content, LayerName(n)), "missing DXF layer %s", LayerName(n))
	}
	assert.False(t, strings.Contains(content, LayerName(9)))
	assert.Contains(t, content, DXFContainerLayer)
	assert.Contains(t, content, DXFSideViewLayer)
}

func TestExportDXF_InvalidContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dxf")
	err := ExportDXF(path, model.LayoutResult{})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)
}

func TestLayerName(t *testing.T) {
	assert.Equal(t, "SAP_01", LayerName(1))
	assert.Equal(t, "SAP_12", LayerName(12))
}
