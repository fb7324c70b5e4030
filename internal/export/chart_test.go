package export

import (
	"bytes"
	"testing"

	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLayerChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderLayerChart(&buf, buildTestResult(t)))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Boxes per layer")
	assert.Contains(t, html, "Layer 8")
}

func TestRenderLayerChart_NothingFits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderLayerChart(&buf, buildEmptyResult(t)))
	assert.NotZero(t, buf.Len())
}

func TestRenderOrientationChart(t *testing.T) {
	options, err := engine.CompareOrientations(
		model.NewDimensions(1158, 228, 252),
		model.NewDimensions(60, 40, 30),
		model.PatternNormal)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderOrientationChart(&buf, options))
	assert.Contains(t, buf.String(), "Best: LHW with 798 boxes")

	assert.Error(t, RenderOrientationChart(&buf, nil))
}
