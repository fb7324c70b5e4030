package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/export"
	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/piwi3910/LoadCalc/internal/scene"
)

// LayoutRequest is the body accepted by every /api/layout endpoint.
type LayoutRequest struct {
	Container     model.Dimensions `json:"container"`
	Box           model.Dimensions `json:"box"`
	Pattern       model.Pattern    `json:"pattern"`
	AllowRotation bool             `json:"allow_rotation"`
}

// Summary is the result card of one calculation.
type Summary struct {
	ID                string            `json:"id"`
	TotalBoxCount     int               `json:"total_box_count"`
	EfficiencyPercent float64           `json:"efficiency_percent"` // rounded to 0.1
	FitCounts         model.FitCounts   `json:"fit_counts"`
	Orientation       model.Orientation `json:"orientation"`
	OrientedBox       model.Dimensions  `json:"oriented_box"`
	TotalLayers       int               `json:"total_layers"`
	ContainerVolume   float64           `json:"container_volume_cm3"`
	ContainerVolumeM3 float64           `json:"container_volume_m3"`
	UsedVolumeM3      float64           `json:"used_volume_m3"`
	WastedVolume      float64           `json:"wasted_volume_cm3"`
	WastePercent      float64           `json:"waste_percent"`
	Clearance         model.Clearance   `json:"clearance"`
}

// LayerSummary describes one layer without repeating its boxes.
type LayerSummary struct {
	Layer  int     `json:"layer"`
	Count  int     `json:"count"`
	Bottom float64 `json:"bottom_cm"`
	Top    float64 `json:"top_cm"`
}

// LayoutResponse is the body returned by POST /api/layout.
type LayoutResponse struct {
	Summary Summary           `json:"summary"`
	Layers  []LayerSummary    `json:"layers"`
	Boxes   []model.PlacedBox `json:"boxes"`
}

// SceneRequest asks for a 3D scene, optionally with one layer highlighted.
type SceneRequest struct {
	LayoutRequest
	Opacity   *float64 `json:"opacity,omitempty"`
	Wireframe bool     `json:"wireframe"`
	Layer     int      `json:"layer"` // 0 shows all layers
}

// CompareRequest asks which container preset holds the most boxes.
type CompareRequest struct {
	Box           model.Dimensions `json:"box"`
	Pattern       model.Pattern    `json:"pattern"`
	AllowRotation bool             `json:"allow_rotation"`
}

// ContainerChoice is one row of a container comparison.
type ContainerChoice struct {
	Preset            model.ContainerPreset `json:"preset"`
	TotalBoxCount     int                   `json:"total_box_count"`
	EfficiencyPercent float64               `json:"efficiency_percent"`
	FitCounts         model.FitCounts       `json:"fit_counts"`
	Orientation       model.Orientation     `json:"orientation"`
}

// CompareResponse lists every preset and names the best one, if any fits.
type CompareResponse struct {
	Containers []ContainerChoice `json:"containers"`
	Best       string            `json:"best,omitempty"`
}

// NewSummary builds the result card for result.
func NewSummary(result model.LayoutResult) Summary {
	return Summary{
		ID:                result.ID,
		TotalBoxCount:     result.TotalBoxCount,
		EfficiencyPercent: result.EfficiencyRounded(),
		FitCounts:         result.FitCounts,
		Orientation:       result.Orientation,
		OrientedBox:       result.OrientedBox(),
		TotalLayers:       result.TotalLayers(),
		ContainerVolume:   result.ContainerVolume(),
		ContainerVolumeM3: model.RoundTo(result.Container.VolumeCubicMeters(), 2),
		UsedVolumeM3:      model.RoundTo(result.UsedVolume()/1_000_000, 2),
		WastedVolume:      result.WastedVolume(),
		WastePercent:      model.RoundTo(result.WastePercent(), 1),
		Clearance:         result.Clearance(),
	}
}

// SummarizeLayers reduces layers to counts and vertical extents.
func SummarizeLayers(result model.LayoutResult) []LayerSummary {
	layers := engine.Layers(result)
	h := result.OrientedBox().Height
	out := make([]LayerSummary, 0, len(layers))
	for _, l := range layers {
		bottom := float64(l.Number-1) * h
		out = append(out, LayerSummary{
			Layer:  l.Number,
			Count:  l.Count,
			Bottom: bottom,
			Top:    bottom + h,
		})
	}
	return out
}

// compute binds a LayoutRequest and runs the calculation. It writes the error
// response itself and reports false when the handler should stop.
func (s *Server) compute(c *gin.Context) (model.LayoutResult, bool) {
	var req LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return model.LayoutResult{}, false
	}
	return s.run(c, req)
}

func (s *Server) run(c *gin.Context, req LayoutRequest) (model.LayoutResult, bool) {
	result, err := s.calc.Compute(req.Container, req.Box, req.Pattern, req.AllowRotation)
	if err != nil {
		abortWithError(c, err)
		return model.LayoutResult{}, false
	}
	s.logger.Info("layout computed",
		"container", req.Container,
		"box", req.Box,
		"pattern", result.Pattern,
		"rotation", req.AllowRotation,
		"boxes", result.TotalBoxCount,
		"efficiency", result.EfficiencyRounded(),
	)
	return result, true
}

func (s *Server) handleLayout(c *gin.Context) {
	result, ok := s.compute(c)
	if !ok {
		return
	}
	boxes := result.PlacedBoxes
	if boxes == nil {
		boxes = []model.PlacedBox{}
	}
	c.JSON(http.StatusOK, LayoutResponse{
		Summary: NewSummary(result),
		Layers:  SummarizeLayers(result),
		Boxes:   boxes,
	})
}

func (s *Server) handleOrientations(c *gin.Context) {
	var req LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	options, err := engine.CompareOrientations(req.Container, req.Box, req.Pattern)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orientations": options})
}

func (s *Server) handleScene(c *gin.Context) {
	var req SceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	result, ok := s.run(c, req.LayoutRequest)
	if !ok {
		return
	}

	var opts []scene.Option
	if req.Opacity != nil {
		opts = append(opts, scene.WithOpacity(*req.Opacity))
	}
	opts = append(opts, scene.WithWireframe(req.Wireframe))

	state := scene.Build(result, opts...)
	defer state.Close()
	if req.Layer > 0 && !state.ShowLayer(req.Layer) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: "layer out of range",
			Code:  CodeBadRequest,
		})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handlePDF(c *gin.Context) {
	result, ok := s.compute(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, result); err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="loading-plan.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (s *Server) handleXLSX(c *gin.Context) {
	result, ok := s.compute(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, result); err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="loading-plan.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *Server) handleChart(c *gin.Context) {
	result, ok := s.compute(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.RenderLayerChart(&buf, result); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": s.presets.All()})
}

func (s *Server) handlePatterns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"patterns": engine.PatternNames()})
}

func (s *Server) handleCompareContainers(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	comparisons, err := s.calc.CompareContainers(s.presets.All(), req.Box, req.Pattern, req.AllowRotation)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := CompareResponse{Containers: make([]ContainerChoice, 0, len(comparisons))}
	for _, cmp := range comparisons {
		resp.Containers = append(resp.Containers, ContainerChoice{
			Preset:            cmp.Preset,
			TotalBoxCount:     cmp.Result.TotalBoxCount,
			EfficiencyPercent: cmp.Result.EfficiencyRounded(),
			FitCounts:         cmp.Result.FitCounts,
			Orientation:       cmp.Result.Orientation,
		})
	}
	if best, ok := engine.BestContainer(comparisons); ok {
		resp.Best = best.Preset.Name
	}
	c.JSON(http.StatusOK, resp)
}
