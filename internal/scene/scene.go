// Package scene turns a layout into a renderer-agnostic 3D scene description.
//
// A RenderState is owned by its caller and is not safe for concurrent use.
// Coordinates are in meters with the origin at the container centre.
package scene

import (
	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
)

const cmPerMeter = 100.0

const (
	DefaultOpacity = 0.8
	DefaultFOV     = 75.0
	cameraNear     = 0.1
	cameraFar      = 1000.0
)

// BackgroundColor is the scene clear color.
const BackgroundColor model.Color = "#f0f0f0"

// DefaultCameraPosition looks at the container from the upper front corner.
var DefaultCameraPosition = Vec3{X: 2, Y: 2, Z: 2}

// Vec3 is a point or extent in meters. Z is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Camera is a perspective camera aimed at Target.
type Camera struct {
	Position Vec3    `json:"position"`
	Target   Vec3    `json:"target"`
	FOV      float64 `json:"fov"`
	Near     float64 `json:"near"`
	Far      float64 `json:"far"`
}

// Material sets how a mesh is shaded.
type Material struct {
	Color     model.Color `json:"color"`
	Opacity   float64     `json:"opacity"`
	Wireframe bool        `json:"wireframe"`
}

// Mesh is one carton drawn as a box centred on Center.
type Mesh struct {
	BoxIndex    int      `json:"box_index"`
	Layer       int      `json:"layer"` // 1-based
	Center      Vec3     `json:"center"`
	Size        Vec3     `json:"size"`
	Material    Material `json:"material"`
	Visible     bool     `json:"visible"`
	Highlighted bool     `json:"highlighted"`
}

// Edge is a line segment of the container outline.
type Edge struct {
	From Vec3 `json:"from"`
	To   Vec3 `json:"to"`
}

// ContainerOutline is the wireframe of the container walls.
type ContainerOutline struct {
	Size  Vec3        `json:"size"`
	Color model.Color `json:"color"`
	Edges []Edge      `json:"edges"`
}

// RenderState is everything a 3D front end needs to draw one layout.
type RenderState struct {
	LayoutID    string           `json:"layout_id"`
	Background  model.Color      `json:"background"`
	Camera      Camera           `json:"camera"`
	Container   ContainerOutline `json:"container"`
	Meshes      []Mesh           `json:"meshes"`
	TotalLayers int              `json:"total_layers"`

	opacity     float64
	wireframe   bool
	activeLayer int
	closed      bool
}

// Option customizes a RenderState at build time.
type Option func(*RenderState)

func WithOpacity(v float64) Option {
	return func(s *RenderState) { s.opacity = clampOpacity(v) }
}

func WithWireframe(on bool) Option {
	return func(s *RenderState) { s.wireframe = on }
}

// Build creates a scene for result. Every placed box becomes one mesh.
func Build(result model.LayoutResult, opts ...Option) *RenderState {
	s := &RenderState{
		LayoutID:   result.ID,
		Background: BackgroundColor,
		opacity:    DefaultOpacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ResetCamera()

	c := result.Container
	s.Container = ContainerOutline{
		Size:  toMeters(c),
		Color: model.ContainerColor,
		Edges: boxEdges(toMeters(c)),
	}

	layers := engine.Layers(result)
	s.TotalLayers = engine.TotalLayers(c.Height, result.OrientedBox().Height)
	s.Meshes = make([]Mesh, 0, len(result.PlacedBoxes))
	for _, layer := range layers {
		for _, b := range layer.Boxes {
			s.Meshes = append(s.Meshes, Mesh{
				BoxIndex: b.Index,
				Layer:    layer.Number,
				Center:   centerOf(b, c),
				Size:     toMeters(b.Size),
				Material: Material{
					Color:     b.Color,
					Opacity:   s.opacity,
					Wireframe: s.wireframe,
				},
				Visible: true,
			})
		}
	}
	return s
}

// centerOf converts a box corner in cm to its centre in meters relative to
// the container centre.
func centerOf(b model.PlacedBox, container model.Dimensions) Vec3 {
	return Vec3{
		X: (b.Position.X+b.Size.Length/2)/cmPerMeter - container.Length/(2*cmPerMeter),
		Y: (b.Position.Y+b.Size.Width/2)/cmPerMeter - container.Width/(2*cmPerMeter),
		Z: (b.Position.Z+b.Size.Height/2)/cmPerMeter - container.Height/(2*cmPerMeter),
	}
}

func toMeters(d model.Dimensions) Vec3 {
	return Vec3{X: d.Length / cmPerMeter, Y: d.Width / cmPerMeter, Z: d.Height / cmPerMeter}
}

// boxEdges returns the 12 edges of a box of the given size centred on the
// origin.
func boxEdges(size Vec3) []Edge {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	corner := func(i int) Vec3 {
		v := Vec3{X: -hx, Y: -hy, Z: -hz}
		if i&1 != 0 {
			v.X = hx
		}
		if i&2 != 0 {
			v.Y = hy
		}
		if i&4 != 0 {
			v.Z = hz
		}
		return v
	}
	edges := make([]Edge, 0, 12)
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, Edge{From: corner(i), To: corner(i | bit)})
			}
		}
	}
	return edges
}

func clampOpacity(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
