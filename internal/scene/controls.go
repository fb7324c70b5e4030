package scene

// Opacity returns the opacity applied to every carton mesh.
func (s *RenderState) Opacity() float64 { return s.opacity }

// Wireframe reports whether cartons are drawn as wireframes.
func (s *RenderState) Wireframe() bool { return s.wireframe }

// ActiveLayer returns the highlighted layer, or 0 when all layers are shown.
func (s *RenderState) ActiveLayer() int { return s.activeLayer }

// SetOpacity updates every mesh; values are clamped to [0, 1].
func (s *RenderState) SetOpacity(v float64) {
	if s.closed {
		return
	}
	s.opacity = clampOpacity(v)
	for i := range s.Meshes {
		s.Meshes[i].Material.Opacity = s.opacity
	}
}

func (s *RenderState) SetWireframe(on bool) {
	if s.closed {
		return
	}
	s.wireframe = on
	for i := range s.Meshes {
		s.Meshes[i].Material.Wireframe = on
	}
}

// ShowLayer isolates one layer: its meshes are visible and highlighted, the
// rest hidden. It reports false and leaves the scene unchanged when no mesh
// belongs to the layer.
func (s *RenderState) ShowLayer(number int) bool {
	if s.closed {
		return false
	}
	found := false
	for _, m := range s.Meshes {
		if m.Layer == number {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	s.activeLayer = number
	for i := range s.Meshes {
		on := s.Meshes[i].Layer == number
		s.Meshes[i].Visible = on
		s.Meshes[i].Highlighted = on
	}
	return true
}

// ShowAll makes every mesh visible again and clears highlighting.
func (s *RenderState) ShowAll() {
	if s.closed {
		return
	}
	s.activeLayer = 0
	for i := range s.Meshes {
		s.Meshes[i].Visible = true
		s.Meshes[i].Highlighted = false
	}
}

func (s *RenderState) VisibleMeshes() []Mesh {
	out := make([]Mesh, 0, len(s.Meshes))
	for _, m := range s.Meshes {
		if m.Visible {
			out = append(out, m)
		}
	}
	return out
}

// ResetCamera puts the camera back at its default pose looking at the
// container centre.
func (s *RenderState) ResetCamera() {
	s.Camera = Camera{
		Position: DefaultCameraPosition,
		FOV:      DefaultFOV,
		Near:     cameraNear,
		Far:      cameraFar,
	}
}

// Close releases the meshes. A closed state ignores further updates; calling
// Close twice is safe.
func (s *RenderState) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.Meshes = nil
	s.Container.Edges = nil
	s.activeLayer = 0
}

func (s *RenderState) Closed() bool { return s.closed }
