// Package render turns extracted faces into screen-space polygons for the
// viewer: projection, back-face rejection, painter's ordering and colouring.
package render

import (
	"cmp"
	"image/color"
	"slices"

	"sugarcube/internal/camera"
	"sugarcube/internal/mesh"
)

// ScreenFace is a face projected onto the viewport, corners in polygon order.
type ScreenFace struct {
	Points [4][2]float32
	Depth  float32
	Color  color.RGBA
}

// Scene holds the shading settings used when projecting faces.
type Scene struct {
	Shading Shading
	Ramp    Ramp
	Axes    AxisPalette
}

// NewScene returns a scene with the default ramp and palette.
func NewScene() *Scene {
	return &Scene{Shading: ShadeRamp, Ramp: DefaultRamp(), Axes: DefaultAxisPalette()}
}

// Project maps faces onto a w by h viewport. Faces that are clipped or that
// wind clockwise on screen (facing away from the camera) are dropped. The
// result is ordered back to front.
func (s *Scene) Project(cam camera.Camera, faces []mesh.Face, w, h int) []ScreenFace {
	out := make([]ScreenFace, 0, len(faces)/2)
	for _, f := range faces {
		var sf ScreenFace
		visible := true
		var depth float32
		for i, c := range f.ExportOrder() {
			x, y, d, ok := camera.Project(cam, c, w, h)
			if !ok {
				visible = false
				break
			}
			sf.Points[i] = [2]float32{x, y}
			depth += d
		}
		if !visible || !FrontFacing(sf.Points) {
			continue
		}
		sf.Depth = depth / 4
		if s.Shading == ShadeNormal {
			sf.Color = s.Axes.At(f.Normal)
		} else {
			sf.Color = s.Ramp.At(sf.Depth)
		}
		out = append(out, sf)
	}
	SortBackToFront(out)
	return out
}

// FrontFacing reports whether a screen polygon (y pointing down) winds
// counter-clockwise as seen by the viewer.
func FrontFacing(p [4][2]float32) bool {
	ax, ay := p[1][0]-p[0][0], p[1][1]-p[0][1]
	bx, by := p[2][0]-p[0][0], p[2][1]-p[0][1]
	return ax*by-ay*bx < 0
}

// SortBackToFront orders faces by decreasing depth so nearer faces are drawn
// last. Equal depths keep their relative order.
func SortBackToFront(faces []ScreenFace) {
	slices.SortStableFunc(faces, func(a, b ScreenFace) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}
