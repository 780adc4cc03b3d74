package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shading selects how face colours are computed.
type Shading int

const (
	// ShadeRamp colours faces by their distance from the camera.
	ShadeRamp Shading = iota
	// ShadeNormal colours faces by the axis they face.
	ShadeNormal
)

func (s Shading) String() string {
	if s == ShadeNormal {
		return "normal"
	}
	return "ramp"
}

// Ramp blends from Near to Far by view depth. Depth in [-1, 1] is mapped
// through depth*Scale+Offset and clamped to [0, 1].
type Ramp struct {
	Near   color.RGBA
	Far    color.RGBA
	Scale  float32
	Offset float32
}

// DefaultRamp returns the red near/far ramp the viewer starts with.
func DefaultRamp() Ramp {
	return Ramp{
		Near:   color.RGBA{R: 255, A: 255},
		Far:    color.RGBA{R: 51, A: 255},
		Scale:  2,
		Offset: 0.5,
	}
}

// At returns the colour for a normalized device depth.
func (r Ramp) At(depth float32) color.RGBA {
	t := clamp01(float64(depth*r.Scale + r.Offset))
	return lerpRGBA(r.Near, r.Far, t)
}

// AxisPalette colours faces by axis. Faces on the negative side of an axis
// are drawn darker.
type AxisPalette struct {
	X, Y, Z color.RGBA
}

// DefaultAxisPalette returns the red/green/blue axis colours.
func DefaultAxisPalette() AxisPalette {
	return AxisPalette{
		X: color.RGBA{R: 230, G: 80, B: 80, A: 255},
		Y: color.RGBA{R: 90, G: 210, B: 110, A: 255},
		Z: color.RGBA{R: 80, G: 130, B: 230, A: 255},
	}
}

// At returns the colour for an axis-aligned normal.
func (p AxisPalette) At(normal mgl32.Vec3) color.RGBA {
	col := p.Z
	switch {
	case normal.X() != 0:
		col = p.X
	case normal.Y() != 0:
		col = p.Y
	}
	if normal.X()+normal.Y()+normal.Z() < 0 {
		return scaleRGBA(col, 0.6)
	}
	return col
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func scaleRGBA(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: scaleComponent(c.R, factor),
		G: scaleComponent(c.G, factor),
		B: scaleComponent(c.B, factor),
		A: c.A,
	}
}

func scaleComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
