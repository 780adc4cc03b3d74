// Package camera provides the orbiting view used to look at the lattice: an
// orthographic camera and a perspective one behind a common interface.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Isometric orientation the viewer starts from.
const (
	IsoAzimuth  float32 = 45
	IsoAltitude float32 = 35.264

	maxAltitude float32 = 89.9
	zoomFactor  float32 = 1.1
)

// Camera orbits a target point and yields the matrices for drawing.
type Camera interface {
	View() mgl32.Mat4
	Projection(aspect float32) mgl32.Mat4

	Azimuth() float32
	Altitude() float32
	SetAzimuth(deg float32)
	SetAltitude(deg float32)
	Orbit(dAzimuth, dAltitude float32)

	// Zoom moves closer for positive steps and away for negative ones.
	Zoom(steps float32)
}

type orbit struct {
	target   mgl32.Vec3
	azimuth  float32
	altitude float32
}

func newOrbit() orbit {
	return orbit{azimuth: IsoAzimuth, altitude: IsoAltitude}
}

func (o *orbit) Azimuth() float32  { return o.azimuth }
func (o *orbit) Altitude() float32 { return o.altitude }

// SetAzimuth wraps deg into [0, 360).
func (o *orbit) SetAzimuth(deg float32) {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	o.azimuth = deg
}

// SetAltitude clamps deg to just short of the poles.
func (o *orbit) SetAltitude(deg float32) {
	o.altitude = mgl32.Clamp(deg, -maxAltitude, maxAltitude)
}

func (o *orbit) Orbit(dAzimuth, dAltitude float32) {
	o.SetAzimuth(o.azimuth + dAzimuth)
	o.SetAltitude(o.altitude + dAltitude)
}

// view looks at the target from distance along the orbit direction.
func (o *orbit) view(distance float32) mgl32.Mat4 {
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(o.azimuth)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(o.altitude)))
	eye := rot.Mul4x1(mgl32.Vec4{0, 0, -distance, 1}).Vec3()
	return mgl32.LookAtV(o.target.Add(eye), o.target, mgl32.Vec3{0, 1, 0})
}

// Ortho is an orthographic camera. Zoom is the fraction of the viewport
// height one world unit covers.
type Ortho struct {
	orbit
	zoom      float32
	near, far float32
}

// NewOrtho returns an isometric orthographic camera.
func NewOrtho() *Ortho {
	return &Ortho{orbit: newOrbit(), zoom: 0.03, near: -45, far: 45}
}

func (c *Ortho) View() mgl32.Mat4 { return c.view(1) }

func (c *Ortho) Projection(aspect float32) mgl32.Mat4 {
	half := 0.5 / c.zoom
	return mgl32.Ortho(-half*aspect, half*aspect, -half, half, c.near, c.far)
}

func (c *Ortho) Zoom(steps float32) {
	c.zoom = max(c.zoom*pow(zoomFactor, steps), 0.001)
}

// Scale returns the current zoom factor.
func (c *Ortho) Scale() float32 { return c.zoom }

// Perspective is a pinhole camera at a fixed distance from the target.
type Perspective struct {
	orbit
	fov       float32
	distance  float32
	near, far float32
}

// NewPerspective returns a perspective camera with the isometric orientation.
func NewPerspective() *Perspective {
	return &Perspective{orbit: newOrbit(), fov: 45, distance: 20, near: 5, far: 100}
}

func (c *Perspective) View() mgl32.Mat4 { return c.view(c.distance) }

func (c *Perspective) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, c.near, c.far)
}

func (c *Perspective) Zoom(steps float32) {
	c.distance = mgl32.Clamp(c.distance/pow(zoomFactor, steps), c.near+1, c.far-1)
}

// Distance returns how far the eye sits from the target.
func (c *Perspective) Distance() float32 { return c.distance }

// Project maps a world point to pixel coordinates on a w by h viewport with y
// pointing down. depth is the normalized device depth in [-1, 1]; ok is false
// for points behind the eye or outside the clip volume in depth.
func Project(c Camera, p mgl32.Vec3, w, h int) (x, y, depth float32, ok bool) {
	aspect := float32(w) / float32(max(h, 1))
	clip := c.Projection(aspect).Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) * 0.5 * float32(w)
	y = (1 - ndc.Y()) * 0.5 * float32(h)
	return x, y, ndc.Z(), ndc.Z() >= -1 && ndc.Z() <= 1
}

func pow(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}
