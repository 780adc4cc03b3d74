// Package mesh turns lattice occupancy into renderable geometry: per-cell
// instance positions and a culled list of unit quads covering the visible
// surface of the live cells.
package mesh

import (
	"sugarcube/internal/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Face is one visible side of a live cell. Corners are ordered
// (-t1,-t2), (-t1,+t2), (+t1,-t2), (+t1,+t2) relative to the face tangents;
// ExportOrder gives the winding used for polygons.
type Face struct {
	Corners [4]mgl32.Vec3
	Normal  mgl32.Vec3
}

type direction struct {
	normal     mgl32.Vec3
	dx, dy, dz int
}

// directions in emission order: -X, +X, -Y, +Y, -Z, +Z.
var directions = [6]direction{
	{mgl32.Vec3{-1, 0, 0}, -1, 0, 0},
	{mgl32.Vec3{1, 0, 0}, 1, 0, 0},
	{mgl32.Vec3{0, -1, 0}, 0, -1, 0},
	{mgl32.Vec3{0, 1, 0}, 0, 1, 0},
	{mgl32.Vec3{0, 0, -1}, 0, 0, -1},
	{mgl32.Vec3{0, 0, 1}, 0, 0, 1},
}

// Normals returns the six axis normals in emission order.
func Normals() [6]mgl32.Vec3 {
	var out [6]mgl32.Vec3
	for i, d := range directions {
		out[i] = d.normal
	}
	return out
}

// Center returns the world-space centre of cell (x, y, z). The lattice as a
// whole is centred on the origin.
func Center(size core.Size, x, y, z int) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(x) - 0.5*float32(size.X-1),
		float32(y) - 0.5*float32(size.Y-1),
		float32(z) - 0.5*float32(size.Z-1),
	}
}

// tangents picks the half-length tangent pair for an axis normal.
func tangents(normal mgl32.Vec3) (t1, t2 mgl32.Vec3) {
	switch {
	case normal.X() != 0:
		t1, t2 = mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0, 0, 0.5}
	case normal.Y() != 0:
		t1, t2 = mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{0.5, 0, 0}
	default:
		t1, t2 = mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0, 0.5, 0}
	}
	// Faces on the negative side of an axis flip t1 to keep the winding
	// front-facing.
	if normal.X()+normal.Y()+normal.Z() < 0 {
		t1 = t1.Mul(-1)
	}
	return t1, t2
}

// NewFace builds the unit quad on the side of the cell at center facing normal.
func NewFace(center, normal mgl32.Vec3) Face {
	t1, t2 := tangents(normal)
	mid := center.Add(normal.Mul(0.5))
	return Face{
		Corners: [4]mgl32.Vec3{
			mid.Sub(t1).Sub(t2),
			mid.Sub(t1).Add(t2),
			mid.Add(t1).Sub(t2),
			mid.Add(t1).Add(t2),
		},
		Normal: normal,
	}
}

// ExportOrder returns the corners in polygon order (1, 3, 4, 2), which winds
// counter-clockwise when viewed from the side the normal points to.
func (f Face) ExportOrder() [4]mgl32.Vec3 {
	return [4]mgl32.Vec3{f.Corners[0], f.Corners[2], f.Corners[3], f.Corners[1]}
}

// Centroid returns the middle of the face.
func (f Face) Centroid() mgl32.Vec3 {
	return f.Corners[0].Add(f.Corners[3]).Mul(0.5)
}

// Extract walks the lattice (x outer, y middle, z inner) and emits one face
// for every live cell side whose neighbour is empty or outside the lattice.
// Shared sides between two live cells are never emitted.
func Extract(l *core.Lattice) []Face {
	size := l.Size()
	faces := make([]Face, 0, 6*l.Live())
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			for z := 0; z < size.Z; z++ {
				if !l.Get(x, y, z) {
					continue
				}
				center := Center(size, x, y, z)
				for _, d := range directions {
					if l.Get(x+d.dx, y+d.dy, z+d.dz) {
						continue
					}
					faces = append(faces, NewFace(center, d.normal))
				}
			}
		}
	}
	return faces
}

// InstancePositions returns one centre per live cell, in the same scan order
// as Extract, for drawing a shared unit cube at each position.
func InstancePositions(l *core.Lattice) []mgl32.Vec3 {
	size := l.Size()
	out := make([]mgl32.Vec3, 0, l.Live())
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			for z := 0; z < size.Z; z++ {
				if l.Get(x, y, z) {
					out = append(out, Center(size, x, y, z))
				}
			}
		}
	}
	return out
}

// UnitCube returns the six faces of a cube centred on the origin, in the
// same direction order as Extract.
func UnitCube() []Face {
	faces := make([]Face, 0, len(directions))
	for _, d := range directions {
		faces = append(faces, NewFace(mgl32.Vec3{}, d.normal))
	}
	return faces
}
