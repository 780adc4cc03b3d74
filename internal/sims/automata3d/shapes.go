package automata3d

import "sugarcube/internal/core"

// Shape names a seed pattern.
type Shape string

const (
	ShapeBox     Shape = "box"
	ShapeCross   Shape = "cross"
	ShapeCorners Shape = "corners"
	ShapeNoise   Shape = "noise"
)

// Shapes lists the seed patterns in HUD order.
var Shapes = []Shape{ShapeBox, ShapeCross, ShapeCorners, ShapeNoise}

// centered returns the half-open range [lo, hi) of a band of the given extent
// centred in dim. The offset is truncated from a half-scaled float, so when
// dim-extent is odd the band is one cell wider than extent.
func centered(dim, extent int) (lo, hi int) {
	off := int(float64(dim-extent) * 0.5)
	return off, dim - off
}

func positive(s core.Size) bool { return s.X > 0 && s.Y > 0 && s.Z > 0 }

// Box clears l and fills a solid block of the given size centred in it. It
// returns false, leaving l empty, when the block does not fit.
func Box(l *core.Lattice, cluster core.Size) bool {
	l.Clear()
	size := l.Size()
	if !cluster.Fits(size) {
		return false
	}
	if !positive(cluster) {
		return true
	}
	x0, x1 := centered(size.X, cluster.X)
	y0, y1 := centered(size.Y, cluster.Y)
	z0, z1 := centered(size.Z, cluster.Z)
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			for z := z0; z < z1; z++ {
				l.Set(x, y, z, true)
			}
		}
	}
	return true
}

// Cross clears l and fills three orthogonal bars of the given thickness
// through its centre. The X bar runs along X, so its cells sit in the centred
// band on both Y and Z. Each bar can be omitted. It returns false, leaving l
// empty, when thickness exceeds any dimension.
func Cross(l *core.Lattice, thickness int, omitX, omitY, omitZ bool) bool {
	l.Clear()
	size := l.Size()
	if !core.Cube(thickness).Fits(size) {
		return false
	}
	if thickness <= 0 {
		return true
	}
	x0, x1 := centered(size.X, thickness)
	y0, y1 := centered(size.Y, thickness)
	z0, z1 := centered(size.Z, thickness)
	for x := 0; x < size.X; x++ {
		inX := x >= x0 && x < x1
		for y := 0; y < size.Y; y++ {
			inY := y >= y0 && y < y1
			for z := 0; z < size.Z; z++ {
				inZ := z >= z0 && z < z1
				live := (!omitX && inY && inZ) ||
					(!omitY && inX && inZ) ||
					(!omitZ && inX && inY)
				if live {
					l.Set(x, y, z, true)
				}
			}
		}
	}
	return true
}

// Corners clears l and fills the eight corner cubes: a cell is live when it is
// within thickness cells of a boundary on every axis. It returns false,
// leaving l empty, when thickness exceeds any dimension.
func Corners(l *core.Lattice, thickness int) bool {
	l.Clear()
	size := l.Size()
	if !core.Cube(thickness).Fits(size) {
		return false
	}
	if thickness <= 0 {
		return true
	}
	near := func(v, dim int) bool { return v < thickness || v >= dim-thickness }
	for x := 0; x < size.X; x++ {
		if !near(x, size.X) {
			continue
		}
		for y := 0; y < size.Y; y++ {
			if !near(y, size.Y) {
				continue
			}
			for z := 0; z < size.Z; z++ {
				if near(z, size.Z) {
					l.Set(x, y, z, true)
				}
			}
		}
	}
	return true
}

// Noise clears l and flips a fair coin for every cell of the centred region,
// scanning x outer, y middle, z inner. The region and the fit check match Box.
func Noise(l *core.Lattice, cluster core.Size, rng *core.RNG) bool {
	l.Clear()
	size := l.Size()
	if !cluster.Fits(size) {
		return false
	}
	if !positive(cluster) {
		return true
	}
	x0, x1 := centered(size.X, cluster.X)
	y0, y1 := centered(size.Y, cluster.Y)
	z0, z1 := centered(size.Z, cluster.Z)
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			for z := z0; z < z1; z++ {
				l.Set(x, y, z, rng.Bool())
			}
		}
	}
	return true
}
