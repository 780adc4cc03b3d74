package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a lattice dimension is not positive.
	ErrInvalidSize = errors.New("invalid lattice size")
	// ErrBufferSize is returned when a replacement buffer does not match the lattice volume.
	ErrBufferSize = errors.New("occupancy buffer length mismatch")
)

// Lattice stores a 3D grid of occupancy flags with x varying fastest.
type Lattice struct {
	size  Size
	cells []bool
}

// NewLattice allocates an empty lattice with the given dimensions.
func NewLattice(size Size) (*Lattice, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}
	return &Lattice{size: size, cells: make([]bool, size.Volume())}, nil
}

// Size returns the lattice dimensions.
func (l *Lattice) Size() Size { return l.size }

// Cells exposes the backing slice. Callers must not retain it across a
// ReplaceAll or Resize.
func (l *Lattice) Cells() []bool { return l.cells }

// Index returns the linear slice index for coordinates (x, y, z).
func (l *Lattice) Index(x, y, z int) int { return z*l.size.X*l.size.Y + y*l.size.X + x }

// Coords is the inverse of Index.
func (l *Lattice) Coords(i int) (x, y, z int) {
	plane := l.size.X * l.size.Y
	z = i / plane
	rem := i - z*plane
	y = rem / l.size.X
	x = rem - y*l.size.X
	return x, y, z
}

// InBounds reports whether the coordinates address a stored cell.
func (l *Lattice) InBounds(x, y, z int) bool {
	return x >= 0 && x < l.size.X &&
		y >= 0 && y < l.size.Y &&
		z >= 0 && z < l.size.Z
}

// Get returns the occupancy at (x, y, z). Anything outside the lattice reads
// as empty.
func (l *Lattice) Get(x, y, z int) bool {
	if !l.InBounds(x, y, z) {
		return false
	}
	return l.cells[l.Index(x, y, z)]
}

// Set writes the occupancy at (x, y, z) and reports whether the write happened.
func (l *Lattice) Set(x, y, z int, alive bool) bool {
	if !l.InBounds(x, y, z) {
		return false
	}
	l.cells[l.Index(x, y, z)] = alive
	return true
}

// Resize reallocates storage for the new dimensions. All cells are cleared.
// On error the lattice is left untouched.
func (l *Lattice) Resize(size Size) error {
	if !size.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}
	l.size = size
	l.cells = make([]bool, size.Volume())
	return nil
}

// ReplaceAll publishes next as the new occupancy buffer in a single swap and
// returns the buffer it displaced so the caller can reuse it.
func (l *Lattice) ReplaceAll(next []bool) ([]bool, error) {
	if len(next) != len(l.cells) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(next), len(l.cells))
	}
	prev := l.cells
	l.cells = next
	return prev, nil
}

// Clear empties every cell.
func (l *Lattice) Clear() {
	clear(l.cells)
}

// Live counts the occupied cells.
func (l *Lattice) Live() int {
	n := 0
	for _, c := range l.cells {
		if c {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the lattice.
func (l *Lattice) Clone() *Lattice {
	return &Lattice{size: l.size, cells: append([]bool(nil), l.cells...)}
}
