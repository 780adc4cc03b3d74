package core

import "fmt"

// Size describes the dimensions of a simulation lattice.
type Size struct {
	X int
	Y int
	Z int
}

// Cube returns a Size with all three dimensions set to n.
func Cube(n int) Size { return Size{X: n, Y: n, Z: n} }

// Valid reports whether every dimension is positive.
func (s Size) Valid() bool { return s.X > 0 && s.Y > 0 && s.Z > 0 }

// Volume returns the number of cells a lattice of this size holds.
func (s Size) Volume() int { return s.X * s.Y * s.Z }

// Fits reports whether s fits inside bounds on every axis.
func (s Size) Fits(bounds Size) bool {
	return s.X <= bounds.X && s.Y <= bounds.Y && s.Z <= bounds.Z
}

func (s Size) String() string { return fmt.Sprintf("%dx%dx%d", s.X, s.Y, s.Z) }

// Sim defines the minimal contract a 3D cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Generation() int
	Lattice() *Lattice
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
