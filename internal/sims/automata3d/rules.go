package automata3d

import (
	"fmt"
	"strconv"
	"strings"

	"sugarcube/internal/core"

	"golang.org/x/sync/errgroup"
)

// MaxNeighbors is the size of the 3D Moore neighbourhood.
const MaxNeighbors = 26

// RuleConfig holds the survival band (E) and the birth band (F). Bands outside
// 0..MaxNeighbors are accepted; they just never match.
type RuleConfig struct {
	ELower int
	EUpper int
	FLower int
	FUpper int
}

// DefaultRule is the 4/5/2/6 rule the viewer starts with.
func DefaultRule() RuleConfig {
	return RuleConfig{ELower: 4, EUpper: 5, FLower: 2, FUpper: 6}
}

// Next returns the state of a cell in the following generation.
func (r RuleConfig) Next(alive bool, neighbors int) bool {
	if alive {
		return neighbors >= r.ELower && neighbors <= r.EUpper
	}
	return neighbors >= r.FLower && neighbors <= r.FUpper
}

// String renders the rule as "eL/eU/fL/fU".
func (r RuleConfig) String() string {
	return fmt.Sprintf("%d/%d/%d/%d", r.ELower, r.EUpper, r.FLower, r.FUpper)
}

// Thresholds returns the bands as [eL, eU, fL, fU].
func (r RuleConfig) Thresholds() [4]int {
	return [4]int{r.ELower, r.EUpper, r.FLower, r.FUpper}
}

// RuleFromThresholds is the inverse of Thresholds.
func RuleFromThresholds(t [4]int) RuleConfig {
	return RuleConfig{ELower: t[0], EUpper: t[1], FLower: t[2], FUpper: t[3]}
}

// ParseRule parses the "eL/eU/fL/fU" form produced by String.
func ParseRule(s string) (RuleConfig, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 4 {
		return RuleConfig{}, fmt.Errorf("rule %q: want eL/eU/fL/fU", s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RuleConfig{}, fmt.Errorf("rule %q: %w", s, err)
		}
		vals[i] = v
	}
	return RuleConfig{ELower: vals[0], EUpper: vals[1], FLower: vals[2], FUpper: vals[3]}, nil
}

// CountNeighbors counts live cells in the Moore neighbourhood of (x, y, z),
// excluding the cell itself. Positions outside the lattice never count.
func CountNeighbors(l *core.Lattice, x, y, z int) int {
	size := l.Size()
	cells := l.Cells()
	x0, x1 := max(x-1, 0), min(x+1, size.X-1)
	y0, y1 := max(y-1, 0), min(y+1, size.Y-1)
	z0, z1 := max(z-1, 0), min(z+1, size.Z-1)

	n := 0
	for iz := z0; iz <= z1; iz++ {
		for iy := y0; iy <= y1; iy++ {
			row := iz*size.X*size.Y + iy*size.X
			for ix := x0; ix <= x1; ix++ {
				if ix == x && iy == y && iz == z {
					continue
				}
				if cells[row+ix] {
					n++
				}
			}
		}
	}
	return n
}

// StepLattice advances l by one generation. The next state is computed into
// scratch (reallocated if it has the wrong length) and published with a single
// ReplaceAll, so every transition reads the pre-step state. The displaced
// buffer is returned for reuse on the next call.
//
// With workers > 1 the lattice is split into z-slabs evaluated concurrently;
// each goroutine writes only its own slab of the scratch buffer.
func StepLattice(l *core.Lattice, rule RuleConfig, scratch []bool, workers int) []bool {
	size := l.Size()
	if len(scratch) != size.Volume() {
		scratch = make([]bool, size.Volume())
	}

	if workers <= 1 || size.Z < 2 {
		stepSlab(l, rule, scratch, 0, size.Z)
	} else {
		if workers > size.Z {
			workers = size.Z
		}
		per := (size.Z + workers - 1) / workers
		var g errgroup.Group
		g.SetLimit(workers)
		for z0 := 0; z0 < size.Z; z0 += per {
			z1 := min(z0+per, size.Z)
			g.Go(func() error {
				stepSlab(l, rule, scratch, z0, z1)
				return nil
			})
		}
		_ = g.Wait()
	}

	// scratch was sized from l above, so the length always matches.
	prev, _ := l.ReplaceAll(scratch)
	return prev
}

func stepSlab(l *core.Lattice, rule RuleConfig, next []bool, z0, z1 int) {
	size := l.Size()
	cells := l.Cells()
	for z := z0; z < z1; z++ {
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				idx := l.Index(x, y, z)
				next[idx] = rule.Next(cells[idx], CountNeighbors(l, x, y, z))
			}
		}
	}
}
