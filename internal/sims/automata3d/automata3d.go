package automata3d

import (
	"fmt"

	"sugarcube/internal/core"
	"sugarcube/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// maxHistory bounds the fingerprints kept for cycle detection.
var maxHistory = 1 << 16

// World runs a bounded 3D threshold automaton and keeps the per-cell instance
// positions in sync with the lattice.
type World struct {
	cfg Config

	lattice *core.Lattice
	scratch []bool
	rule    RuleConfig

	generation int
	positions  []mgl32.Vec3

	rng *core.RNG

	seen   map[uint64]int
	last   uint64
	stable bool
	period int
}

// New creates a world of the given size with the default rule and seeding.
func New(size core.Size) (*World, error) {
	cfg := DefaultConfig()
	cfg.Size = size
	return NewWithConfig(cfg)
}

// NewWithConfig creates a world from a full configuration and seeds it with the
// configured shape.
func NewWithConfig(cfg Config) (*World, error) {
	lat, err := core.NewLattice(cfg.Size)
	if err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		lattice: lat,
		rule:    cfg.Rule,
		rng:     core.NewRNG(cfg.Seed),
	}
	w.Regenerate()
	return w, nil
}

// Name identifies the simulation.
func (w *World) Name() string { return "automata3d" }

// Size returns the lattice dimensions.
func (w *World) Size() core.Size { return w.lattice.Size() }

// Lattice exposes the current occupancy. The world owns it; callers must not
// keep it across Step, Resize or a reseed.
func (w *World) Lattice() *core.Lattice { return w.lattice }

// Generation returns the generation counter. It starts at 1 after every reseed.
func (w *World) Generation() int { return w.generation }

// Rule returns the active thresholds.
func (w *World) Rule() RuleConfig { return w.rule }

// SetRule replaces the thresholds used by subsequent steps.
func (w *World) SetRule(r RuleConfig) {
	w.rule = r
	w.cfg.Rule = r
}

// Config returns the configuration Regenerate would use.
func (w *World) Config() Config {
	c := w.cfg
	c.Size = w.lattice.Size()
	c.Rule = w.rule
	return c
}

// PendingSize reports the configured size when it differs from the current
// lattice, i.e. a resize the next Regenerate will apply.
func (w *World) PendingSize() (core.Size, bool) {
	return w.cfg.Size, w.cfg.Size != w.lattice.Size()
}

// Params returns the seed-shape settings.
func (w *World) Params() Params { return w.cfg.Params }

// SetParams replaces the seed-shape settings used by Regenerate.
func (w *World) SetParams(p Params) { w.cfg.Params = p }

// SetWorkers changes how many goroutines evaluate a step.
func (w *World) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	w.cfg.Workers = n
}

// Positions returns one centre per live cell for instanced drawing.
func (w *World) Positions() []mgl32.Vec3 { return w.positions }

// Faces extracts the culled surface of the current lattice.
func (w *World) Faces() []mesh.Face { return mesh.Extract(w.lattice) }

// Reset reseeds the RNG and regenerates the configured shape. A zero seed
// falls back to the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.cfg.Seed = seed
	w.rng.Reseed(seed)
	w.Regenerate()
}

// Regenerate rebuilds the lattice at the configured size and re-runs the
// configured seed shape.
func (w *World) Regenerate() bool {
	if w.cfg.Size != w.lattice.Size() && w.cfg.Size.Valid() {
		_ = w.lattice.Resize(w.cfg.Size)
	}
	w.rule = w.cfg.Rule
	p := w.cfg.Params
	switch p.Shape {
	case ShapeCross:
		return w.Cross(p.Thickness, p.OmitX, p.OmitY, p.OmitZ)
	case ShapeCorners:
		return w.Corners(p.CornerThickness)
	case ShapeNoise:
		return w.Noise(p.NoiseArea, 0)
	default:
		return w.Box(p.Start)
	}
}

// Step advances the automaton one generation.
func (w *World) Step() {
	w.scratch = StepLattice(w.lattice, w.rule, w.scratch, w.cfg.Workers)
	w.generation++
	w.refresh()
	w.track()
}

// Resize reallocates the lattice. All cells are cleared and the generation
// returns to 1. On error nothing changes.
func (w *World) Resize(size core.Size) error {
	if err := w.lattice.Resize(size); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	w.cfg.Size = size
	w.scratch = nil
	w.reseeded()
	return nil
}

// Box seeds a solid centred block. See the package-level Box.
func (w *World) Box(cluster core.Size) bool {
	ok := Box(w.lattice, cluster)
	w.reseeded()
	return ok
}

// Cross seeds up to three centred orthogonal bars.
func (w *World) Cross(thickness int, omitX, omitY, omitZ bool) bool {
	ok := Cross(w.lattice, thickness, omitX, omitY, omitZ)
	w.reseeded()
	return ok
}

// Corners seeds the eight corner cubes.
func (w *World) Corners(thickness int) bool {
	ok := Corners(w.lattice, thickness)
	w.reseeded()
	return ok
}

// Noise fills a centred region with coin flips. A non-zero seed restarts the
// world's RNG first; zero continues the current sequence.
func (w *World) Noise(cluster core.Size, seed int64) bool {
	if seed != 0 {
		w.rng.Reseed(seed)
	}
	ok := Noise(w.lattice, cluster, w.rng)
	w.reseeded()
	return ok
}

// Restore installs a saved lattice, generation and rule. The lattice is copied.
func (w *World) Restore(l *core.Lattice, generation int, rule RuleConfig) error {
	if l == nil {
		return fmt.Errorf("restore: %w", core.ErrInvalidSize)
	}
	if err := w.lattice.Resize(l.Size()); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	copy(w.lattice.Cells(), l.Cells())
	w.cfg.Size = l.Size()
	w.scratch = nil
	w.SetRule(rule)
	w.restart(max(generation, 1))
	return nil
}

// Stable reports whether the last step left the lattice unchanged.
func (w *World) Stable() bool { return w.stable }

// Period returns the cycle length once a state has repeated since the last
// reseed, or 0. A still life has period 1. Only the first maxHistory states
// are remembered, so a cycle entered later than that is not reported.
func (w *World) Period() int { return w.period }

func (w *World) reseeded() { w.restart(1) }

// restart resets the generation and the cycle history at the current lattice.
func (w *World) restart(generation int) {
	w.generation = generation
	w.refresh()
	w.stable = false
	w.period = 0
	w.seen = map[uint64]int{}
	w.last = Fingerprint(w.lattice)
	w.seen[w.last] = w.generation
}

func (w *World) refresh() {
	w.positions = mesh.InstancePositions(w.lattice)
}

func (w *World) track() {
	fp := Fingerprint(w.lattice)
	w.stable = fp == w.last
	w.last = fp
	if w.period != 0 {
		return
	}
	if gen, ok := w.seen[fp]; ok {
		w.period = w.generation - gen
		w.seen = nil
		return
	}
	if len(w.seen) < maxHistory {
		w.seen[fp] = w.generation
	}
}

func init() {
	core.Register("automata3d", func(cfg map[string]string) core.Sim {
		w, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			w, _ = NewWithConfig(DefaultConfig())
		}
		return w
	})
}
