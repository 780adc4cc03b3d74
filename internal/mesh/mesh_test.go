package mesh

import (
	"math"
	"testing"

	"sugarcube/internal/core"

	"github.com/go-gl/mathgl/mgl32"
)

func lattice(t testing.TB, size core.Size, live ...[3]int) *core.Lattice {
	t.Helper()
	l, err := core.NewLattice(size)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	for _, p := range live {
		l.Set(p[0], p[1], p[2], true)
	}
	return l
}

func TestSingleCellEmitsSixFaces(t *testing.T) {
	l := lattice(t, core.Cube(3), [3]int{1, 1, 1})
	faces := Extract(l)
	if len(faces) != 6 {
		t.Fatalf("faces = %d, want 6", len(faces))
	}
	normals := Normals()
	seen := map[mgl32.Vec3]bool{}
	for i, f := range faces {
		if f.Normal != normals[i] {
			t.Fatalf("face %d normal = %v, want %v", i, f.Normal, normals[i])
		}
		seen[f.Normal] = true
	}
	if len(seen) != 6 {
		t.Fatalf("distinct normals = %d, want 6", len(seen))
	}
}

func TestSharedFaceCulled(t *testing.T) {
	l := lattice(t, core.Cube(4), [3]int{1, 1, 1}, [3]int{2, 1, 1})
	faces := Extract(l)
	if len(faces) != 10 {
		t.Fatalf("faces = %d, want 10", len(faces))
	}
	// The shared side sits at x = 0 after centring; nothing may lie on it.
	for _, f := range faces {
		if f.Normal.X() != 0 && mgl32.Abs(f.Centroid().X()) < 1e-5 {
			t.Fatalf("internal face emitted: %+v", f)
		}
	}
}

func TestBoundaryCellsExposeOuterFaces(t *testing.T) {
	l := lattice(t, core.Cube(2))
	for i := range l.Cells() {
		l.Cells()[i] = true
	}
	if got := len(Extract(l)); got != 24 {
		t.Fatalf("full 2x2x2 faces = %d, want 24", got)
	}
}

func TestWindingMatchesNormal(t *testing.T) {
	for _, f := range UnitCube() {
		v := f.ExportOrder()
		cross := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
		if cross.Dot(f.Normal) <= 0 {
			t.Fatalf("normal %v: export winding gives %v", f.Normal, cross)
		}
		if cross.Normalize().Sub(f.Normal).Len() > 1e-5 {
			t.Fatalf("normal %v: winding not parallel, got %v", f.Normal, cross)
		}
	}
}

func TestFaceCoversUnitSide(t *testing.T) {
	center := mgl32.Vec3{2, -1, 0.5}
	for _, n := range Normals() {
		f := NewFace(center, n)
		want := center.Add(n.Mul(0.5))
		if f.Centroid().Sub(want).Len() > 1e-5 {
			t.Fatalf("normal %v: centroid %v, want %v", n, f.Centroid(), want)
		}
		for _, c := range f.Corners {
			if d := c.Sub(want).Dot(n); mgl32.Abs(d) > 1e-5 {
				t.Fatalf("normal %v: corner %v off the face plane", n, c)
			}
			off := c.Sub(want)
			if mgl32.Abs(off.Len()-float32(math.Sqrt(0.5))) > 1e-5 {
				t.Fatalf("normal %v: corner %v not at a unit-square corner", n, c)
			}
		}
	}
}

func TestCenterIsOriginCentred(t *testing.T) {
	size := core.Size{X: 3, Y: 4, Z: 5}
	lo := Center(size, 0, 0, 0)
	hi := Center(size, 2, 3, 4)
	if lo.Add(hi).Len() > 1e-6 {
		t.Fatalf("corners %v and %v not symmetric about the origin", lo, hi)
	}
	if lo != (mgl32.Vec3{-1, -1.5, -2}) {
		t.Fatalf("lo = %v", lo)
	}
}

func TestInstancePositionsOnePerLiveCell(t *testing.T) {
	l := lattice(t, core.Cube(4), [3]int{0, 0, 0}, [3]int{3, 1, 2}, [3]int{0, 0, 1})
	got := InstancePositions(l)
	if len(got) != 3 {
		t.Fatalf("positions = %d, want 3", len(got))
	}
	// x outer, y middle, z inner.
	want := []mgl32.Vec3{
		Center(l.Size(), 0, 0, 0),
		Center(l.Size(), 0, 0, 1),
		Center(l.Size(), 3, 1, 2),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func BenchmarkExtract(b *testing.B) {
	l := lattice(b, core.Cube(32))
	rng := core.NewRNG(5)
	for i := range l.Cells() {
		l.Cells()[i] = rng.Bool()
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Extract(l)
	}
}
