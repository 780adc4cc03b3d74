package core

import (
	"errors"
	"slices"
	"testing"
)

func TestNewLatticeRejectsNonPositive(t *testing.T) {
	for _, size := range []Size{{0, 4, 4}, {4, -1, 4}, {4, 4, 0}} {
		if _, err := NewLattice(size); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewLattice(%v) err = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestIndexCoordsRoundTrip(t *testing.T) {
	l, err := NewLattice(Size{X: 3, Y: 4, Z: 5})
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	for i := 0; i < l.Size().Volume(); i++ {
		x, y, z := l.Coords(i)
		if got := l.Index(x, y, z); got != i {
			t.Fatalf("Index(Coords(%d)) = %d", i, got)
		}
	}
	if got := l.Index(1, 0, 0); got != 1 {
		t.Fatalf("x must vary fastest, Index(1,0,0) = %d", got)
	}
	if got := l.Index(0, 0, 1); got != 12 {
		t.Fatalf("Index(0,0,1) = %d, want 12", got)
	}
}

func TestOutOfRangeReadsEmpty(t *testing.T) {
	l, _ := NewLattice(Cube(2))
	for i := range l.Cells() {
		l.Cells()[i] = true
	}
	for _, p := range [][3]int{{-1, 0, 0}, {0, 2, 0}, {0, 0, -5}, {2, 2, 2}} {
		if l.Get(p[0], p[1], p[2]) {
			t.Fatalf("Get%v outside the lattice must read empty", p)
		}
		if l.Set(p[0], p[1], p[2], true) {
			t.Fatalf("Set%v outside the lattice must be rejected", p)
		}
	}
}

func TestResizeClearsAndReportsSize(t *testing.T) {
	l, _ := NewLattice(Cube(3))
	l.Set(1, 1, 1, true)

	if err := l.Resize(Cube(4)); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if l.Size() != Cube(4) {
		t.Fatalf("size = %v, want 4x4x4", l.Size())
	}
	count := 0
	for z := 0; z < 4; z++ {
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if l.Get(x, y, z) {
					t.Fatalf("cell (%d,%d,%d) live after resize", x, y, z)
				}
				count++
			}
		}
	}
	if count != 64 {
		t.Fatalf("visited %d cells, want 64", count)
	}
}

func TestResizeInvalidLeavesLatticeUntouched(t *testing.T) {
	l, _ := NewLattice(Cube(3))
	l.Set(2, 2, 2, true)
	if err := l.Resize(Size{X: 3, Y: 0, Z: 3}); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("err = %v, want ErrInvalidSize", err)
	}
	if l.Size() != Cube(3) || !l.Get(2, 2, 2) {
		t.Fatal("failed resize must not change the lattice")
	}
}

func TestReplaceAllSwapsBuffers(t *testing.T) {
	l, _ := NewLattice(Cube(2))
	next := make([]bool, 8)
	next[3] = true

	prev, err := l.ReplaceAll(next)
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if len(prev) != 8 || l.Live() != 1 || !l.Cells()[3] {
		t.Fatal("ReplaceAll must publish next and return the old buffer")
	}
	if _, err := l.ReplaceAll(make([]bool, 7)); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("err = %v, want ErrBufferSize", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l, _ := NewLattice(Cube(2))
	l.Set(0, 1, 0, true)
	c := l.Clone()
	l.Clear()
	if !c.Get(0, 1, 0) || l.Live() != 0 {
		t.Fatal("clone must not share storage")
	}
}

func TestPackBitsRoundTrip(t *testing.T) {
	cells := []bool{true, false, false, true, true, false, true, false, true, true, false}
	packed := PackBits(cells)
	if len(packed) != 2 {
		t.Fatalf("len = %d, want 2", len(packed))
	}
	if packed[0] != 0b01011001 {
		t.Fatalf("first byte = %08b, want LSB-first packing", packed[0])
	}
	got, ok := UnpackBits(packed, len(cells))
	if !ok || !slices.Equal(got, cells) {
		t.Fatalf("UnpackBits = %v, %v", got, ok)
	}
	if _, ok := UnpackBits(packed[:1], len(cells)); ok {
		t.Fatal("short input must be rejected")
	}
}
