package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"strings"
	"testing"

	"sugarcube/internal/core"
	"sugarcube/internal/mesh"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
	"github.com/qmuntal/gltf"
)

func twoCells(t *testing.T) *core.Lattice {
	t.Helper()
	l, err := core.NewLattice(core.Cube(3))
	if err != nil {
		t.Fatal(err)
	}
	l.Set(1, 1, 1, true)
	l.Set(1, 2, 1, true)
	return l
}

func TestWriteOBJLayout(t *testing.T) {
	faces := mesh.Extract(twoCells(t))
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, faces); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	var v, vn, f []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "v "):
			v = append(v, line)
		case strings.HasPrefix(line, "vn "):
			vn = append(vn, line)
		case strings.HasPrefix(line, "f "):
			f = append(f, line)
		}
	}
	if len(v) != 40 || len(vn) != 40 || len(f) != 10 {
		t.Fatalf("v=%d vn=%d f=%d, want 40/40/10", len(v), len(vn), len(f))
	}
	if f[0] != "f 1//1 3//3 4//4 2//2" {
		t.Fatalf("first face = %q", f[0])
	}
	if f[1] != "f 5//5 7//7 8//8 6//6" {
		t.Fatalf("second face = %q", f[1])
	}
	if vn[0] != "vn -1.000000  0.000000  0.000000" {
		t.Fatalf("first normal = %q", vn[0])
	}
}

func TestWriteOBJEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, nil); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	if strings.Contains(buf.String(), "\nf ") {
		t.Fatal("empty face list must not produce faces")
	}
}

func decodeGLB(t *testing.T, data []byte) *gltf.Document {
	t.Helper()
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func TestWriteGLBSurface(t *testing.T) {
	faces := mesh.Extract(twoCells(t))
	var buf bytes.Buffer
	if err := WriteGLB(&buf, faces); err != nil {
		t.Fatalf("WriteGLB: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Fatal("output is not a binary glTF container")
	}

	doc := decodeGLB(t, buf.Bytes())
	if len(doc.Meshes) != 1 || len(doc.Nodes) != 1 {
		t.Fatalf("meshes=%d nodes=%d, want 1/1", len(doc.Meshes), len(doc.Nodes))
	}
	prim := doc.Meshes[0].Primitives[0]
	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	if int(pos.Count) != 4*len(faces) {
		t.Fatalf("positions = %d, want %d", pos.Count, 4*len(faces))
	}
	idx := doc.Accessors[*prim.Indices]
	if int(idx.Count) != 6*len(faces) {
		t.Fatalf("indices = %d, want %d", idx.Count, 6*len(faces))
	}
}

func TestWriteInstancedGLB(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {-0.5, 2, 1}}
	var buf bytes.Buffer
	if err := WriteInstancedGLB(&buf, positions); err != nil {
		t.Fatalf("WriteInstancedGLB: %v", err)
	}
	doc := decodeGLB(t, buf.Bytes())
	if len(doc.Meshes) != 1 {
		t.Fatalf("meshes = %d, want one shared cube", len(doc.Meshes))
	}
	if len(doc.Nodes) != len(positions) {
		t.Fatalf("nodes = %d, want %d", len(doc.Nodes), len(positions))
	}
	last := doc.Nodes[2].Translation
	if last[0] != -0.5 || last[1] != 2 || last[2] != 1 {
		t.Fatalf("translation = %v", last)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	l, _ := core.NewLattice(core.Size{X: 5, Y: 3, Z: 7})
	rng := core.NewRNG(11)
	for i := range l.Cells() {
		l.Cells()[i] = rng.Bool()
	}
	in := Snapshot{Lattice: l, Generation: 42, Thresholds: [4]int{4, 5, 2, 6}}

	var buf bytes.Buffer
	if err := SaveSnapshot(&buf, in); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	out, err := LoadSnapshot(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if out.Lattice.Size() != l.Size() || out.Generation != 42 || out.Thresholds != in.Thresholds {
		t.Fatalf("header mismatch: %v gen %d %v", out.Lattice.Size(), out.Generation, out.Thresholds)
	}
	if !slices.Equal(out.Lattice.Cells(), l.Cells()) {
		t.Fatal("cells differ after round trip")
	}
}

func TestSnapshotRejectsDamage(t *testing.T) {
	l, _ := core.NewLattice(core.Cube(4))
	l.Set(1, 2, 3, true)
	var buf bytes.Buffer
	if err := SaveSnapshot(&buf, Snapshot{Lattice: l, Generation: 1}); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	if _, err := LoadSnapshot(bytes.NewReader([]byte("NOPE!"))); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("bad magic err = %v", err)
	}
	if _, err := LoadSnapshot(bytes.NewReader(data[:20])); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("truncated err = %v", err)
	}

	// Checksum starts after magic(5) version(1) dims(12) generation(4) thresholds(16).
	sum := slices.Clone(data)
	sum[38] ^= 0xff
	if _, err := LoadSnapshot(bytes.NewReader(sum)); !errors.Is(err, ErrChecksum) {
		t.Fatalf("checksum err = %v", err)
	}

	ver := slices.Clone(data)
	ver[5] = 9
	if _, err := LoadSnapshot(bytes.NewReader(ver)); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("version err = %v", err)
	}
}

func rawSnapshot(t *testing.T, hdr snapshotHeader, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString(snapshotMagic)
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		t.Fatal(err)
	}
	buf.Write(payload)
	return buf.Bytes()
}

func TestSnapshotRejectsOversizedPayload(t *testing.T) {
	hdr := snapshotHeader{Version: snapshotVersion, X: 1, Y: 1, Z: 1, Length: 0xF0000000}
	data := rawSnapshot(t, hdr, []byte("tiny"))
	if _, err := LoadSnapshot(bytes.NewReader(data)); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("oversized length err = %v", err)
	}

	hdr.Length = 64
	data = rawSnapshot(t, hdr, []byte("short"))
	if _, err := LoadSnapshot(bytes.NewReader(data)); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("truncated payload err = %v", err)
	}
}

func TestSnapshotRejectsWrongDecodedLength(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	// A 4x4x4 lattice needs 8 packed bytes; this frame decodes to 4096.
	packed := make([]byte, 4096)
	payload := enc.EncodeAll(packed, nil)
	_ = enc.Close()

	hdr := snapshotHeader{
		Version:  snapshotVersion,
		X:        4,
		Y:        4,
		Z:        4,
		Checksum: xxhash.Sum64(packed),
		Length:   uint32(len(payload)),
	}
	data := rawSnapshot(t, hdr, payload)
	if _, err := LoadSnapshot(bytes.NewReader(data)); !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("wrong decoded length err = %v", err)
	}
}
