package export

import (
	"fmt"
	"os"

	"sugarcube/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

func writeFile(path string, write func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}

// SaveOBJ writes faces to an OBJ file at path.
func SaveOBJ(path string, faces []mesh.Face) error {
	return writeFile(path, func(f *os.File) error { return WriteOBJ(f, faces) })
}

// SaveGLB writes the surface mesh to a binary glTF file at path.
func SaveGLB(path string, faces []mesh.Face) error {
	return writeFile(path, func(f *os.File) error { return WriteGLB(f, faces) })
}

// SaveInstancedGLB writes one cube node per position to path.
func SaveInstancedGLB(path string, positions []mgl32.Vec3) error {
	return writeFile(path, func(f *os.File) error { return WriteInstancedGLB(f, positions) })
}

// SaveSnapshotFile writes s to path.
func SaveSnapshotFile(path string, s Snapshot) error {
	return writeFile(path, func(f *os.File) error { return SaveSnapshot(f, s) })
}

// LoadSnapshotFile reads a snapshot from path.
func LoadSnapshotFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	s, err := LoadSnapshot(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
