package automata3d

import (
	"encoding/binary"

	"sugarcube/internal/core"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the lattice dimensions and packed occupancy. Two lattices
// with the same size and cells always share a fingerprint.
func Fingerprint(l *core.Lattice) uint64 {
	size := l.Size()
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(size.X))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(size.Y))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(size.Z))

	d := xxhash.New()
	_, _ = d.Write(hdr[:])
	_, _ = d.Write(core.PackBits(l.Cells()))
	return d.Sum64()
}

// Fingerprint hashes the current state of the world.
func (w *World) Fingerprint() uint64 { return Fingerprint(w.lattice) }
