package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"sugarcube/internal/core"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

const (
	snapshotMagic   = "SCUBE"
	snapshotVersion = 1

	// maxSnapshotCells bounds the allocation a header may request.
	maxSnapshotCells = 1 << 30

	// minDecoderMemory keeps the decoder limit above zstd's 1 KiB minimum
	// window for tiny lattices.
	minDecoderMemory = 64 << 10
)

// compressBound is the largest zstd frame SaveSnapshot can produce for n
// input bytes: the library's block bound plus frame header slack.
func compressBound(n int) int {
	bound := n + n>>8 + 64
	if n < 128<<10 {
		bound += (128<<10 - n) >> 11
	}
	return bound
}

var (
	// ErrBadSnapshot is returned for truncated, malformed or unsupported files.
	ErrBadSnapshot = errors.New("bad snapshot")
	// ErrChecksum is returned when the occupancy does not match its stored hash.
	ErrChecksum = errors.New("snapshot checksum mismatch")
)

// Snapshot is a saved lattice together with the generation and rule
// thresholds (eL, eU, fL, fU) it was taken under.
type Snapshot struct {
	Lattice    *core.Lattice
	Generation int
	Thresholds [4]int
}

type snapshotHeader struct {
	Version    uint8
	X, Y, Z    uint32
	Generation uint32
	Thresholds [4]int32
	Checksum   uint64
	Length     uint32
}

// SaveSnapshot writes s in the .scube format: magic, little-endian header,
// then the zstd-compressed LSB-first occupancy bits.
func SaveSnapshot(w io.Writer, s Snapshot) error {
	if s.Lattice == nil {
		return fmt.Errorf("save snapshot: %w", ErrBadSnapshot)
	}
	packed := core.PackBits(s.Lattice.Cells())

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	payload := enc.EncodeAll(packed, nil)
	_ = enc.Close()

	size := s.Lattice.Size()
	hdr := snapshotHeader{
		Version:    snapshotVersion,
		X:          uint32(size.X),
		Y:          uint32(size.Y),
		Z:          uint32(size.Z),
		Generation: uint32(max(s.Generation, 0)),
		Checksum:   xxhash.Sum64(packed),
		Length:     uint32(len(payload)),
	}
	for i, v := range s.Thresholds {
		hdr.Thresholds[i] = int32(v)
	}

	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(snapshotMagic)
	_ = binary.Write(bw, binary.LittleEndian, hdr)
	_, _ = bw.Write(payload)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot and verifies its
// dimensions, payload length and checksum.
func LoadSnapshot(r io.Reader) (Snapshot, error) {
	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if !bytes.Equal(magic, []byte(snapshotMagic)) {
		return Snapshot{}, fmt.Errorf("%w: magic %q", ErrBadSnapshot, magic)
	}

	var hdr snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return Snapshot{}, fmt.Errorf("%w: header: %v", ErrBadSnapshot, err)
	}
	if hdr.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: version %d", ErrBadSnapshot, hdr.Version)
	}
	size := core.Size{X: int(hdr.X), Y: int(hdr.Y), Z: int(hdr.Z)}
	if !size.Valid() || uint64(hdr.X)*uint64(hdr.Y)*uint64(hdr.Z) > maxSnapshotCells {
		return Snapshot{}, fmt.Errorf("%w: size %s", ErrBadSnapshot, size)
	}

	want := (size.Volume() + 7) / 8
	if int64(hdr.Length) > int64(compressBound(want)) {
		return Snapshot{}, fmt.Errorf("%w: payload length %d for %s", ErrBadSnapshot, hdr.Length, size)
	}
	payload, err := io.ReadAll(io.LimitReader(r, int64(hdr.Length)))
	if err != nil || len(payload) != int(hdr.Length) {
		return Snapshot{}, fmt.Errorf("%w: payload: %d of %d bytes", ErrBadSnapshot, len(payload), hdr.Length)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(max(want, minDecoderMemory))))
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	defer dec.Close()
	packed, err := dec.DecodeAll(payload, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: decompress: %v", ErrBadSnapshot, err)
	}
	if len(packed) != want {
		return Snapshot{}, fmt.Errorf("%w: %d bytes for %s", ErrBadSnapshot, len(packed), size)
	}
	if xxhash.Sum64(packed) != hdr.Checksum {
		return Snapshot{}, ErrChecksum
	}
	cells, ok := core.UnpackBits(packed, size.Volume())
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %d bytes for %s", ErrBadSnapshot, len(packed), size)
	}

	lat, err := core.NewLattice(size)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if _, err := lat.ReplaceAll(cells); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	s := Snapshot{Lattice: lat, Generation: int(hdr.Generation)}
	for i, v := range hdr.Thresholds {
		s.Thresholds[i] = int(v)
	}
	return s, nil
}
