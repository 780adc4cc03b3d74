package core

// PackBits packs occupancy flags LSB-first into bytes, eight cells per byte.
func PackBits(cells []bool) []byte {
	out := make([]byte, (len(cells)+7)/8)
	for i, c := range cells {
		if c {
			out[i>>3] |= 1 << (uint(i) & 7)
		}
	}
	return out
}

// UnpackBits expands packed bytes back into n occupancy flags. It reports false
// when packed is too short to hold n cells.
func UnpackBits(packed []byte, n int) ([]bool, bool) {
	if len(packed) < (n+7)/8 {
		return nil, false
	}
	cells := make([]bool, n)
	for i := range cells {
		cells[i] = (packed[i>>3]>>(uint(i)&7))&1 == 1
	}
	return cells, true
}
