// Package export writes extracted geometry and lattice state to files.
package export

import (
	"bufio"
	"fmt"
	"io"

	"sugarcube/internal/mesh"
)

// WriteOBJ writes faces as a Wavefront OBJ text mesh. Every face contributes
// four position and four normal lines, and one quad referencing them in
// (1, 3, 4, 2) order so the polygon winds with its normal.
func WriteOBJ(w io.Writer, faces []mesh.Face) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "# vertices\n")
	for _, f := range faces {
		for _, c := range f.Corners {
			fmt.Fprintf(bw, "v %f  %f  %f\n", c.X(), c.Y(), c.Z())
		}
	}

	fmt.Fprint(bw, "\n# vertex normals\n")
	for _, f := range faces {
		n := f.Normal
		for range f.Corners {
			fmt.Fprintf(bw, "vn %f  %f  %f\n", n.X(), n.Y(), n.Z())
		}
	}

	fmt.Fprint(bw, "\n# faces\n")
	for i := range faces {
		base := 4 * i
		a, b, c, d := base+1, base+3, base+4, base+2
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d %d//%d\n", a, a, b, b, c, c, d, d)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}
