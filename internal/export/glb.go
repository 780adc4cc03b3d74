package export

import (
	"fmt"
	"io"

	"sugarcube/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const generator = "sugarcube"

func cubeMaterial() *gltf.Material {
	pbr := &gltf.PBRMetallicRoughness{
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	return &gltf.Material{Name: "Cell", PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}
}

// facePrimitive writes the faces' vertex data into doc and returns an indexed
// triangle primitive. Each quad becomes triangles (1,3,4) and (1,4,2).
func facePrimitive(doc *gltf.Document, faces []mesh.Face) *gltf.Primitive {
	positions := make([][3]float32, 0, 4*len(faces))
	normals := make([][3]float32, 0, 4*len(faces))
	indices := make([]uint32, 0, 6*len(faces))
	for i, f := range faces {
		for _, c := range f.Corners {
			positions = append(positions, c)
			normals = append(normals, f.Normal)
		}
		base := uint32(4 * i)
		indices = append(indices,
			base, base+2, base+3,
			base, base+3, base+1,
		)
	}

	pos := modeler.WritePosition(doc, positions)
	nrm := modeler.WriteNormal(doc, normals)
	idx := modeler.WriteIndices(doc, indices)
	return &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: pos,
			gltf.NORMAL:   nrm,
		},
		Indices:  gltf.Index(idx),
		Material: gltf.Index(0),
	}
}

func encodeBinary(w io.Writer, doc *gltf.Document) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

// WriteGLB writes the culled surface as a single binary glTF mesh.
func WriteGLB(w io.Writer, faces []mesh.Face) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	doc.Materials = []*gltf.Material{cubeMaterial()}

	if len(faces) > 0 {
		prim := facePrimitive(doc, faces)
		doc.Meshes = []*gltf.Mesh{{Name: "Surface", Primitives: []*gltf.Primitive{prim}}}
		doc.Nodes = []*gltf.Node{{Name: "Surface", Mesh: gltf.Index(0)}}
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	}
	return encodeBinary(w, doc)
}

// WriteInstancedGLB writes one shared unit cube mesh and one node per
// position that references it.
func WriteInstancedGLB(w io.Writer, positions []mgl32.Vec3) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	doc.Materials = []*gltf.Material{cubeMaterial()}

	prim := facePrimitive(doc, mesh.UnitCube())
	doc.Meshes = []*gltf.Mesh{{Name: "Cell", Primitives: []*gltf.Primitive{prim}}}

	doc.Nodes = make([]*gltf.Node, 0, len(positions))
	for i, p := range positions {
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        fmt.Sprintf("cell_%d", i),
			Mesh:        gltf.Index(0),
			Translation: [3]float64{float64(p.X()), float64(p.Y()), float64(p.Z())},
			Rotation:    [4]float64{0, 0, 0, 1},
			Scale:       [3]float64{1, 1, 1},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, i)
	}
	return encodeBinary(w, doc)
}
