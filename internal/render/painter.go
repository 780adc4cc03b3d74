//go:build ebiten

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Indices are uint16, so each DrawTriangles batch stays below 65536 vertices.
const facesPerBatch = 16000

// FacePainter draws projected faces as filled quads.
type FacePainter struct {
	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewFacePainter allocates the painter's source texture.
func NewFacePainter() *FacePainter {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &FacePainter{white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)}
}

// Draw paints faces in slice order, so callers pass them back to front.
func (p *FacePainter) Draw(screen *ebiten.Image, faces []ScreenFace) {
	for start := 0; start < len(faces); start += facesPerBatch {
		end := min(start+facesPerBatch, len(faces))
		p.drawBatch(screen, faces[start:end])
	}
}

func (p *FacePainter) drawBatch(screen *ebiten.Image, faces []ScreenFace) {
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]
	for i, f := range faces {
		r := float32(f.Color.R) / 255
		g := float32(f.Color.G) / 255
		b := float32(f.Color.B) / 255
		a := float32(f.Color.A) / 255
		for _, pt := range f.Points {
			p.vertices = append(p.vertices, ebiten.Vertex{
				DstX: pt[0], DstY: pt[1],
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			})
		}
		base := uint16(4 * i)
		p.indices = append(p.indices, base, base+1, base+2, base, base+2, base+3)
	}
	op := &ebiten.DrawTrianglesOptions{}
	screen.DrawTriangles(p.vertices, p.indices, p.white, op)
}
