//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"sugarcube/internal/camera"
	"sugarcube/internal/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var helpLines = []string{
	"space play/pause   n step   r regenerate   s new seed",
	"1-4 shape   o obj   g glb   p snapshot",
	"c camera   i isometric   m shading   arrows orbit   +/- zoom",
	"[ ] speed   b bounds   h help   q quit",
}

// Overlay draws the lattice bounds, a status line and the key help on top of
// the rendered faces.
type Overlay struct {
	showBounds bool
	showHelp   bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{showBounds: true, showHelp: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showBounds = !o.showBounds
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
}

// Draw renders the overlay onto a w by h view.
func (o *Overlay) Draw(screen *ebiten.Image, cam camera.Camera, size core.Size, w, h int, status string) {
	if o.showBounds && size.Valid() {
		o.drawBounds(screen, cam, size, w, h)
	}
	face := basicfont.Face7x13
	text.Draw(screen, status, face, 10, 18, color.RGBA{R: 230, G: 230, B: 235, A: 255})
	if o.showHelp {
		y := h - 10 - (len(helpLines)-1)*16
		for _, line := range helpLines {
			text.Draw(screen, line, face, 10, y, color.RGBA{R: 150, G: 150, B: 160, A: 255})
			y += 16
		}
	}
}

func (o *Overlay) drawBounds(screen *ebiten.Image, cam camera.Camera, size core.Size, w, h int) {
	half := mgl32.Vec3{float32(size.X), float32(size.Y), float32(size.Z)}.Mul(0.5)
	var corners [8]mgl32.Vec3
	for i := range corners {
		c := half
		if i&1 == 0 {
			c[0] = -c[0]
		}
		if i&2 == 0 {
			c[1] = -c[1]
		}
		if i&4 == 0 {
			c[2] = -c[2]
		}
		corners[i] = c
	}
	col := color.RGBA{R: 90, G: 90, B: 110, A: 200}
	for a := 0; a < 8; a++ {
		for bit := 1; bit < 8; bit <<= 1 {
			b := a | bit
			if b == a {
				continue
			}
			x1, y1, _, ok1 := camera.Project(cam, corners[a], w, h)
			x2, y2, _, ok2 := camera.Project(cam, corners[b], w, h)
			if ok1 && ok2 {
				o.drawLine(screen, float64(x1), float64(y1), float64(x2), float64(y2), 1, col)
			}
		}
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
