//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"sugarcube/internal/camera"
	"sugarcube/internal/core"
	"sugarcube/internal/export"
	"sugarcube/internal/mesh"
	"sugarcube/internal/render"
	"sugarcube/internal/sims/automata3d"
	"sugarcube/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	orbitSpeed = 1.5
	minRate    = 0.25
	maxRate    = 60
)

var background = color.RGBA{R: 12, G: 12, B: 16, A: 255}

// Game adapts an automata3d world to the ebiten.Game interface.
type Game struct {
	cfg   *Config
	world *automata3d.World

	ortho *camera.Ortho
	persp *camera.Perspective
	cam   camera.Camera

	scene   *render.Scene
	painter *render.FacePainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep

	faces  []mesh.Face
	dirty  bool
	paused bool
	status string
}

// New constructs a Game for the provided world.
func New(world *automata3d.World, cfg *Config) *Game {
	g := &Game{
		cfg:     cfg,
		world:   world,
		ortho:   camera.NewOrtho(),
		persp:   camera.NewPerspective(),
		scene:   render.NewScene(),
		painter: render.NewFacePainter(),
		hud:     ui.NewHUD(world, cfg.Panel),
		overlay: ui.NewOverlay(),
		timer:   core.NewFixedStep(cfg.Rate),
		dirty:   true,
		paused:  true,
	}
	g.cam = g.ortho
	if cfg.Camera == "persp" {
		g.cam = g.persp
	}
	return g
}

// Reset reseeds the world and rebuilds the configured shape.
func (g *Game) Reset(seed int64) {
	g.world.Reset(seed)
	g.dirty = true
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		if !g.paused {
			g.timer.Reset()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	for i, key := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4} {
		if inpututil.IsKeyJustPressed(key) && g.world.SetIntParameter("shape", i) {
			g.regenerate()
		}
	}
	g.handleExports()
	g.handleView()

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil && g.hud.Update(g.viewWidth()) {
		g.status = pendingStatus(g.world)
	}

	if !g.paused && g.timer.ShouldStep() {
		g.step()
	}
	return nil
}

func (g *Game) step() {
	g.world.Step()
	g.dirty = true
}

func (g *Game) regenerate() {
	if !g.world.Regenerate() {
		g.status = "shape does not fit the lattice"
		log.Printf("regenerate: %s does not fit %v", g.world.Params().Shape, g.world.Size())
	} else {
		g.status = ""
	}
	g.dirty = true
}

func (g *Game) handleView() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if g.cam == camera.Camera(g.ortho) {
			g.persp.SetAzimuth(g.ortho.Azimuth())
			g.persp.SetAltitude(g.ortho.Altitude())
			g.cam = g.persp
		} else {
			g.ortho.SetAzimuth(g.persp.Azimuth())
			g.ortho.SetAltitude(g.persp.Altitude())
			g.cam = g.ortho
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.cam.SetAzimuth(camera.IsoAzimuth)
		g.cam.SetAltitude(camera.IsoAltitude)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if g.scene.Shading == render.ShadeRamp {
			g.scene.Shading = render.ShadeNormal
		} else {
			g.scene.Shading = render.ShadeRamp
		}
	}

	var dAz, dAlt float32
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dAz -= orbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dAz += orbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dAlt += orbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dAlt -= orbitSpeed
	}
	if dAz != 0 || dAlt != 0 {
		g.cam.Orbit(dAz, dAlt)
	}

	_, wheel := ebiten.Wheel()
	zoom := float32(wheel)
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		zoom++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		zoom--
	}
	if zoom != 0 {
		g.cam.Zoom(zoom)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.setRate(g.timer.Rate() / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.setRate(g.timer.Rate() * 2)
	}
}

func (g *Game) setRate(rate float64) {
	if rate < minRate {
		rate = minRate
	}
	if rate > maxRate {
		rate = maxRate
	}
	g.timer.SetRate(rate)
}

func (g *Game) handleExports() {
	gen := g.world.Generation()
	base := filepath.Join(g.cfg.Out, fmt.Sprintf("sugarcube-%04d", gen))
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.report(base+".obj", export.SaveOBJ(base+".obj", g.currentFaces()))
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			path := base + "-cells.glb"
			g.report(path, export.SaveInstancedGLB(path, g.world.Positions()))
		} else {
			g.report(base+".glb", export.SaveGLB(base+".glb", g.currentFaces()))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		snap := export.Snapshot{
			Lattice:    g.world.Lattice(),
			Generation: gen,
			Thresholds: g.world.Rule().Thresholds(),
		}
		g.report(base+".scube", export.SaveSnapshotFile(base+".scube", snap))
	}
}

func (g *Game) report(path string, err error) {
	if err != nil {
		log.Printf("export %s: %v", path, err)
		g.status = "export failed: " + err.Error()
		return
	}
	log.Printf("wrote %s", path)
	g.status = "wrote " + filepath.Base(path)
}

func (g *Game) currentFaces() []mesh.Face {
	if g.dirty {
		g.faces = g.world.Faces()
		g.dirty = false
	}
	return g.faces
}

func (g *Game) viewWidth() int {
	w := g.cfg.Width
	if g.hud != nil {
		w -= g.hud.Width()
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (g *Game) statusLine() string {
	state := "playing"
	if g.paused {
		state = "paused"
	}
	line := fmt.Sprintf("gen %d  live %d  rule %s  %.2f/s %s  %s",
		g.world.Generation(), g.world.Lattice().Live(), g.world.Rule(), g.timer.Rate(), state, g.scene.Shading)
	if g.world.Stable() {
		line += "  stable"
	} else if p := g.world.Period(); p > 1 {
		line += fmt.Sprintf("  period %d", p)
	}
	if g.status != "" {
		line += "  | " + g.status
	}
	return line
}

// Draw renders the current lattice surface, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	w, h := g.viewWidth(), g.cfg.Height
	faces := g.scene.Project(g.cam, g.currentFaces(), w, h)
	g.painter.Draw(screen, faces)
	if g.overlay != nil {
		g.overlay.Draw(screen, g.cam, g.world.Size(), w, h, g.statusLine())
	}
	if g.hud != nil {
		g.hud.Draw(screen, w, h)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
