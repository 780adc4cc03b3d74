package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func eyeDir(c Camera) mgl32.Vec3 {
	// Row 2 of the view matrix is the camera's back axis in world space.
	v := c.View()
	return mgl32.Vec3{v.At(2, 0), v.At(2, 1), v.At(2, 2)}
}

func TestAzimuthWraps(t *testing.T) {
	c := NewOrtho()
	c.SetAzimuth(-30)
	if c.Azimuth() != 330 {
		t.Fatalf("azimuth = %v, want 330", c.Azimuth())
	}
	c.SetAzimuth(725)
	if c.Azimuth() != 5 {
		t.Fatalf("azimuth = %v, want 5", c.Azimuth())
	}
	c.SetAzimuth(360)
	if c.Azimuth() != 0 {
		t.Fatalf("azimuth = %v, want 0", c.Azimuth())
	}
}

func TestAltitudeClamps(t *testing.T) {
	c := NewPerspective()
	c.Orbit(0, 200)
	if c.Altitude() != maxAltitude {
		t.Fatalf("altitude = %v, want %v", c.Altitude(), maxAltitude)
	}
	c.SetAltitude(-120)
	if c.Altitude() != -maxAltitude {
		t.Fatalf("altitude = %v, want %v", c.Altitude(), -maxAltitude)
	}
}

func TestTargetProjectsToCentre(t *testing.T) {
	for _, c := range []Camera{NewOrtho(), NewPerspective()} {
		x, y, _, ok := Project(c, mgl32.Vec3{}, 800, 600)
		if !ok {
			t.Fatalf("%T: target not visible", c)
		}
		if mgl32.Abs(x-400) > 1e-3 || mgl32.Abs(y-300) > 1e-3 {
			t.Fatalf("%T: target at (%v, %v), want centre", c, x, y)
		}
	}
}

func TestUpProjectsAboveCentre(t *testing.T) {
	c := NewOrtho()
	_, y, _, ok := Project(c, mgl32.Vec3{0, 5, 0}, 800, 600)
	if !ok || y >= 300 {
		t.Fatalf("world up must appear above the centre, got y=%v ok=%v", y, ok)
	}
}

func TestDepthOrdersTowardEye(t *testing.T) {
	for _, c := range []Camera{NewOrtho(), NewPerspective()} {
		back := eyeDir(c)
		_, _, near, ok1 := Project(c, back.Mul(3), 640, 480)
		_, _, far, ok2 := Project(c, back.Mul(-3), 640, 480)
		if !ok1 || !ok2 {
			t.Fatalf("%T: probe points clipped", c)
		}
		if near >= far {
			t.Fatalf("%T: depth toward eye %v not less than away %v", c, near, far)
		}
	}
}

func TestPerspectiveClipsBeyondFar(t *testing.T) {
	c := NewPerspective()
	if _, _, _, ok := Project(c, eyeDir(c).Mul(-200), 640, 480); ok {
		t.Fatal("point beyond the far plane must be rejected")
	}
	if _, _, _, ok := Project(c, eyeDir(c).Mul(40), 640, 480); ok {
		t.Fatal("point behind the eye must be rejected")
	}
}

func TestZoom(t *testing.T) {
	o := NewOrtho()
	before := o.Scale()
	o.Zoom(2)
	if o.Scale() <= before {
		t.Fatal("positive zoom must enlarge the orthographic scale")
	}

	p := NewPerspective()
	p.Zoom(-100)
	if p.Distance() != p.far-1 {
		t.Fatalf("distance = %v, want clamp at %v", p.Distance(), p.far-1)
	}
	p.Zoom(100)
	if p.Distance() != p.near+1 {
		t.Fatalf("distance = %v, want clamp at %v", p.Distance(), p.near+1)
	}
}
