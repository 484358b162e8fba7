package drift

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraFocal(t *testing.T) {
	cam := NewCamera(Vec3{Z: 15}, 90, Rect{Width: 800, Height: 600})
	// tan(45°) = 1, so focal is half the viewport height.
	if !approxEqual(cam.Focal(), 300, epsilon) {
		t.Errorf("Focal = %f, want 300", cam.Focal())
	}
	cam.SetViewport(Rect{Width: 800, Height: 400})
	if !approxEqual(cam.Focal(), 200, epsilon) {
		t.Errorf("Focal after resize = %f, want 200", cam.Focal())
	}
	cam.FOV = 60
	cam.MarkDirty()
	want := 200 / math.Tan(math.Pi/6)
	if !approxEqual(cam.Focal(), want, epsilon) {
		t.Errorf("Focal after FOV change = %f, want %f", cam.Focal(), want)
	}
}

func TestCameraProjectsCenter(t *testing.T) {
	cam := NewCamera(Vec3{Z: 15}, 50, Rect{Width: 800, Height: 600})
	p, scale, ok := cam.WorldToScreen(Vec3{})
	if !ok {
		t.Fatal("origin should project")
	}
	if !approxEqual(p.X, 400, epsilon) || !approxEqual(p.Y, 300, epsilon) {
		t.Errorf("origin -> (%f, %f), want (400, 300)", p.X, p.Y)
	}
	if !approxEqual(scale, cam.Focal()/15, epsilon) {
		t.Errorf("scale = %f, want %f", scale, cam.Focal()/15)
	}
}

func TestCameraYUpAndPerspective(t *testing.T) {
	cam := NewCamera(Vec3{Z: 15}, 50, Rect{Width: 800, Height: 600})
	up, _, _ := cam.WorldToScreen(Vec3{Y: 1})
	if up.Y >= 300 {
		t.Errorf("+Y projected to y=%f, want above center", up.Y)
	}
	near, sNear, _ := cam.WorldToScreen(Vec3{X: 1, Z: 5})
	far, sFar, _ := cam.WorldToScreen(Vec3{X: 1, Z: -5})
	if sNear <= sFar || near.X <= far.X {
		t.Errorf("nearer point should appear larger: near %f@%f far %f@%f", near.X, sNear, far.X, sFar)
	}
}

func TestCameraClipsBehindNearPlane(t *testing.T) {
	cam := NewCamera(Vec3{Z: 15}, 50, Rect{Width: 800, Height: 600})
	if _, _, ok := cam.WorldToScreen(Vec3{Z: 15}); ok {
		t.Error("point at the eye should not project")
	}
	if _, _, ok := cam.WorldToScreen(Vec3{Z: 20}); ok {
		t.Error("point behind the camera should not project")
	}
	if d := cam.Depth(Vec3{Z: -5}); !approxEqual(d, 20, epsilon) {
		t.Errorf("Depth = %f, want 20", d)
	}
}
