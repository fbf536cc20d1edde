package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-pong/pkg/physics"
)

func TestNewCamera(t *testing.T) {
	cam := NewCamera(1280, 720)
	if cam.GetZoom() != 1.0 {
		t.Errorf("Expected zoom 1.0, got %v", cam.GetZoom())
	}
	if cam.center != (physics.Vector2D{}) {
		t.Errorf("Expected center at origin, got %v", cam.center)
	}
}

func TestCamera_WorldToScreen(t *testing.T) {
	tests := []struct {
		name   string
		zoom   float32
		center physics.Vector2D
		world  physics.Vector2D
		want   engo.Point
	}{
		{"origin maps to screen middle", 1, physics.Vector2D{}, physics.Vector2D{}, engo.Point{X: 640, Y: 360}},
		{"positive y is up", 1, physics.Vector2D{}, physics.Vector2D{X: 100, Y: 50}, engo.Point{X: 740, Y: 310}},
		{"negative y is down", 1, physics.Vector2D{}, physics.Vector2D{X: -100, Y: -50}, engo.Point{X: 540, Y: 410}},
		{"zoomed", 2, physics.Vector2D{}, physics.Vector2D{X: 10, Y: 10}, engo.Point{X: 660, Y: 340}},
		{"shifted center", 1, physics.Vector2D{X: 100}, physics.Vector2D{X: 100}, engo.Point{X: 640, Y: 360}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(1280, 720)
			cam.SetZoom(tt.zoom)
			cam.SetCenter(tt.center)

			if got := cam.WorldToScreen(tt.world); got != tt.want {
				t.Errorf("WorldToScreen(%v) = %v, want %v", tt.world, got, tt.want)
			}
			if back := cam.ScreenToWorld(tt.want); back != tt.world {
				t.Errorf("ScreenToWorld(%v) = %v, want %v", tt.want, back, tt.world)
			}
		})
	}
}

func TestCamera_ZoomClamp(t *testing.T) {
	tests := []struct {
		zoom float32
		want float32
	}{
		{0.01, 0.1},
		{1.5, 1.5},
		{10, 3.0},
	}

	for _, tt := range tests {
		cam := NewCamera(100, 100)
		cam.SetZoom(tt.zoom)
		if cam.GetZoom() != tt.want {
			t.Errorf("SetZoom(%v): got %v, want %v", tt.zoom, cam.GetZoom(), tt.want)
		}
	}
}

func TestCamera_FitArena(t *testing.T) {
	cam := NewCamera(640, 360)
	cam.FitArena(1280, 720)
	if cam.GetZoom() != 0.5 {
		t.Errorf("Expected zoom 0.5, got %v", cam.GetZoom())
	}

	cam.FitArena(0, 720)
	if cam.GetZoom() != 0.5 {
		t.Error("FitArena with an empty arena should leave the zoom unchanged")
	}
}

func TestCamera_Box(t *testing.T) {
	cam := NewCamera(1280, 720)
	topLeft, w, h := cam.Box(physics.Vector2D{X: 590}, physics.Vector2D{X: 10, Y: 50})

	if want := (engo.Point{X: 1225, Y: 335}); topLeft != want {
		t.Errorf("top-left = %v, want %v", topLeft, want)
	}
	if w != 10 || h != 50 {
		t.Errorf("size = %vx%v, want 10x50", w, h)
	}
}
