// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-pong/pkg/physics"
)

// Camera maps arena coordinates, origin at the centre and Y up, onto engo
// screen coordinates, origin top-left and Y down.
type Camera struct {
	screenWidth  float32
	screenHeight float32
	center       physics.Vector2D

	zoom    float32
	minZoom float32
	maxZoom float32
}

// NewCamera creates a camera for a screen of the given size
func NewCamera(screenWidth, screenHeight float32) *Camera {
	return &Camera{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		zoom:         1.0,
		minZoom:      0.1,
		maxZoom:      3.0,
	}
}

// SetScreenSize updates the screen size after a resize
func (c *Camera) SetScreenSize(width, height float32) {
	c.screenWidth, c.screenHeight = width, height
}

// FitArena zooms so an arena of the given size fills the screen
func (c *Camera) FitArena(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.SetZoom(min(c.screenWidth/float32(width), c.screenHeight/float32(height)))
}

// SetCenter sets the arena point shown at the middle of the screen
func (c *Camera) SetCenter(center physics.Vector2D) {
	c.center = center
}

// SetZoom sets the camera zoom level
func (c *Camera) SetZoom(zoom float32) {
	c.zoom = c.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (c *Camera) GetZoom() float32 {
	return c.zoom
}

// clampZoom ensures zoom is within valid bounds
func (c *Camera) clampZoom(zoom float32) float32 {
	if zoom < c.minZoom {
		return c.minZoom
	}
	if zoom > c.maxZoom {
		return c.maxZoom
	}
	return zoom
}

// WorldToScreen converts arena coordinates to screen coordinates
func (c *Camera) WorldToScreen(worldPos physics.Vector2D) engo.Point {
	relativeX := float32(worldPos.X-c.center.X) * c.zoom
	relativeY := float32(worldPos.Y-c.center.Y) * c.zoom
	return engo.Point{
		X: relativeX + c.screenWidth/2,
		Y: c.screenHeight/2 - relativeY,
	}
}

// ScreenToWorld converts screen coordinates to arena coordinates
func (c *Camera) ScreenToWorld(screenPos engo.Point) physics.Vector2D {
	relativeX := (screenPos.X - c.screenWidth/2) / c.zoom
	relativeY := (c.screenHeight/2 - screenPos.Y) / c.zoom
	return physics.Vector2D{
		X: float64(relativeX) + c.center.X,
		Y: float64(relativeY) + c.center.Y,
	}
}

// Box returns the top-left screen corner and screen size of an arena box
func (c *Camera) Box(center, size physics.Vector2D) (engo.Point, float32, float32) {
	half := size.Scale(0.5)
	topLeft := c.WorldToScreen(physics.Vector2D{X: center.X - half.X, Y: center.Y + half.Y})
	return topLeft, float32(size.X) * c.zoom, float32(size.Y) * c.zoom
}
