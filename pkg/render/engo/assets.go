// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-pong/pkg/entity"
)

// Role colors
var (
	BallColor     = color.RGBA{255, 255, 255, 255}
	PaddleColor   = color.RGBA{80, 220, 120, 255}
	WallColor     = color.RGBA{90, 120, 255, 255}
	NetColor      = color.RGBA{128, 128, 128, 255}
	FallbackColor = color.RGBA{200, 200, 200, 255}
)

// AssetManager hands out drawables and colors per entity role
type AssetManager struct {
	shapes map[entity.Kind]common.Drawable
	colors map[entity.Kind]color.Color

	// Center net texture, only available after LoadAssets
	netTexture common.Drawable
	netImage   *image.RGBA
}

// NewAssetManager creates a new asset manager. The vector shapes need no
// GPU resources, so they are available immediately.
func NewAssetManager() *AssetManager {
	return &AssetManager{
		shapes: map[entity.Kind]common.Drawable{
			entity.KindBall:     common.Circle{},
			entity.KindPaddle:   common.Rectangle{},
			entity.KindCollider: common.Rectangle{},
		},
		colors: map[entity.Kind]color.Color{
			entity.KindBall:     BallColor,
			entity.KindPaddle:   PaddleColor,
			entity.KindCollider: WallColor,
		},
	}
}

// LoadAssets builds the textures. It needs an OpenGL context.
func (am *AssetManager) LoadAssets(netHeight int) error {
	am.netImage = NetImage(4, netHeight, 12)
	am.netTexture = am.convertToEngoTexture(am.netImage)
	return nil
}

// primaryRole picks the role that decides how an entity looks
func primaryRole(role entity.Kind) entity.Kind {
	switch {
	case role&entity.KindBall != 0:
		return entity.KindBall
	case role&entity.KindPaddle != 0:
		return entity.KindPaddle
	case role&entity.KindCollider != 0:
		return entity.KindCollider
	}
	return 0
}

// ShapeFor returns the drawable for an entity role
func (am *AssetManager) ShapeFor(role entity.Kind) common.Drawable {
	if shape, ok := am.shapes[primaryRole(role)]; ok {
		return shape
	}
	return common.Rectangle{}
}

// ColorFor returns the color for an entity role
func (am *AssetManager) ColorFor(role entity.Kind) color.Color {
	if c, ok := am.colors[primaryRole(role)]; ok {
		return c
	}
	return FallbackColor
}

// NetTexture returns the center net texture, nil before LoadAssets
func (am *AssetManager) NetTexture() common.Drawable {
	return am.netTexture
}

// NetImage draws a vertical dashed line: dash pixels on, dash pixels off
func NetImage(width, height, dash int) *image.RGBA {
	width, height, dash = max(width, 1), max(height, 1), max(dash, 1)
	pattern := make([][]int, height)
	for y := range pattern {
		pattern[y] = make([]int, width)
		if (y/dash)%2 == 0 {
			for x := range pattern[y] {
				pattern[y][x] = 1
			}
		}
	}
	img := createBaseImage(width, height)
	drawPatternOnImage(img, pattern, NetColor)
	return img
}

// createBaseImage creates a transparent RGBA image with the specified dimensions.
func createBaseImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}

// drawPatternOnImage draws a 2D pixel pattern onto the provided RGBA image.
func drawPatternOnImage(img *image.RGBA, pattern [][]int, c color.Color) {
	bounds := img.Bounds()
	for y, row := range pattern {
		if y >= bounds.Dy() {
			break
		}
		for x, pixel := range row {
			if x >= bounds.Dx() {
				break
			}
			if pixel == 1 {
				img.Set(x, y, c)
			}
		}
	}
}

// convertToEngoTexture converts an RGBA image to an Engo-compatible texture.
func (am *AssetManager) convertToEngoTexture(img *image.RGBA) common.Drawable {
	bounds := img.Bounds()
	nrgbaImg := image.NewNRGBA(bounds)
	draw.Draw(nrgbaImg, bounds, img, bounds.Min, draw.Src)

	texture := common.NewImageObject(nrgbaImg)
	return common.NewTextureSingle(texture)
}
