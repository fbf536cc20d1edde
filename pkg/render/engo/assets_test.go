package engo

import (
	"image/color"
	"testing"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-pong/pkg/entity"
)

func TestNewAssetManager(t *testing.T) {
	am := NewAssetManager()

	if am.NetTexture() != nil {
		t.Error("net texture should not exist before LoadAssets")
	}
	if len(am.shapes) != 3 || len(am.colors) != 3 {
		t.Errorf("expected 3 shapes and colors, got %d and %d", len(am.shapes), len(am.colors))
	}
}

func TestAssetManager_ShapeFor(t *testing.T) {
	am := NewAssetManager()

	tests := []struct {
		name   string
		role   entity.Kind
		circle bool
	}{
		{"ball", entity.KindBall, true},
		{"paddle", entity.KindPaddle | entity.KindCollider, false},
		{"wall", entity.KindCollider, false},
		{"untagged", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape := am.ShapeFor(tt.role)
			_, isCircle := shape.(common.Circle)
			_, isRect := shape.(common.Rectangle)
			if isCircle != tt.circle || isRect == tt.circle {
				t.Errorf("unexpected drawable %T for %v", shape, tt.role)
			}
		})
	}
}

func TestAssetManager_ColorFor(t *testing.T) {
	am := NewAssetManager()

	tests := []struct {
		name string
		role entity.Kind
		want color.Color
	}{
		{"ball", entity.KindBall, BallColor},
		{"paddle wins over collider", entity.KindPaddle | entity.KindCollider, PaddleColor},
		{"wall", entity.KindCollider, WallColor},
		{"untagged", 0, FallbackColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := am.ColorFor(tt.role); got != tt.want {
				t.Errorf("ColorFor(%v) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestNetImage(t *testing.T) {
	img := NetImage(4, 40, 10)

	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 40 {
		t.Fatalf("expected 4x40 image, got %v", b)
	}

	tests := []struct {
		y      int
		filled bool
	}{
		{0, true},
		{9, true},
		{10, false},
		{19, false},
		{20, true},
		{39, false},
	}
	for _, tt := range tests {
		_, _, _, a := img.At(1, tt.y).RGBA()
		if (a != 0) != tt.filled {
			t.Errorf("row %d: filled = %v, want %v", tt.y, a != 0, tt.filled)
		}
	}
}

func TestNetImage_ClampsDimensions(t *testing.T) {
	img := NetImage(0, 0, 0)
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("expected 1x1 image, got %v", b)
	}
}

func TestDrawPatternOnImage_ClipsPattern(t *testing.T) {
	img := createBaseImage(2, 2)
	drawPatternOnImage(img, [][]int{{1, 1, 1}, {0, 1, 1}, {1, 1, 1}}, BallColor)

	if img.RGBAAt(0, 0) != BallColor || img.RGBAAt(1, 1) != BallColor {
		t.Error("expected pattern pixels to be set")
	}
	if _, _, _, a := img.At(0, 1).RGBA(); a != 0 {
		t.Error("expected unset pixel to stay transparent")
	}
}
