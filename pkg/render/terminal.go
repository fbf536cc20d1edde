package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/physics"
)

// TerminalRenderer draws the arena as characters into a rune buffer and
// flushes it to a tcell screen on Present.
type TerminalRenderer struct {
	screen    tcell.Screen
	width     int
	height    int
	buffer    [][]rune
	scaleX    float64
	scaleY    float64
	centerPos physics.Vector2D
	status    string
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions. scale is the number of world units per cell on both axes.
// screen may be nil, in which case only the buffer is maintained.
func NewTerminalRenderer(screen tcell.Screen, width, height int, scale float64) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		scaleX: scale,
		scaleY: scale,
	}
	r.Resize(width, height)
	return r
}

// Resize reallocates the buffer for a new terminal size
func (r *TerminalRenderer) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
		for x := range buffer[i] {
			buffer[i][x] = ' '
		}
	}
	r.width, r.height, r.buffer = width, height, buffer
}

// FitArena scales the view so a world of the given size fills the buffer
func (r *TerminalRenderer) FitArena(worldWidth, worldHeight float64) {
	if worldWidth > 0 {
		r.scaleX = worldWidth / float64(r.width)
	}
	if worldHeight > 0 {
		r.scaleY = worldHeight / float64(r.height)
	}
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// SetStatus sets the text drawn on the first row
func (r *TerminalRenderer) SetStatus(text string) {
	r.status = text
}

// worldToScreen converts world coordinates to screen cells. World Y grows
// upwards, terminal rows grow downwards.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int(math.Floor((pos.X-r.centerPos.X)/r.scaleX + float64(r.width)/2))
	screenY := int(math.Floor(float64(r.height)/2 - (pos.Y-r.centerPos.Y)/r.scaleY))
	return screenX, screenY
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// RenderEntity implements entity.Renderer. The entity's box is filled with
// a glyph chosen by its role; anything smaller than a cell still covers one.
func (r *TerminalRenderer) RenderEntity(d entity.Drawable) {
	center := physics.Vector2D{X: float64(d.Translation[0]), Y: float64(d.Translation[1])}
	half := d.Size.Scale(0.5)
	x0, y0 := r.worldToScreen(physics.Vector2D{X: center.X - half.X, Y: center.Y + half.Y})
	x1, y1 := r.worldToScreen(physics.Vector2D{X: center.X + half.X, Y: center.Y - half.Y})
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	glyph := glyphFor(d.Role)
	for y := max(y0, 0); y < min(y1, r.height); y++ {
		for x := max(x0, 0); x < min(x1, r.width); x++ {
			r.buffer[y][x] = glyph
		}
	}
}

func glyphFor(role entity.Kind) rune {
	switch {
	case role&entity.KindBall != 0:
		return 'O'
	case role&entity.KindPaddle != 0:
		return '#'
	case role&entity.KindCollider != 0:
		return '='
	default:
		return '.'
	}
}

func styleFor(glyph rune) tcell.Style {
	switch glyph {
	case 'O':
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case '#':
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case '=':
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return tcell.StyleDefault
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	for i, ch := range []rune(r.status) {
		if i >= r.width {
			break
		}
		r.buffer[0][i] = ch
	}
	if r.screen == nil {
		return
	}
	for y := range r.buffer {
		for x, ch := range r.buffer[y] {
			r.screen.SetContent(x, y, ch, nil, styleFor(ch))
		}
	}
	r.screen.Show()
}

// Lines returns the buffer as one string per row
func (r *TerminalRenderer) Lines() []string {
	lines := make([]string, len(r.buffer))
	for y, row := range r.buffer {
		lines[y] = string(row)
	}
	return lines
}
