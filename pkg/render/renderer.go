// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/logging"
)

// NullRenderer is a simple implementation of entity.Renderer that only logs.
// The headless driver uses it.
type NullRenderer struct {
	logger *logging.Logger
	frames int
	drawn  int
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger.With("component", "null_renderer"),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.drawn = 0
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames, "entities", d.drawn)
}

// RenderEntity implements entity.Renderer.
func (d *NullRenderer) RenderEntity(e entity.Drawable) {
	d.drawn++
	d.logger.Debug(context.Background(), "RenderEntity called",
		"entity_id", e.ID,
		"role", e.Role.String(),
		"x", e.Translation[0],
		"y", e.Translation[1],
	)
}

// Frames returns the number of presented frames
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Drawn returns the number of entities rendered since the last Clear
func (d *NullRenderer) Drawn() int {
	return d.drawn
}
