// pkg/render/engo/renderer.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/physics"
)

// sprite is the engo-side mirror of one simulation entity
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	seen bool
}

// EngoRenderer implements entity.Renderer using the Engo game engine
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	camera       *Camera
	assets       *AssetManager

	sprites map[entity.ID]*sprite
}

// NewEngoRenderer creates a new Engo-based renderer. renderSystem may be
// nil, in which case sprites are tracked but never drawn.
func NewEngoRenderer(renderSystem *common.RenderSystem, camera *Camera, assets *AssetManager) *EngoRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		renderSystem: renderSystem,
		camera:       camera,
		assets:       assets,
		sprites:      make(map[entity.ID]*sprite),
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// RenderEntity implements entity.Renderer
func (r *EngoRenderer) RenderEntity(d entity.Drawable) {
	s := r.getOrCreateSprite(d)
	s.seen = true

	center := physics.Vector2D{X: float64(d.Translation[0]), Y: float64(d.Translation[1])}
	s.SpaceComponent.Position, s.SpaceComponent.Width, s.SpaceComponent.Height = r.camera.Box(center, d.Size)
}

// Present implements entity.Renderer. Engo draws through its render
// system; entities that were not rendered this frame are removed.
func (r *EngoRenderer) Present() {
	r.cleanupInactiveEntities()
}

// getOrCreateSprite gets an existing sprite or creates a new one
func (r *EngoRenderer) getOrCreateSprite(d entity.Drawable) *sprite {
	if s, exists := r.sprites[d.ID]; exists {
		return s
	}

	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{
		Drawable: r.assets.ShapeFor(d.Role),
		Color:    r.assets.ColorFor(d.Role),
	}
	r.sprites[d.ID] = s

	if r.renderSystem != nil {
		r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	return s
}

// cleanupInactiveEntities removes sprites whose entity is gone
func (r *EngoRenderer) cleanupInactiveEntities() {
	for id, s := range r.sprites {
		if !s.seen {
			r.remove(id, s)
		}
	}
}

// Remove drops the sprite of an entity
func (r *EngoRenderer) Remove(id entity.ID) {
	if s, exists := r.sprites[id]; exists {
		r.remove(id, s)
	}
}

func (r *EngoRenderer) remove(id entity.ID, s *sprite) {
	if r.renderSystem != nil {
		r.renderSystem.Remove(s.BasicEntity)
	}
	delete(r.sprites, id)
}

// Len returns the number of tracked sprites
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

// SpaceOf returns the current screen box of an entity
func (r *EngoRenderer) SpaceOf(id entity.ID) (common.SpaceComponent, bool) {
	s, ok := r.sprites[id]
	if !ok {
		return common.SpaceComponent{}, false
	}
	return s.SpaceComponent, true
}
