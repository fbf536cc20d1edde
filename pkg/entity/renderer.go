package entity

import "github.com/opd-ai/go-pong/pkg/physics"

// Drawable is the render-facing view of one entity
type Drawable struct {
	ID          ID
	Role        Kind
	Translation [3]float32
	Size        physics.Vector2D
}

// Renderer handles rendering game entities
type Renderer interface {
	Clear()
	RenderEntity(d Drawable)
	Present()
}

// Drawables lists every entity that has a transform and a shape
func (s *Store) Drawables() []Drawable {
	var out []Drawable
	for id := range s.Query(KindTransform|KindShape, 0) {
		r := &s.records[s.index[id]]
		out = append(out, Drawable{
			ID:          id,
			Role:        r.kinds & Roles,
			Translation: r.transform.Translation,
			Size:        r.shape,
		})
	}
	return out
}

// Draw renders one full frame of the store through r
func Draw(s *Store, r Renderer) {
	r.Clear()
	for _, d := range s.Drawables() {
		r.RenderEntity(d)
	}
	r.Present()
}
