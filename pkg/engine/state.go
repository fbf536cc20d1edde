package engine

import (
	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/physics"
)

// EntityState is a read-only view of one entity
type EntityState struct {
	ID       entity.ID        `json:"id"`
	Role     string           `json:"role"`
	Position physics.Vector2D `json:"position"`
	Velocity physics.Vector2D `json:"velocity"`
	Size     physics.Vector2D `json:"size"`
}

// GameState is a snapshot of the simulation
type GameState struct {
	Tick     uint64        `json:"tick"`
	Score    Score         `json:"score"`
	Entities []EntityState `json:"entities"`
}

// Snapshot copies the current state of every positioned entity
func (s *Simulation) Snapshot() GameState {
	state := GameState{Tick: s.tick, Score: s.score}
	for id := range s.store.Query(entity.KindPosition, 0) {
		kinds, _ := s.store.Kinds(id)
		es := EntityState{ID: id, Role: (kinds & entity.Roles).String()}
		es.Position, _ = s.store.Position(id)
		if kinds&entity.KindVelocity != 0 {
			es.Velocity, _ = s.store.Velocity(id)
		}
		if kinds&entity.KindShape != 0 {
			es.Size, _ = s.store.Shape(id)
		}
		state.Entities = append(state.Entities, es)
	}
	return state
}
