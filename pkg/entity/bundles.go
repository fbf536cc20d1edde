package entity

import "github.com/opd-ai/go-pong/pkg/physics"

// Bundle is a ready-made attribute set for one kind of game object
type Bundle []Attribute

// Ball creates the bundle for a ball resting at the origin
func Ball(velocity physics.Vector2D, size float64) Bundle {
	return Bundle{
		IsBall,
		Position{},
		Velocity(velocity),
		Shape{X: size, Y: size},
		Transform{},
	}
}

// Paddle creates the bundle for a player paddle. Paddles collide with the
// ball but carry no velocity, so the motion system leaves them alone.
func Paddle(position physics.Vector2D, width, height float64) Bundle {
	return Bundle{
		IsPaddle,
		IsCollider,
		Position(position),
		Shape{X: width, Y: height},
		Transform{},
	}
}

// Wall creates the bundle for a static boundary collider
func Wall(position physics.Vector2D, width, height float64) Bundle {
	return Bundle{
		IsCollider,
		Position(position),
		Shape{X: width, Y: height},
		Transform{},
	}
}

// Spawn creates an entity from a bundle
func (s *Store) Spawn(b Bundle) ID {
	return s.Create(b...)
}
