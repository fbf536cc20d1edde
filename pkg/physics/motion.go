package physics

// Integrate advances a position by velocity over deltaTime ticks.
// A deltaTime of exactly 1 adds the velocity unscaled.
func Integrate(position, velocity Vector2D, deltaTime float64) Vector2D {
	if deltaTime == 1 {
		return position.Add(velocity)
	}
	return position.Add(velocity.Scale(deltaTime))
}

// Reflect negates the velocity component along the axis the side belongs to.
// SideNone leaves the velocity unchanged.
func Reflect(velocity Vector2D, side Side) Vector2D {
	switch {
	case side.Horizontal():
		velocity.X = -velocity.X
	case side.Vertical():
		velocity.Y = -velocity.Y
	}
	return velocity
}
