// pkg/physics/collision.go
package physics

import "math"

// AABB is an axis-aligned bounding box described by its center and half extents
type AABB struct {
	Center      Vector2D
	HalfExtents Vector2D
}

// NewAABB builds a box centered on center with the given full size
func NewAABB(center, size Vector2D) AABB {
	return AABB{Center: center, HalfExtents: size.Scale(0.5)}
}

// Min returns the lower-left corner of the box
func (b AABB) Min() Vector2D {
	return b.Center.Sub(b.HalfExtents)
}

// Max returns the upper-right corner of the box
func (b AABB) Max() Vector2D {
	return b.Center.Add(b.HalfExtents)
}

// Intersects checks if two boxes overlap. Touching edges count as overlap.
func (b AABB) Intersects(other AABB) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := other.Min(), other.Max()
	return bMin.X <= oMax.X && bMax.X >= oMin.X &&
		bMin.Y <= oMax.Y && bMax.Y >= oMin.Y
}

// ClosestPoint clamps point into the box on each axis independently
func (b AABB) ClosestPoint(point Vector2D) Vector2D {
	lo, hi := b.Min(), b.Max()
	return Vector2D{
		X: math.Min(math.Max(point.X, lo.X), hi.X),
		Y: math.Min(math.Max(point.Y, lo.Y), hi.Y),
	}
}

// BoundingCircle represents a circular collision shape
type BoundingCircle struct {
	Center Vector2D
	Radius float64
}

// Intersects checks if the circle touches or overlaps the box
func (c BoundingCircle) Intersects(box AABB) bool {
	closest := box.ClosestPoint(c.Center)
	return c.Center.Distance(closest) <= c.Radius
}

// Side is the face of a box that a circle was judged to strike
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Horizontal reports whether the side flips the x axis on a bounce
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}

// Vertical reports whether the side flips the y axis on a bounce
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// ClassifySide maps the offset from the box's closest point to the circle
// center onto a face. The horizontal branch needs a strictly larger |x|, so
// exact diagonal ties resolve vertically.
func ClassifySide(offset Vector2D) Side {
	if math.Abs(offset.X) > math.Abs(offset.Y) {
		if offset.X < 0 {
			return SideLeft
		}
		return SideRight
	}
	if offset.Y > 0 {
		return SideTop
	}
	return SideBottom
}

// CollideWithSide tests circle against box and classifies the contact.
// Returns SideNone when they do not touch.
func CollideWithSide(circle BoundingCircle, box AABB) Side {
	if !circle.Intersects(box) {
		return SideNone
	}
	closest := box.ClosestPoint(circle.Center)
	return ClassifySide(circle.Center.Sub(closest))
}
