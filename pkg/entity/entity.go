// pkg/entity/entity.go
package entity

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-pong/pkg/physics"
)

// ErrNotFound is returned when an entity or one of its attributes is missing
var ErrNotFound = errors.New("not found")

// ID is a unique identifier for an entity
type ID uint64

// Kind is a bit set naming attached attributes and role tags
type Kind uint32

const (
	KindPosition Kind = 1 << iota
	KindVelocity
	KindShape
	KindTransform
	KindBall
	KindCollider
	KindPaddle
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{KindPosition, "position"},
	{KindVelocity, "velocity"},
	{KindShape, "shape"},
	{KindTransform, "transform"},
	{KindBall, "ball"},
	{KindCollider, "collider"},
	{KindPaddle, "paddle"},
}

// Roles masks the tag bits of a Kind
const Roles = KindBall | KindCollider | KindPaddle

func (k Kind) String() string {
	if k == 0 {
		return "none"
	}
	var parts []string
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			parts = append(parts, kn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Transform is the renderable placement of an entity
type Transform struct {
	Translation [3]float32
}

// Attribute is a piece of data attachable to an entity
type Attribute interface {
	Kind() Kind
	apply(r *record)
}

// Position is the world-space center of an entity
type Position physics.Vector2D

// Velocity is the per-tick displacement of an entity
type Velocity physics.Vector2D

// Shape is the full width and height of an entity
type Shape physics.Vector2D

// Tag marks an entity with a role
type Tag Kind

// Role tags
const (
	IsBall     = Tag(KindBall)
	IsCollider = Tag(KindCollider)
	IsPaddle   = Tag(KindPaddle)
)

func (Position) Kind() Kind { return KindPosition }
func (Velocity) Kind() Kind { return KindVelocity }
func (Shape) Kind() Kind { return KindShape }
func (Transform) Kind() Kind { return KindTransform }
func (t Tag) Kind() Kind { return Kind(t) }

func (p Position) apply(r *record) { r.position = physics.Vector2D(p) }
func (v Velocity) apply(r *record) { r.velocity = physics.Vector2D(v) }
func (s Shape) apply(r *record) { r.shape = physics.Vector2D(s) }
func (t Transform) apply(r *record) { r.transform = t }
func (Tag) apply(*record) {}

type record struct {
	id        ID
	kinds     Kind
	position  physics.Vector2D
	velocity  physics.Vector2D
	shape     physics.Vector2D
	transform Transform
}

// Store owns all entity attribute data. Records live in creation order in a
// single slice; index maps an ID to its slot. A Store is not safe for
// concurrent use.
type Store struct {
	records []record
	index   map[ID]int
}

// NewStore creates an empty entity store
func NewStore() *Store {
	return &Store{
		index: make(map[ID]int),
	}
}

// Create allocates a new entity with the given attributes and returns its ID
func (s *Store) Create(attrs ...Attribute) ID {
	basic := ecs.NewBasic()
	id := ID(basic.ID())

	r := record{id: id}
	for _, a := range attrs {
		a.apply(&r)
		r.kinds |= a.Kind()
	}

	s.index[id] = len(s.records)
	s.records = append(s.records, r)
	return id
}

// Len returns the number of entities in the store
func (s *Store) Len() int {
	return len(s.records)
}

// Has reports whether the entity exists and carries every kind in kinds
func (s *Store) Has(id ID, kinds Kind) bool {
	i, ok := s.index[id]
	return ok && s.records[i].kinds&kinds == kinds
}

// Kinds returns the attribute set of an entity
func (s *Store) Kinds(id ID) (Kind, error) {
	r, err := s.lookup(id, 0)
	if err != nil {
		return 0, err
	}
	return r.kinds, nil
}

// Query yields, in creation order, every entity carrying all of required
// and none of excluded.
func (s *Store) Query(required, excluded Kind) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for i := range s.records {
			r := &s.records[i]
			if r.kinds&required != required || r.kinds&excluded != 0 {
				continue
			}
			if !yield(r.id) {
				return
			}
		}
	}
}

// First returns the first entity matching the query
func (s *Store) First(required, excluded Kind) (ID, bool) {
	for id := range s.Query(required, excluded) {
		return id, true
	}
	return 0, false
}

// Attach adds or replaces attributes on an existing entity
func (s *Store) Attach(id ID, attrs ...Attribute) error {
	r, err := s.lookup(id, 0)
	if err != nil {
		return err
	}
	for _, a := range attrs {
		a.apply(r)
		r.kinds |= a.Kind()
	}
	return nil
}

// Detach removes the given kinds from an entity
func (s *Store) Detach(id ID, kinds Kind) error {
	r, err := s.lookup(id, 0)
	if err != nil {
		return err
	}
	r.kinds &^= kinds
	return nil
}

// Position returns the position of an entity
func (s *Store) Position(id ID) (physics.Vector2D, error) {
	r, err := s.lookup(id, KindPosition)
	if err != nil {
		return physics.Vector2D{}, err
	}
	return r.position, nil
}

// SetPosition overwrites the position of an entity
func (s *Store) SetPosition(id ID, p physics.Vector2D) error {
	r, err := s.lookup(id, KindPosition)
	if err != nil {
		return err
	}
	r.position = p
	return nil
}

// Velocity returns the velocity of an entity
func (s *Store) Velocity(id ID) (physics.Vector2D, error) {
	r, err := s.lookup(id, KindVelocity)
	if err != nil {
		return physics.Vector2D{}, err
	}
	return r.velocity, nil
}

// SetVelocity overwrites the velocity of an entity
func (s *Store) SetVelocity(id ID, v physics.Vector2D) error {
	r, err := s.lookup(id, KindVelocity)
	if err != nil {
		return err
	}
	r.velocity = v
	return nil
}

// Shape returns the shape extents of an entity
func (s *Store) Shape(id ID) (physics.Vector2D, error) {
	r, err := s.lookup(id, KindShape)
	if err != nil {
		return physics.Vector2D{}, err
	}
	return r.shape, nil
}

// SetShape overwrites the shape extents of an entity
func (s *Store) SetShape(id ID, v physics.Vector2D) error {
	r, err := s.lookup(id, KindShape)
	if err != nil {
		return err
	}
	r.shape = v
	return nil
}

// Transform returns the renderable transform of an entity
func (s *Store) Transform(id ID) (Transform, error) {
	r, err := s.lookup(id, KindTransform)
	if err != nil {
		return Transform{}, err
	}
	return r.transform, nil
}

// SetTransform overwrites the renderable transform of an entity
func (s *Store) SetTransform(id ID, t Transform) error {
	r, err := s.lookup(id, KindTransform)
	if err != nil {
		return err
	}
	r.transform = t
	return nil
}

// lookup returns the record for id, requiring every kind in want.
// The pointer is only valid until the next Create.
func (s *Store) lookup(id ID, want Kind) (*record, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	r := &s.records[i]
	if missing := want &^ r.kinds; missing != 0 {
		return nil, fmt.Errorf("entity %d has no %s: %w", id, missing, ErrNotFound)
	}
	return r, nil
}
