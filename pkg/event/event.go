// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/physics"
)

// Type represents the type of event
type Type string

// Common event types
const (
	EntitySpawned     Type = "entity_spawned"
	CollisionDetected Type = "collision_detected"
	BallBounced       Type = "ball_bounced"
	BallReset         Type = "ball_reset"
	FrameCompleted    Type = "frame_completed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a handler for a specific event type
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// HasSubscribers reports whether anything listens for eventType
func (b *Bus) HasSubscribers(eventType Type) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType]) > 0
}

// Specific event implementations

// SpawnEvent is published when the arena creates an entity
type SpawnEvent struct {
	BaseEvent
	Entity entity.ID
	Role   entity.Kind
}

// NewSpawnEvent creates a new spawn event
func NewSpawnEvent(source interface{}, id entity.ID, role entity.Kind) *SpawnEvent {
	return &SpawnEvent{
		BaseEvent: BaseEvent{EventType: EntitySpawned, Source: source},
		Entity:    id,
		Role:      role,
	}
}

// CollisionEvent contains information about a ball hitting a collider
type CollisionEvent struct {
	BaseEvent
	Ball     entity.ID
	Collider entity.ID
	Side     physics.Side
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, ball, collider entity.ID, side physics.Side) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{EventType: CollisionDetected, Source: source},
		Ball:      ball,
		Collider:  collider,
		Side:      side,
	}
}

// BallEvent reports a change to the ball's velocity. It is used for both
// bounces and resets.
type BallEvent struct {
	BaseEvent
	Ball     entity.ID
	Side     physics.Side
	Velocity physics.Vector2D
}

// NewBounceEvent creates a new bounce event
func NewBounceEvent(source interface{}, ball entity.ID, side physics.Side, velocity physics.Vector2D) *BallEvent {
	return &BallEvent{
		BaseEvent: BaseEvent{EventType: BallBounced, Source: source},
		Ball:      ball,
		Side:      side,
		Velocity:  velocity,
	}
}

// NewResetEvent creates a new ball reset event
func NewResetEvent(source interface{}, ball entity.ID, velocity physics.Vector2D) *BallEvent {
	return &BallEvent{
		BaseEvent: BaseEvent{EventType: BallReset, Source: source},
		Ball:      ball,
		Velocity:  velocity,
	}
}

// FrameEvent is published after every simulation step
type FrameEvent struct {
	BaseEvent
	Tick       uint64
	Collisions int
	Bounces    int
}

// NewFrameEvent creates a new frame event
func NewFrameEvent(source interface{}, tick uint64, collisions, bounces int) *FrameEvent {
	return &FrameEvent{
		BaseEvent:  BaseEvent{EventType: FrameCompleted, Source: source},
		Tick:       tick,
		Collisions: collisions,
		Bounces:    bounces,
	}
}
