// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/physics"
)

// TestNewEventBus tests the creation of a new event bus
func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}

	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}

	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBusSubscribe_ReturnsIncreasingIDs(t *testing.T) {
	bus := NewEventBus()

	first := bus.Subscribe(BallBounced, func(Event) {})
	second := bus.Subscribe(CollisionDetected, func(Event) {})

	if first != 1 || second != 2 {
		t.Errorf("expected subscription IDs 1 and 2, got %d and %d", first, second)
	}
	if !bus.HasSubscribers(BallBounced) {
		t.Error("expected subscribers for BallBounced")
	}
	if bus.HasSubscribers(FrameCompleted) {
		t.Error("expected no subscribers for FrameCompleted")
	}
}

func TestBusPublish_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(CollisionDetected, func(Event) { order = append(order, 1) })
	bus.Subscribe(CollisionDetected, func(Event) { order = append(order, 2) })
	bus.Subscribe(BallBounced, func(Event) { order = append(order, 99) })

	bus.Publish(NewCollisionEvent("test", 1, 2, physics.SideLeft))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected handlers [1 2], got %v", order)
	}
}

func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(NewFrameEvent(nil, 1, 0, 0))
}

func TestBusUnsubscribe_RemovesOnlyTarget(t *testing.T) {
	bus := NewEventBus()
	calls := map[string]int{}

	keep := bus.Subscribe(BallBounced, func(Event) { calls["keep"]++ })
	drop := bus.Subscribe(BallBounced, func(Event) { calls["drop"]++ })

	if !bus.Unsubscribe(BallBounced, drop) {
		t.Fatal("Unsubscribe() returned false for a live subscription")
	}
	if bus.Unsubscribe(BallBounced, drop) {
		t.Error("Unsubscribe() returned true twice for the same subscription")
	}
	if bus.Unsubscribe(CollisionDetected, keep) {
		t.Error("Unsubscribe() should not match a different event type")
	}

	bus.Publish(NewBounceEvent(nil, 1, physics.SideTop, physics.Vector2D{X: 5, Y: -2}))

	if calls["keep"] != 1 || calls["drop"] != 0 {
		t.Errorf("unexpected handler calls: %v", calls)
	}
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	var mu sync.Mutex
	received := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Subscribe(FrameCompleted, func(Event) {
				mu.Lock()
				received++
				mu.Unlock()
			})
			bus.Publish(NewFrameEvent(nil, 0, 0, 0))
		}()
	}
	wg.Wait()

	mu.Lock()
	received = 0
	mu.Unlock()

	bus.Publish(NewFrameEvent(nil, 1, 0, 0))
	if received != 20 {
		t.Errorf("expected 20 handlers after concurrent subscribe, got %d", received)
	}
}

func TestEventConstructors(t *testing.T) {
	velocity := physics.Vector2D{X: -5, Y: 0}

	tests := []struct {
		name     string
		event    Event
		expected Type
	}{
		{"spawn", NewSpawnEvent("arena", 7, entity.KindBall), EntitySpawned},
		{"collision", NewCollisionEvent("collision", 7, 8, physics.SideLeft), CollisionDetected},
		{"bounce", NewBounceEvent("resolution", 7, physics.SideLeft, velocity), BallBounced},
		{"reset", NewResetEvent("simulation", 7, velocity), BallReset},
		{"frame", NewFrameEvent("simulation", 3, 1, 1), FrameCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.GetType() != tt.expected {
				t.Errorf("GetType() = %v, want %v", tt.event.GetType(), tt.expected)
			}
			if tt.event.GetSource() == nil {
				t.Error("GetSource() returned nil")
			}
		})
	}

	collision := NewCollisionEvent("collision", 7, 8, physics.SideTop)
	if collision.Ball != 7 || collision.Collider != 8 || collision.Side != physics.SideTop {
		t.Errorf("unexpected collision event fields: %+v", collision)
	}

	bounce := NewBounceEvent("resolution", 7, physics.SideRight, velocity)
	if bounce.Velocity != velocity || bounce.Side != physics.SideRight {
		t.Errorf("unexpected bounce event fields: %+v", bounce)
	}
}
