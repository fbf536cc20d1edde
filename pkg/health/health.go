// Package health exposes liveness and readiness probes for a running
// simulation. The headless driver serves them over HTTP so soak runs can be
// watched by the same tooling that watches services.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/opd-ai/go-pong/pkg/physics"
)

// Status values reported by CheckHealth
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// readinessTimeout bounds a single readiness probe
const readinessTimeout = 5 * time.Second

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check returns an error if the component is unhealthy
	Check(ctx context.Context) error
}

// HealthStatus is the aggregated result of every registered check.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth is the result of one check.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker runs registered checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a check, replacing any check with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth runs every check. The overall status is healthy only if all
// of them pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: StatusHealthy,
		Checks: make(map[string]ComponentHealth, len(hc.checks)),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = StatusUnhealthy
			status.Checks[name] = ComponentHealth{Status: StatusUnhealthy, Message: err.Error()}
			continue
		}
		status.Checks[name] = ComponentHealth{Status: StatusHealthy}
	}

	return status
}

// LivenessHandler answers 200 as long as the process can serve requests.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs every check and answers 200 when all pass, 503
// otherwise.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if health.Status == StatusHealthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}

// TickProgressCheck fails when the simulation tick has not advanced within
// maxStall of the previous probe that saw it move.
type TickProgressCheck struct {
	tick     func() uint64
	maxStall time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastTick uint64
	lastSeen time.Time
}

// NewTickProgressCheck creates a stall detector around a tick source.
func NewTickProgressCheck(tick func() uint64, maxStall time.Duration) *TickProgressCheck {
	return &TickProgressCheck{
		tick:     tick,
		maxStall: maxStall,
		now:      time.Now,
	}
}

// Name returns the name of this health check.
func (c *TickProgressCheck) Name() string {
	return "simulation"
}

// Check compares the current tick to the last observed one.
func (c *TickProgressCheck) Check(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	current := c.tick()
	if c.lastSeen.IsZero() || current != c.lastTick {
		c.lastTick = current
		c.lastSeen = now
		return nil
	}
	if stalled := now.Sub(c.lastSeen); stalled > c.maxStall {
		return fmt.Errorf("simulation stalled at tick %d for %s", current, stalled.Round(time.Millisecond))
	}
	return nil
}

// BallContainedCheck fails when the ball is missing or has left the
// rectangle [-Limit.X, Limit.X] x [-Limit.Y, Limit.Y]. With walls enabled
// this catches a ball that tunnelled through a boundary.
type BallContainedCheck struct {
	position func() (physics.Vector2D, bool)
	limit    physics.Vector2D
}

// NewBallContainedCheck creates a containment check around a position source.
func NewBallContainedCheck(position func() (physics.Vector2D, bool), limit physics.Vector2D) *BallContainedCheck {
	return &BallContainedCheck{position: position, limit: limit}
}

// Name returns the name of this health check.
func (c *BallContainedCheck) Name() string {
	return "ball"
}

// Check verifies the ball exists and lies inside the limit.
func (c *BallContainedCheck) Check(ctx context.Context) error {
	pos, ok := c.position()
	if !ok {
		return fmt.Errorf("ball not found")
	}
	if math.Abs(pos.X) > c.limit.X || math.Abs(pos.Y) > c.limit.Y {
		return fmt.Errorf("ball at (%.1f, %.1f) outside limit (%.1f, %.1f)", pos.X, pos.Y, c.limit.X, c.limit.Y)
	}
	return nil
}
