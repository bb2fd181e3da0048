package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrDuplicateChecker is returned when a checker name is registered twice.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker is implemented by adapters that can report their health.
//
//	func (s *BadgerStore) Name() string { return "storage" }
//
//	func (s *BadgerStore) Check(ctx context.Context) error { ... }
type HealthChecker interface {
	// Name identifies the component in health responses.
	Name() string

	// Check returns nil when the component is usable.
	Check(ctx context.Context) error
}

// HealthRegistry aggregates health checks from multiple components.
type HealthRegistry interface {
	// Register adds a critical checker; its failure makes the service unhealthy.
	Register(checker HealthChecker) error

	// RegisterNonCritical adds a checker whose failure only degrades the service.
	// The remote endpoint is registered this way since the app works offline.
	RegisterNonCritical(checker HealthChecker) error

	// CheckAll runs every checker concurrently.
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus represents the overall health state.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult contains the aggregated health check results.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Critical bool          `json:"critical"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

type registeredChecker struct {
	checker  HealthChecker
	critical bool
}

// DefaultHealthRegistry is a thread-safe HealthRegistry.
type DefaultHealthRegistry struct {
	mu       sync.RWMutex
	checkers []registeredChecker
	clock    Clock
}

// NewHealthRegistry creates an empty registry.
func NewHealthRegistry() *DefaultHealthRegistry {
	return &DefaultHealthRegistry{
		checkers: make([]registeredChecker, 0),
		clock:    SystemClock{},
	}
}

// Register adds a critical checker.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	return r.add(checker, true)
}

// RegisterNonCritical adds a checker whose failure only degrades the result.
func (r *DefaultHealthRegistry) RegisterNonCritical(checker HealthChecker) error {
	return r.add(checker, false)
}

func (r *DefaultHealthRegistry) add(checker HealthChecker, critical bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, c := range r.checkers {
		if c.checker.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.checkers = append(r.checkers, registeredChecker{checker: checker, critical: critical})

	return nil
}

// CheckAll runs all registered health checks concurrently.
// Any critical failure makes the result unhealthy; non-critical failures
// alone make it degraded.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := make([]registeredChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: r.clock.Now(),
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)

	for _, rc := range checkers {
		g.Go(func() error {
			start := time.Now()
			err := rc.checker.Check(ctx)

			cr := &CheckResult{
				Status:   HealthStatusHealthy,
				Critical: rc.critical,
				Duration: time.Since(start),
			}

			if err != nil {
				cr.Status = HealthStatusUnhealthy
				cr.Message = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()

			result.Checks[rc.checker.Name()] = cr
			result.Status = worse(result.Status, cr)

			return nil
		})
	}

	_ = g.Wait()

	return result
}

func worse(current HealthStatus, cr *CheckResult) HealthStatus {
	if cr.Status == HealthStatusHealthy || current == HealthStatusUnhealthy {
		return current
	}

	if cr.Critical {
		return HealthStatusUnhealthy
	}

	return HealthStatusDegraded
}
