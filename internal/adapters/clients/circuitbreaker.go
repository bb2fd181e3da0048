package clients

import (
	"sync"
	"time"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down elapses.
	StateOpen

	// StateHalfOpen lets a limited number of probes through.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a CircuitBreaker.
type CircuitBreakerConfig struct {
	// MaxFailures consecutive failures open the circuit.
	MaxFailures int

	// Timeout is the open-state cool-down before probing.
	Timeout time.Duration

	// HalfOpenLimit is both the probe concurrency and the number of
	// consecutive probe successes that close the circuit.
	HalfOpenLimit int
}

// CircuitBreaker stops hammering the remote endpoint while it is down, so an
// offline session does not pay the full retry cost on every sync cycle.
//
//	closed --MaxFailures--> open --Timeout--> half-open --HalfOpenLimit successes--> closed
//	                          ^-------------------any probe failure--------------------'
type CircuitBreaker struct {
	mu        sync.Mutex
	cfg       CircuitBreakerConfig
	state     State
	failures  int
	successes int
	inFlight  int
	openedAt  time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed breaker. Non-positive limits default to 1.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg.MaxFailures = max(cfg.MaxFailures, 1)
	cfg.HalfOpenLimit = max(cfg.HalfOpenLimit, 1)

	return &CircuitBreaker{cfg: cfg, state: StateClosed, now: time.Now}
}

// OnStateChange registers a callback run asynchronously on every transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a request may proceed. Callers that get true must
// report the outcome with RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.Timeout {
		cb.setState(StateHalfOpen)
	}

	switch cb.state {
	case StateClosed:
		return true
	case StateHalfOpen:
		if cb.inFlight >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.inFlight++

		return true
	default:
		return false
	}
}

// RecordSuccess reports a completed request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.inFlight = max(cb.inFlight-1, 0)
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.setState(StateClosed)
		}
	}
}

// RecordFailure reports a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures++

		if cb.failures >= cb.cfg.MaxFailures {
			cb.setState(StateOpen)
		}
	case StateHalfOpen:
		cb.setState(StateOpen)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(to State) {
	from := cb.state
	if from == to {
		return
	}

	cb.state = to
	cb.failures = 0
	cb.successes = 0
	cb.inFlight = 0

	if to == StateOpen {
		cb.openedAt = cb.now()
	}

	if cb.onStateChange != nil {
		go cb.onStateChange(from, to)
	}
}
