package schedule

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// Manual is a ports.Scheduler whose jobs run only when Tick is called.
// It backs one-shot CLI runs and tests that must not wait on a wall clock.
type Manual struct {
	mu     sync.Mutex
	nextID int
	jobs   map[int]manualJob
}

type manualJob struct {
	interval time.Duration
	run      func()
}

var _ ports.Scheduler = (*Manual)(nil)

// NewManual creates an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{jobs: make(map[int]manualJob)}
}

// Every implements ports.Scheduler.
func (m *Manual) Every(interval time.Duration, job func()) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.jobs[id] = manualJob{interval: interval, run: job}

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		delete(m.jobs, id)
	}, nil
}

// Tick runs every registered job once, synchronously, in registration order.
func (m *Manual) Tick() {
	m.mu.Lock()
	runs := make([]func(), 0, len(m.jobs))

	for id := range m.nextID {
		if j, ok := m.jobs[id]; ok {
			runs = append(runs, j.run)
		}
	}
	m.mu.Unlock()

	for _, run := range runs {
		run()
	}
}

// Jobs returns the number of registered jobs.
func (m *Manual) Jobs() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.jobs)
}

// Intervals returns the intervals of registered jobs in registration order.
func (m *Manual) Intervals() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]time.Duration, 0, len(m.jobs))

	for id := range m.nextID {
		if j, ok := m.jobs[id]; ok {
			out = append(out, j.interval)
		}
	}

	return out
}
