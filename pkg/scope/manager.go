// Package scope serializes work per account scope. Each scope gets one
// worker goroutine fed by a bounded FIFO queue, so mutations for a scope
// execute strictly in submission order while different scopes proceed
// concurrently.
package scope

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"fedisync/pkg/logger"
)

var (
	// ErrQueueFull is returned by Perform when the scope's queue is at
	// capacity. The caller may retry or surface the overload.
	ErrQueueFull = errors.New("scope queue full")
	// ErrClosed is returned by Perform after Close.
	ErrClosed = errors.New("scope manager closed")
)

// Job is a unit of serialized work.
type Job func()

type worker struct {
	ch chan Job
}

// Manager owns the per-scope workers. Workers are created lazily on the
// first Perform for a scope and live until Close.
type Manager struct {
	mu       sync.Mutex
	workers  map[string]*worker
	capacity int
	closed   bool
	wg       sync.WaitGroup
}

// NewManager creates a Manager whose per-scope queues hold up to
// capacity pending jobs. Capacity must be > 0.
func NewManager(capacity int) *Manager {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Manager{workers: map[string]*worker{}, capacity: capacity}
}

// Perform enqueues job on the scope's serial queue without blocking. Jobs
// for one scope run in enqueue order on a single goroutine.
func (m *Manager) Perform(scopeID string, job Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	w, ok := m.workers[scopeID]
	if !ok {
		w = &worker{ch: make(chan Job, m.capacity)}
		m.workers[scopeID] = w
		m.wg.Add(1)
		go m.run(w)
		logger.Log.Debug("scope_worker_started", zap.String("scope", scopeID))
	}
	select {
	case w.ch <- job:
		return nil
	default:
		logger.Log.Warn("scope_queue_full",
			zap.String("scope", scopeID),
			zap.Int("capacity", m.capacity))
		return ErrQueueFull
	}
}

func (m *Manager) run(w *worker) {
	defer m.wg.Done()
	for job := range w.ch {
		job()
	}
}

// Len returns the number of jobs pending for a scope.
func (m *Manager) Len(scopeID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.workers[scopeID]; ok {
		return len(w.ch)
	}
	return 0
}

// Close stops accepting new jobs, drains every queue and waits for the
// workers to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	for _, w := range m.workers {
		close(w.ch)
	}
	m.mu.Unlock()
	m.wg.Wait()
}
