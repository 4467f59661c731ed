package instrument

import (
	"errors"
	"sync"

	"touchkeys/debug"
)

// Manager owns the running workers and tells the UI when any of them changed
type Manager struct {
	mu      sync.RWMutex
	workers []*Worker

	// Notify TUI of updates
	UpdateChan chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		UpdateChan: make(chan struct{}, 1),
	}
}

// Add registers and starts w
func (m *Manager) Add(w *Worker) {
	w.OnUpdate(m.notifyUpdate)

	m.mu.Lock()
	m.workers = append(m.workers, w)
	m.mu.Unlock()

	w.Start()
	debug.Log("worker", "added %s", w.Path())
}

// Workers returns the registered workers in the order they were added
func (m *Manager) Workers() []*Worker {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Worker(nil), m.workers...)
}

// Snapshots returns every worker's latest snapshot
func (m *Manager) Snapshots() []Snapshot {
	workers := m.Workers()
	out := make([]Snapshot, len(workers))
	for i, w := range workers {
		out[i] = w.Snapshot()
	}
	return out
}

// StopAll stops every worker and returns their combined errors
func (m *Manager) StopAll() error {
	var errs []error
	for _, w := range m.Workers() {
		if err := w.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Wait blocks until every worker's loop has ended
func (m *Manager) Wait() error {
	var errs []error
	for _, w := range m.Workers() {
		if err := w.Wait(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}
