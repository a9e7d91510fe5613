// Package selection holds the in-progress selection set and tells
// interested parties when it changes.
package selection

import (
	"sync"

	"github.com/abhisek/fitplan/internal/fitness"
)

// Listener receives a copy of the selection after every change.
type Listener func(fitness.SelectionSet)

// Manager owns a SelectionSet.
type Manager struct {
	mu        sync.Mutex
	set       fitness.SelectionSet
	listeners map[int]Listener
	nextID    int
}

// NewManager creates a Manager starting from initial.
func NewManager(initial fitness.SelectionSet) *Manager {
	return &Manager{
		set:       initial.Clone(),
		listeners: make(map[int]Listener),
	}
}

// Toggle applies fitness.SelectionSet.Toggle and notifies listeners.
// Nothing is notified when the toggle is rejected.
func (m *Manager) Toggle(cat fitness.Category, optionID string) error {
	m.mu.Lock()
	if err := m.set.Toggle(cat, optionID); err != nil {
		m.mu.Unlock()
		return err
	}
	snapshot, listeners := m.snapshotLocked()
	m.mu.Unlock()

	notify(listeners, snapshot)
	return nil
}

// Reset replaces the selection and notifies listeners.
func (m *Manager) Reset(set fitness.SelectionSet) {
	m.mu.Lock()
	m.set = set.Clone()
	snapshot, listeners := m.snapshotLocked()
	m.mu.Unlock()

	notify(listeners, snapshot)
}

// Current returns a copy of the selection.
func (m *Manager) Current() fitness.SelectionSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.Clone()
}

// Subscribe registers l and returns a function that unregisters it.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Manager) snapshotLocked() (fitness.SelectionSet, []Listener) {
	ls := make([]Listener, 0, len(m.listeners))
	for id := 0; id < m.nextID; id++ {
		if l, ok := m.listeners[id]; ok {
			ls = append(ls, l)
		}
	}
	return m.set.Clone(), ls
}

func notify(listeners []Listener, set fitness.SelectionSet) {
	for _, l := range listeners {
		l(set.Clone())
	}
}
