package events

import (
	"slices"
	"sync"
)

// listenerSet is the registration core shared by the event types. L is the
// listener handle (callback or channel) and T the notified value.
// Listeners are delivered to in registration order.
type listenerSet[L any, T any] struct {
	mu         sync.RWMutex
	listeners  map[uint64]L
	nextID     uint64
	replayLast bool
	last       T
	hasLast    bool
}

func newListenerSet[L any, T any](replayLast bool) *listenerSet[L, T] {
	return &listenerSet[L, T]{
		listeners:  make(map[uint64]L),
		replayLast: replayLast,
	}
}

// add registers l and returns the value that should be replayed to it, if any
func (s *listenerSet[L, T]) add(l L) (id uint64, replay T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = s.nextID
	s.nextID++
	s.listeners[id] = l
	if s.replayLast && s.hasLast {
		return id, s.last, true
	}
	return id, replay, false
}

func (s *listenerSet[L, T]) remover(id uint64) func() {
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// publish records value for replay and snapshots the listeners to deliver to.
// Delivery happens outside the lock so listeners may unregister themselves.
func (s *listenerSet[L, T]) publish(value T) []L {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replayLast {
		s.last = value
		s.hasLast = true
	}

	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	snapshot := make([]L, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, s.listeners[id])
	}
	return snapshot
}

func (s *listenerSet[L, T]) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}
