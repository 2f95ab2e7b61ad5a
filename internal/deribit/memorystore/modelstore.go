package memorystore

import (
	"sync"

	"optionflow/internal/flow"
)

// ModelStore holds the latest dashboard model and fans updates out to
// subscribers. Stored models are treated as read-only.
type ModelStore struct {
	mu      sync.RWMutex
	model   flow.Model
	present bool

	subMu  sync.Mutex
	subs   map[int]chan flow.Model
	nextID int
}

func NewModelStore() *ModelStore {
	return &ModelStore{
		subs: make(map[int]chan flow.Model),
	}
}

// Set replaces the current model and notifies subscribers. A subscriber that
// has not consumed the previous update only sees the newest one.
func (s *ModelStore) Set(m flow.Model) {
	s.mu.Lock()
	s.model = m
	s.present = true
	s.mu.Unlock()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- m
	}
}

// Get returns the current model and whether one has been built yet.
func (s *ModelStore) Get() (flow.Model, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model, s.present
}

// Subscribe registers for updates. The returned cancel func must be called
// once the caller stops reading.
func (s *ModelStore) Subscribe() (<-chan flow.Model, func()) {
	ch := make(chan flow.Model, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// SubscriberCount returns the number of active subscribers.
func (s *ModelStore) SubscriberCount() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}
