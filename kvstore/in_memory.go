package kvstore

import (
	"sort"
	"sync"
)

// InMemoryStore is a process-local Store backed by a map.
//
// Concurrency: protected by RWMutex. Objects are stored by value, so callers
// cannot mutate stored state through retained references.
type InMemoryStore struct {
	mu      sync.RWMutex
	objects map[string]RetrievableObject
}

// NewInMemoryStore creates a new in-memory object store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{objects: make(map[string]RetrievableObject)}
}

// Put stores an object under its id, replacing any previous entry.
func (s *InMemoryStore) Put(obj RetrievableObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.ID] = obj
	return nil
}

// Get returns the object stored under id, or ErrNotFound.
func (s *InMemoryStore) Get(id string) (RetrievableObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[id]
	if !ok {
		return RetrievableObject{}, ErrNotFound
	}
	return obj, nil
}

// Delete removes the object stored under id. Missing ids are an error to
// match Get's contract.
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return ErrNotFound
	}
	delete(s.objects, id)
	return nil
}

// List returns all stored objects ordered by id.
func (s *InMemoryStore) List() []RetrievableObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RetrievableObject, 0, len(s.objects))
	for _, obj := range s.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
