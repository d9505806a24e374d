package prefs

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps favorites in process memory.
type MemoryStore struct {
	mu        sync.Mutex
	favorites map[string]map[string]bool
}

func NewMemory() *MemoryStore {
	return &MemoryStore{favorites: make(map[string]map[string]bool)}
}

func (m *MemoryStore) List(ctx context.Context, owner string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := m.favorites[owner]
	if len(set) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryStore) Toggle(ctx context.Context, owner, libraryID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := m.favorites[owner]
	if set == nil {
		set = make(map[string]bool)
		m.favorites[owner] = set
	}
	if set[libraryID] {
		delete(set, libraryID)
		return false, nil
	}
	set[libraryID] = true
	return true, nil
}

func (m *MemoryStore) RemoveLibrary(ctx context.Context, libraryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, set := range m.favorites {
		delete(set, libraryID)
	}
	return nil
}
