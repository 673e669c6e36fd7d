package lol

import "sync"

// Persistence stores small integers across runs. The unlock marker and game
// facts go through it.
type Persistence interface {
	SavePersistent(key string, value int) error
	ReadPersistent(key string, def int) int
}

// UnlockedKey holds the highest level the player may choose.
const UnlockedKey = "unlocked"

// MemoryStore is a Persistence kept in memory. It counts saves per key.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int
	saves  map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int), saves: make(map[string]int)}
}

func (m *MemoryStore) SavePersistent(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.saves[key]++
	return nil
}

func (m *MemoryStore) ReadPersistent(key string, def int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

// Saves returns how many times key was written.
func (m *MemoryStore) Saves(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[key]
}
