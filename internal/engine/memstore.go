package engine

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// MemStore is a thread-safe Storage kept in memory and, when a Persistence
// is attached, mirrored to disk in the background.
type MemStore struct {
	mu        sync.RWMutex
	data      map[string]string
	persister *Persistence
	flushMu   sync.Mutex // Orders slot syncs so the newest value lands last
	wg        sync.WaitGroup
}

// NewMemStore initializes a store.
// It accepts existing data (from LoadAll) and an optional persister.
func NewMemStore(initialData map[string]string, p *Persistence) *MemStore {
	if initialData == nil {
		initialData = make(map[string]string)
	}
	return &MemStore{
		data:      initialData,
		persister: p,
	}
}

// Wait waits for all background persistence tasks to complete.
func (m *MemStore) Wait() {
	m.wg.Wait()
}

func (m *MemStore) GetItem(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (m *MemStore) SetItem(key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()

	m.persist(key)
	return nil
}

func (m *MemStore) RemoveItem(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()

	m.persist(key)
	return nil
}

// Keys lists the occupied slots.
func (m *MemStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]string, 0, len(m.data))
	for k := range m.data {
		list = append(list, k)
	}
	return list
}

// persist syncs key to disk in the background. The goroutine reads the
// in-memory value when it runs rather than when it was queued, so a burst of
// writes always leaves the latest value on disk.
func (m *MemStore) persist(key string) {
	if m.persister == nil {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.flushMu.Lock()
		defer m.flushMu.Unlock()

		m.mu.RLock()
		val, ok := m.data[key]
		m.mu.RUnlock()

		var err error
		if ok {
			err = m.persister.SaveItem(key, val)
		} else {
			err = m.persister.DeleteItem(key)
		}
		if err != nil {
			log.Warn().Err(err).Str("dir", m.persister.DataDir).Str("key", key).Msg("slot sync failed")
		}
	}()
}
