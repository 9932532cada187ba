package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Memory кэш в памяти процесса с TTL и инвалидацией по префиксу.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	gens    map[string]uint64
	stop    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemory создаёт кэш и запускает фоновую очистку.
func NewMemory() *Memory {
	m := &Memory{
		entries: make(map[string]memoryEntry),
		gens:    make(map[string]uint64),
		stop:    make(chan struct{}),
	}
	go m.cleanup(5 * time.Minute)
	return m
}

func (m *Memory) Name() string { return "memory" }

// Get возвращает значение, если оно есть и не истекло.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		// Истёкшие записи удаляет cleanup
		return nil, ErrCacheMiss
	}
	return entry.data, nil
}

// Set сохраняет значение с TTL.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{data: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// InvalidatePrefix удаляет все ключи с префиксом и сдвигает его поколение.
func (m *Memory) InvalidatePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gens[prefix]++

	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *Memory) Generation(_ context.Context, prefix string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gens[prefix], nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Close останавливает фоновую очистку.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

// cleanup периодически удаляет истёкшие записи.
func (m *Memory) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			now := time.Now()
			for key, entry := range m.entries {
				if now.After(entry.expiresAt) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}
