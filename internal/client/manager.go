package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store CRUD одного вида контента. *Resource реализует его поверх HTTP API.
type Store[T, In any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id uuid.UUID, in In) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Confirm синхронно спрашивает подтверждение удаления.
type Confirm func(prompt string) bool

// Manager держит список одного вида контента для админки.
// После каждой успешной мутации список перечитывается целиком, ошибки уходят
// в Notifier, а прежний список остаётся.
type Manager[T, In any] struct {
	title    string
	store    Store[T, In]
	notifier Notifier

	mu    sync.RWMutex
	items []T
}

// NewManager создаёт менеджер. title попадает в тексты уведомлений.
func NewManager[T, In any](title string, store Store[T, In], notifier Notifier) *Manager[T, In] {
	return &Manager[T, In]{title: title, store: store, notifier: notifier}
}

// Items возвращает последний загруженный список.
func (m *Manager[T, In]) Items() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

// Refresh перечитывает список. При ошибке список не меняется.
func (m *Manager[T, In]) Refresh(ctx context.Context) error {
	items, err := m.store.List(ctx)
	if err != nil {
		m.fail("Failed to fetch "+m.title, err)
		return err
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	return nil
}

func (m *Manager[T, In]) Create(ctx context.Context, in In) error {
	if _, err := m.store.Create(ctx, in); err != nil {
		m.fail("Failed to create "+m.title, err)
		return err
	}
	m.ok(m.title + " created successfully")
	return m.Refresh(ctx)
}

func (m *Manager[T, In]) Update(ctx context.Context, id uuid.UUID, in In) error {
	if _, err := m.store.Update(ctx, id, in); err != nil {
		m.fail("Failed to update "+m.title, err)
		return err
	}
	m.ok(m.title + " updated successfully")
	return m.Refresh(ctx)
}

// Delete удаляет запись, если confirm вернул true. deleted == false без ошибки
// означает отказ в подтверждении.
func (m *Manager[T, In]) Delete(ctx context.Context, id uuid.UUID, confirm Confirm) (deleted bool, err error) {
	if confirm == nil || !confirm("Are you sure you want to delete this "+m.title+"?") {
		return false, nil
	}

	if err := m.store.Delete(ctx, id); err != nil {
		m.fail("Failed to delete "+m.title, err)
		return false, err
	}
	m.ok(m.title + " deleted successfully")
	return true, m.Refresh(ctx)
}

func (m *Manager[T, In]) ok(title string) {
	if m.notifier != nil {
		m.notifier.Notify(Notification{Title: "Success", Description: title})
	}
}

func (m *Manager[T, In]) fail(title string, err error) {
	if m.notifier != nil {
		m.notifier.Notify(Notification{Title: "Error", Description: title + ": " + err.Error(), Destructive: true})
	}
}
