package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

const (
	// EventContentChanged событие об изменении контента в админке.
	EventContentChanged = "content.changed"
	// EventAdminsOnline рассылается при подключении и отключении админа.
	// Правки идут по принципу last write wins, поэтому админке полезно видеть соседей.
	EventAdminsOnline = "admins.online"
)

// ContentChange полезная нагрузка события content.changed.
type ContentChange struct {
	Kind   string `json:"kind"`
	Action string `json:"action"`
	ID     string `json:"id"`
}

// AdminsOnline полезная нагрузка admins.online. Одна вкладка = одно соединение,
// UserIDs без повторов.
type AdminsOnline struct {
	Connections int      `json:"connections"`
	UserIDs     []string `json:"user_ids"`
}

// Hub рассылает события всем подключённым админам.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 32),
		done:       make(chan struct{}),
	}
}

// Run запускает главный цикл хаба до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.announcePresence()
		case client := <-h.unregister:
			if h.remove(client) {
				h.announcePresence()
			}
		case payload := <-h.broadcast:
			h.send(payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast отправляет событие всем клиентам.
// Сообщение следует контракту: "type" имя события, "data" полезная нагрузка.
func (h *Hub) Broadcast(event string, data any) error {
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	select {
	case h.broadcast <- raw:
	case <-h.done:
	default:
		logger.L().WithFields(logrus.Fields{"event": event}).Warn("ws: очередь рассылки переполнена, событие пропущено")
	}
	return nil
}

// ContentChanged реализует уведомление менеджеров контента.
func (h *Hub) ContentChanged(kind, action, id string) {
	_ = h.Broadcast(EventContentChanged, ContentChange{Kind: kind, Action: action, ID: id})
}

func (h *Hub) remove(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return false
	}
	delete(h.clients, client)
	close(client.send)
	return true
}

// Online снимок подключённых админов.
func (h *Hub) Online() AdminsOnline {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{}, len(h.clients))
	ids := make([]string, 0, len(h.clients))
	for client := range h.clients {
		if _, ok := seen[client.userID]; ok {
			continue
		}
		seen[client.userID] = struct{}{}
		ids = append(ids, client.userID.String())
	}
	sort.Strings(ids)
	return AdminsOnline{Connections: len(h.clients), UserIDs: ids}
}

// announcePresence вызывается только из Run, поэтому пишет в клиентов напрямую.
func (h *Hub) announcePresence() {
	raw, err := json.Marshal(map[string]any{
		"type": EventAdminsOnline,
		"data": h.Online(),
	})
	if err != nil {
		logger.L().WithError(err).Error("ws: не удалось сериализовать admins.online")
		return
	}
	h.send(raw)
}

func (h *Hub) send(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Медленный клиент: закрываем канал, writePump завершит соединение
			delete(h.clients, client)
			close(client.send)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}
