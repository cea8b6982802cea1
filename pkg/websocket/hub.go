package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub управляет всеми клиентами по темам.
type Hub struct {
	topics map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*Client]bool),
		logger: logger.Named("ws_hub"),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[client.Topic] == nil {
		h.topics[client.Topic] = make(map[*Client]bool)
	}
	h.topics[client.Topic][client] = true
	h.logger.Debug("Клиент зарегистрирован", zap.String("topic", client.Topic), zap.Uint64("userID", client.UserID))
}

// Unregister удаляет клиента и закрывает его канал. Повторный вызов безопасен.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.topics[client.Topic]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.topics, client.Topic)
	}
}

// Publish отправляет payload всем клиентам темы. Клиент с полным буфером пропускает
// сообщение; следующий снимок всё равно новее.
func (h *Hub) Publish(topic, messageType string, payload interface{}) error {
	message, err := json.Marshal(Envelope{
		Type:      messageType,
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.topics[topic] {
		select {
		case client.Send <- message:
		default:
			h.logger.Warn("Сообщение для медленного клиента отброшено", zap.String("topic", topic), zap.Uint64("userID", client.UserID))
		}
	}
	return nil
}

// CloseTopic уведомляет и отключает всех клиентов темы.
func (h *Hub) CloseTopic(topic string) {
	_ = h.Publish(topic, TypeViewClosed, nil)

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.topics[topic] {
		h.removeLocked(client)
	}
}

func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
