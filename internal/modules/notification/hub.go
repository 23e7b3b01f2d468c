package notification

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// subscriber wraps a connection with a write lock. gorilla/websocket allows
// only one concurrent writer per connection, and Publish is called from
// independent request goroutines.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// Hub fans events out to websocket subscribers grouped by topic. Publish
// never blocks on a slow peer beyond the serialized write: writes that fail
// drop the connection.
type Hub struct {
	topics map[string]map[*websocket.Conn]*subscriber
	mutex  sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*websocket.Conn]*subscriber),
	}
}

func (h *Hub) Subscribe(topic string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*websocket.Conn]*subscriber)
	}
	h.topics[topic][conn] = &subscriber{conn: conn}
}

func (h *Hub) Unsubscribe(topic string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.remove(topic, conn)
}

// Publish implements the EventPublisher contract used by the booking and
// payment services.
func (h *Hub) Publish(topic string, payload any) {
	h.mutex.RLock()
	subs := make([]*subscriber, 0, len(h.topics[topic]))
	for _, sub := range h.topics[topic] {
		subs = append(subs, sub)
	}
	h.mutex.RUnlock()

	for _, sub := range subs {
		if err := sub.writeJSON(payload); err != nil {
			log.Printf("level=info msg=dropping websocket subscriber topic=%s err=%v", topic, err)
			h.mutex.Lock()
			h.remove(topic, sub.conn)
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) SubscriberCount(topic string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.topics[topic])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for topic, subs := range h.topics {
		for conn := range subs {
			_ = conn.Close()
		}
		delete(h.topics, topic)
	}
}

// remove expects h.mutex held for writing.
func (h *Hub) remove(topic string, conn *websocket.Conn) {
	if subs, ok := h.topics[topic]; ok {
		if _, present := subs[conn]; present {
			_ = conn.Close()
			delete(subs, conn)
		}
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
}
