package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *Hub, topic string) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Subscribe(topic, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, "hotel-7")

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount("hotel-7") == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.SubscriberCount("hotel-7"))

	hub.Publish("hotel-7", map[string]any{"event": "room-availability-changed", "available_units": 3})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "room-availability-changed", got["event"])
}

func TestHub_ConcurrentPublishesSerializeWrites(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, "hotel-7")

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount("hotel-7") == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.SubscriberCount("hotel-7"))

	// Cancel and payment confirmation publish from independent request
	// goroutines; the hub must serialize writes per connection.
	const publishers = 32
	var wg sync.WaitGroup
	wg.Add(publishers)
	for i := 0; i < publishers; i++ {
		go func(n int) {
			defer wg.Done()
			hub.Publish("hotel-7", map[string]any{"event": "room-availability-changed", "available_units": n})
		}(i)
	}

	received := 0
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for received < publishers {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "room-availability-changed", got["event"])
		received++
	}
	wg.Wait()
	assert.Equal(t, publishers, received)
	assert.Equal(t, 1, hub.SubscriberCount("hotel-7"))
}

func TestHub_PublishToEmptyTopicIsNoOp(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Publish("hotel-404", map[string]any{"event": "noop"})
	assert.Equal(t, 0, hub.SubscriberCount("hotel-404"))
}

func TestHub_UnsubscribeRemovesConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, "hotel-1")
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount("hotel-1") == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.SubscriberCount("hotel-1"))

	conn.Close()
	// The server side only notices on the next write; force one.
	deadline = time.Now().Add(2 * time.Second)
	for hub.SubscriberCount("hotel-1") > 0 && time.Now().Before(deadline) {
		hub.Publish("hotel-1", map[string]any{"event": "ping"})
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 0, hub.SubscriberCount("hotel-1"))
}
