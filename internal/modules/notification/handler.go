package notification

import (
	"net/http"

	"stayinn/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/:topic", h.Subscribe)
}

// Subscribe upgrades the connection and parks it on the requested topic.
// The read loop only serves to detect the peer going away; subscribers
// never send application data.
func (h *Handler) Subscribe(c *gin.Context) {
	topic := c.Param("topic")
	if topic == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_TOPIC", "Topic is required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Subscribe(topic, conn)
	go func() {
		defer h.hub.Unsubscribe(topic, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
