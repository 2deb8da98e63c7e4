package inventory

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Alert is pushed to connected admin dashboards when a product crosses its
// low stock threshold or sells out.
type Alert struct {
	Type      string             `json:"type"`
	ProductID primitive.ObjectID `json:"product_id"`
	Name      string             `json:"name"`
	Stock     int                `json:"stock"`
	Threshold int                `json:"threshold"`
	At        time.Time          `json:"at"`
}

const (
	AlertLowStock   = "low_stock"
	AlertOutOfStock = "out_of_stock"
)

// Hub fans stock alerts out to connected websocket clients. Writes to a dead
// connection drop that client.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(alert Alert) {
	payload, err := json.Marshal(alert)
	if err != nil {
		h.logger.Error("failed to encode stock alert", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("dropping stale alert subscriber", zap.Error(err))
			c.Close()
			delete(h.clients, c)
		}
	}
}
