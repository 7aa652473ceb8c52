package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
)

// OrderEvent is pushed to the order owner whenever an order changes status
type OrderEvent struct {
	Type    string            `json:"type"` // always "order_status"
	OrderID uint              `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
	At      time.Time         `json:"at"`
}

// Client is one websocket session of a user
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub fans order events out to the owner's connected sessions.
// A user may hold several sessions (multiple devices or tabs).
type Hub struct {
	clients    map[uint][]*Client
	register   chan *Client
	unregister chan *Client
	events     chan *userEvent

	mu sync.RWMutex
}

type userEvent struct {
	userID  uint
	payload []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		events:     make(chan *userEvent, 1024),
	}
}

// Run is the hub's event loop, started once at boot
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			sessions := len(h.clients[client.UserID])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": sessions,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}
				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"user_id": client.UserID,
			})

		case event := <-h.events:
			h.mu.RLock()
			clientList := h.clients[event.userID]
			for _, client := range clientList {
				select {
				case client.Send <- event.payload:
				default:
					// send buffer full, drop the session
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"user_id": event.userID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsUserOnline reports whether the user has at least one open session
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// NotifyOrderStatus pushes an order status event to the order's owner.
// Events for offline users are dropped, the REST API stays the source of
// truth.
func (h *Hub) NotifyOrderStatus(userID, orderID uint, status model.OrderStatus) {
	event := OrderEvent{
		Type:    "order_status",
		OrderID: orderID,
		Status:  status,
		At:      time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", err, map[string]interface{}{
			"order_id": orderID,
		})
		return
	}

	select {
	case h.events <- &userEvent{userID: userID, payload: data}:
	default:
		logger.Warn("Event channel full, order event dropped", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
	}
}
