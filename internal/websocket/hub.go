package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ai-mathteach-be/internal/entity"
	"ai-mathteach-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fanOutChannel is the redis channel used to reach clients connected to
// other instances.
const fanOutChannel = "notification_events"

type notificationPayload struct {
	Id         uuid.UUID              `json:"id"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	EntityType string                 `json:"entityType,omitempty"`
	EntityId   *uuid.UUID             `json:"entityId,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}

type Hub struct {
	// UserID -> connected clients (a user may have several devices)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional redis connection for cross-instance fan-out
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeFanOut()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a notification to every connection the user has, locally
// and via redis for connections held by other instances. Implements
// service.NotificationDelivery.
func (h *Hub) Send(userId uuid.UUID, notification *entity.Notification) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notificationPayload{
			Id:         notification.Id,
			Title:      notification.Title,
			Message:    notification.Message,
			EntityType: notification.EntityType,
			EntityId:   notification.EntityId,
			Metadata:   notification.Metadata,
			CreatedAt:  notification.CreatedAt,
		},
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal notification", map[string]interface{}{"error": err.Error()})
		return
	}

	h.sendLocal(userId, data)

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"target_user_id": userId.String(),
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), fanOutChannel, envelope)
	}
}

func (h *Hub) sendLocal(userId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[userId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Unregister closes the channel; doing it here would close twice.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userId})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeFanOut() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, fanOutChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Bad fan-out payload", map[string]interface{}{"error": err.Error()})
			continue
		}

		userId, err := uuid.Parse(envelope.TargetUserID)
		if err != nil {
			continue
		}
		h.sendLocal(userId, envelope.Message)
	}
}
