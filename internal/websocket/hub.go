package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"checkinly-be/internal/entity"
	"checkinly-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel carries notifications between instances through Redis
// pub/sub, so a host connected to another replica still gets theirs.
const clusterChannel = "checkinly_cluster_events"

type Hub struct {
	// Registered clients map: UserID -> list of clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

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
		go h.subscribeToRedis()
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

// Send delivers a notification to every connection the user has, locally
// and through Redis for other instances.
func (h *Hub) Send(userID uuid.UUID, notification entity.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	// With Redis every instance (this one included) delivers through the
	// cluster channel, so local clients are not notified twice.
	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_user_id": userID.String(),
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
		return
	}

	h.deliverLocal(userID, data)
}

func (h *Hub) deliverLocal(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	clients, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	for _, client := range clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.deliverLocal(uid, payload.Message)
	}
}
