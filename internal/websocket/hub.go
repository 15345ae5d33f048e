package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/pkg/docgen/progress"

	"github.com/redis/go-redis/v9"
)

const redisProgressChannel = "docgen_progress"

// Hub fans generation progress out to connected websocket clients. Each
// client subscribes to one session id; "*" subscribes to everything.
type Hub struct {
	// SessionID -> connected clients (a session can have several watchers)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
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
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishProgress implements progress.Publisher: one pipeline event is
// pushed to every watcher of the session, locally and via Redis to other
// instances. Delivery is fire-and-forget.
func (h *Hub) PublishProgress(sessionID string, entry progress.Entry) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":       "progress",
		"session_id": sessionID,
		"data":       entry,
	})

	h.deliverLocal(sessionID, data)

	if h.rdb != nil {
		payload := map[string]interface{}{
			"session_id": sessionID,
			"message":    data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), redisProgressChannel, jsonPayload)
	}
}

// deliverLocal writes to watchers of the session plus wildcard watchers.
// A client whose buffer is full is dropped rather than blocking the run.
func (h *Hub) deliverLocal(sessionID string, data []byte) {
	h.mu.RLock()
	targets := append([]*Client{}, h.clients[sessionID]...)
	targets = append(targets, h.clients["*"]...)
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"session_id": sessionID})
			close(client.Send)
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared progress channel and
	// delivers only to sessions it has local watchers for.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisProgressChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			SessionID string          `json:"session_id"`
			Message   json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.deliverLocal(payload.SessionID, payload.Message)
	}
}
