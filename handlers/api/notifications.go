package api

import (
	"bufio"
	"encoding/json"
	"sync"
	"time"

	"pagecraft/site"
	"pagecraft/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const keepAliveInterval = 30 * time.Second

// Notification is one live update pushed to open pages
type Notification struct {
	ID      string                 `json:"id"`
	Type    string                 `json:"type"` // "site_saved"
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	Time    time.Time              `json:"time"`
}

// NotificationHandler fans site events out to SSE and WebSocket subscribers.
// It implements site.Publisher.
type NotificationHandler struct {
	subscribers map[string]chan Notification
	mu          sync.RWMutex
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{
		subscribers: make(map[string]chan Notification),
	}
}

func (h *NotificationHandler) subscribe() (string, chan Notification) {
	id := uuid.New().String()
	ch := make(chan Notification, 10)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *NotificationHandler) unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Subscribers returns the number of connected listeners
func (h *NotificationHandler) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// HandleSSE handles GET /api/site/events
func (h *NotificationHandler) HandleSSE(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	subscriberID, messageChan := h.subscribe()
	utils.Log.Info("SSE subscriber connected: %s", subscriberID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			h.unsubscribe(subscriberID)
			utils.Log.Info("SSE subscriber disconnected: %s", subscriberID)
		}()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		// an initial comment tells the browser the stream is open
		w.WriteString(": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case notification, ok := <-messageChan:
				if !ok {
					return
				}
				data, _ := json.Marshal(notification)
				w.WriteString("event: " + notification.Type + "\ndata: " + string(data) + "\n\n")
				if err := w.Flush(); err != nil {
					return
				}

			case <-ticker.C:
				w.WriteString(": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

// UpgradeWebSocket only lets websocket handshakes through to HandleWebSocket
func UpgradeWebSocket(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWebSocket handles GET /ws/site
func (h *NotificationHandler) HandleWebSocket(c *websocket.Conn) {
	subscriberID, messageChan := h.subscribe()

	defer func() {
		h.unsubscribe(subscriberID)
		c.Close()
		utils.Log.Info("WebSocket subscriber disconnected: %s", subscriberID)
	}()

	utils.Log.Info("WebSocket subscriber connected: %s", subscriberID)

	// reader goroutine notices the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case notification, ok := <-messageChan:
			if !ok {
				return
			}
			if err := c.WriteJSON(notification); err != nil {
				utils.Log.Error("Failed to send WebSocket notification: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}

// BroadcastNotification sends a notification to all subscribers
func (h *NotificationHandler) BroadcastNotification(notification Notification) {
	notification.ID = uuid.New().String()
	if notification.Time.IsZero() {
		notification.Time = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	utils.Log.Debug("Broadcasting notification: type=%s to %d subscribers", notification.Type, len(h.subscribers))

	for subscriberID, ch := range h.subscribers {
		select {
		case ch <- notification:
		default:
			// Channel full, skip this subscriber
			utils.Log.Warn("Notification channel full for subscriber %s", subscriberID)
		}
	}
}

// Publish implements site.Publisher
func (h *NotificationHandler) Publish(event site.Event) {
	h.BroadcastNotification(Notification{
		Type:    event.Type,
		Message: "Site saved",
		Data: map[string]interface{}{
			"elements": event.Elements,
		},
		Time: event.Time,
	})
}
