package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI is served from another origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans real-time events out to websocket clients, one registry per
// channel key. Clients send typing signals up the same socket; those are
// republished through the dispatcher so the presence tracker and other
// subscribers see them too.
type Hub struct {
	dispatcher *Dispatcher
	logger     *zap.Logger

	mu       sync.RWMutex
	channels map[string]map[*client]struct{}
}

type client struct {
	hub        *Hub
	conn       *websocket.Conn
	channelKey string
	name       string
	send       chan []byte
}

// NewHub creates a hub and subscribes it to all channel event types.
func NewHub(dispatcher *Dispatcher, logger *zap.Logger) *Hub {
	h := &Hub{
		dispatcher: dispatcher,
		logger:     logger,
		channels:   make(map[string]map[*client]struct{}),
	}

	for _, t := range []Type{TypeTyping, TypeMemberJoined, TypeMemberLeft, TypeMessagePosted} {
		dispatcher.Subscribe(t, "websocket-hub", h.broadcast)
	}
	return h
}

// ServeWS upgrades the request and attaches the connection to a channel.
// The participant name comes from the "name" query parameter.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, channelKey, name string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		hub:        h,
		conn:       conn,
		channelKey: channelKey,
		name:       name,
		send:       make(chan []byte, sendBuffer),
	}
	h.register(c)

	h.dispatcher.PublishAsync(r.Context(), NewEvent(TypeMemberJoined, channelKey, name))

	go c.writePump()
	go c.readPump()
	return nil
}

// broadcast is the dispatcher handler delivering events to connected clients
func (h *Hub) broadcast(_ context.Context, evt *Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.channels[evt.ChannelKey] {
		select {
		case c.send <- data:
		default:
			// Slow consumer: drop the event rather than block fan-out.
			h.logger.Debug("Dropping event for slow websocket client",
				zap.String("channel_key", evt.ChannelKey),
				zap.String("client", c.name))
		}
	}
	return nil
}

// ClientCount returns the number of clients attached to a channel
func (h *Hub) ClientCount(channelKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channelKey])
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.channels[c.channelKey] == nil {
		h.channels[c.channelKey] = make(map[*client]struct{})
	}
	h.channels[c.channelKey][c] = struct{}{}

	h.logger.Info("Websocket client connected",
		zap.String("channel_key", c.channelKey),
		zap.String("client", c.name))
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if clients, ok := h.channels[c.channelKey]; ok {
		if _, present := clients[c]; present {
			delete(clients, c)
			close(c.send)
			if len(clients) == 0 {
				delete(h.channels, c.channelKey)
			}
		}
	}
	h.mu.Unlock()

	h.dispatcher.PublishAsync(context.Background(), NewEvent(TypeMemberLeft, c.channelKey, c.name))

	h.logger.Info("Websocket client disconnected",
		zap.String("channel_key", c.channelKey),
		zap.String("client", c.name))
}

// inboundFrame is what clients send up the socket (typing signals only)
type inboundFrame struct {
	Type string `json:"type"`
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("Websocket read error", zap.Error(err))
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if Type(frame.Type) == TypeTyping {
			c.hub.dispatcher.PublishAsync(context.Background(),
				NewEvent(TypeTyping, c.channelKey, c.name))
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
