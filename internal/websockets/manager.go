package websockets

import (
	"encoding/json"
	"sync"
	"time"

	"rcsc-server/config"
	"rcsc-server/internal/database"
	"rcsc-server/internal/events"
	"rcsc-server/internal/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

// ClientMessage is what a dashboard session sends: channel subscription
// management only; all writes go through the REST surface.
type ClientMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
}

type client struct {
	id       string
	conn     *websocket.Conn
	send     chan []byte
	channels map[string]bool
	mu       sync.Mutex
}

// Manager fans change events out to every connected admin session,
// including the session whose action caused the write.
type Manager struct {
	db       database.DB
	eventBus *events.EventBus
	config   config.Config
	log      logger.Logger

	mu          sync.RWMutex
	clients     map[string]*client
	unsubscribe func()
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	manager := &Manager{
		db:       db,
		eventBus: eventBus,
		config:   config,
		log:      logger.New("websockets"),
		clients:  map[string]*client{},
	}

	manager.unsubscribe = eventBus.Subscribe(events.ChannelRegistrations, manager.broadcast)

	return manager, nil
}

// HandleWebSocket owns the connection for its lifetime; it returns when
// the session ends and the connection is released.
func (m *Manager) HandleWebSocket(conn *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	c := &client{
		id:       uuid.New().String(),
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		channels: map[string]bool{},
	}

	m.mu.Lock()
	m.clients[c.id] = c
	m.mu.Unlock()

	log.Info("Client connected", "clientID", c.id)

	go m.writeLoop(c)
	m.readLoop(c)

	m.mu.Lock()
	delete(m.clients, c.id)
	m.mu.Unlock()

	close(c.send)
	log.Info("Client disconnected", "clientID", c.id)
}

func (m *Manager) readLoop(c *client) {
	log := m.log.Function("readLoop")

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Er("unexpected close", err, "clientID", c.id)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Er("failed to parse client message", err, "clientID", c.id)
			continue
		}

		switch msg.Type {
		case "subscribe":
			c.mu.Lock()
			c.channels[msg.Channel] = true
			c.mu.Unlock()
			log.Info("Client subscribed", "clientID", c.id, "channel", msg.Channel)
		case "unsubscribe":
			c.mu.Lock()
			delete(c.channels, msg.Channel)
			c.mu.Unlock()
		}
	}
}

func (m *Manager) writeLoop(c *client) {
	log := m.log.Function("writeLoop")

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait),
				)
				return
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Er("failed to write to client", err, "clientID", c.id)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(
				websocket.PingMessage, nil, time.Now().Add(writeWait),
			); err != nil {
				return
			}
		}
	}
}

// broadcast delivers one change event to every session subscribed to its
// channel. Slow consumers are skipped rather than blocking the bus.
func (m *Manager) broadcast(event events.Event) {
	log := m.log.Function("broadcast")

	payload, err := json.Marshal(event)
	if err != nil {
		log.Er("failed to marshal event", err, "eventID", event.ID)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.clients {
		c.mu.Lock()
		subscribed := c.channels[event.Channel]
		c.mu.Unlock()
		if !subscribed {
			continue
		}

		select {
		case c.send <- payload:
		default:
			log.Warn("dropping event for slow client", "clientID", c.id, "eventID", event.ID)
		}
	}
}

// ClientCount is used by health reporting.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) Close() error {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return nil
}
