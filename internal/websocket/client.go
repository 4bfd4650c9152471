package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrClientSlow is returned when a listener has not drained its queue
var ErrClientSlow = errors.New("client send queue is full")

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Listeners only send control frames and the occasional stray message
	maxInboundSize = 512

	// Events queued per listener before it is treated as slow
	eventQueueSize = 256
)

// Client is one listener on the event stream. The stream is server-to-client:
// events are queued by the hub and written by WritePump, while ReadPump only
// services pings, pongs and the close handshake.
type Client struct {
	id     string
	userID string
	conn   *websocket.Conn
	hub    *Hub
	logger zerolog.Logger

	mu        sync.RWMutex
	events    chan []byte
	closed    bool
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn, userID string, hub *Hub) *Client {
	id := uuid.New().String()
	return &Client{
		id:     id,
		userID: userID,
		conn:   conn,
		hub:    hub,
		logger: log.With().Str("client_id", id).Str("user_id", userID).Logger(),
		events: make(chan []byte, eventQueueSize),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) UserID() string {
	return c.userID
}

// Send queues an encoded event. It never blocks; a full queue yields ErrClientSlow.
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.events <- data:
		return nil
	default:
		return ErrClientSlow
	}
}

// Close stops the event queue and the connection. Repeated calls return nil.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.events)
		c.mu.Unlock()

		err = c.conn.Close()
	})
	return err
}

func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// ReadPump keeps the read side alive until the listener goes away, then
// removes the client from the hub. Data frames from the listener are dropped.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxInboundSize)
	c.extendReadDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	ignored := 0
	for {
		kind, payload, err := c.conn.ReadMessage()
		if err != nil {
			c.logReadEnd(err, ignored)
			return
		}
		ignored++
		c.logger.Debug().
			Int("message_type", kind).
			Int("bytes", len(payload)).
			Msg("Ignoring inbound WebSocket message")
	}
}

func (c *Client) extendReadDeadline() {
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

func (c *Client) logReadEnd(err error, ignored int) {
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		c.logger.Warn().Err(err).Int("ignored_messages", ignored).Msg("WebSocket listener closed unexpectedly")
		return
	}
	c.logger.Debug().Int("ignored_messages", ignored).Msg("WebSocket listener disconnected")
}

// WritePump writes queued events one per text frame and pings on a timer.
// On shutdown it attempts a close frame before the connection is dropped.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case event, ok := <-c.events:
			if !ok {
				c.writeFrame(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing stream"))
				return
			}
			if err := c.writeFrame(websocket.TextMessage, event); err != nil {
				c.logger.Warn().Err(err).Msg("WebSocket event write failed")
				return
			}

		case <-ticker.C:
			if err := c.writeFrame(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("WebSocket ping failed")
				return
			}
		}
	}
}

func (c *Client) writeFrame(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}
