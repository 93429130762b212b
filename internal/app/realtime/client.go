package realtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame. The channel is
	// server-push only, so clients have no reason to send large frames.
	maxMessageSize = 512

	// capacity of the per-client outbound queue.
	sendQueueSize = 256
)

// Client represents one live WebSocket connection.
type Client struct {
	// owning gateway.
	gateway *Gateway

	// underlying WebSocket connection.
	conn *websocket.Conn

	// userID is the identity supplied in the handshake. Empty for an
	// anonymous connection, which receives roster broadcasts only.
	userID string

	// connID uniquely identifies this connection for logging.
	connID string

	// send queues frames waiting to be written to the connection.
	send chan []byte

	// done signals the pumps to terminate; closed exactly once.
	done      chan struct{}
	closeOnce sync.Once

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection.
func NewClient(gateway *Gateway, conn *websocket.Conn, userID string) *Client {
	connID := uuid.New().String()

	clientLogger := logx.Logger().With().
		Str("component", "realtime").
		Str("conn_id", connID).
		Str("user_id", userID).
		Logger()

	return &Client{
		gateway: gateway,
		conn:    conn,
		userID:  userID,
		connID:  connID,
		send:    make(chan []byte, sendQueueSize),
		done:    make(chan struct{}),
		logger:  clientLogger,
	}
}

// shutdown signals both pumps to stop. The send channel itself is never
// closed, so concurrent enqueues from handler goroutines cannot panic.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// UserID returns the identity bound to this connection, empty if anonymous.
func (c *Client) UserID() string {
	return c.userID
}

// ReadPump services the connection's read side. Clients send no
// application messages, so the loop exists to process control frames and
// to detect disconnects; any inbound data frame is discarded. The pump
// detaches the client from the gateway when the connection drops.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Connection closed unexpectedly")
			}
			break
		}
	}
}

// cleanupOnDisconnect detaches the client once its ReadPump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Connection cleanup starting.")

	c.gateway.Detach(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Connection close error")
	}
}

// WritePump drains the send queue onto the connection and keeps the
// heartbeat alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in WritePump")
		}
	}()

	for {
		select {
		case message := <-c.send:
			if !c.writeQueuedMessage(message) {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing close message")
			}
			return

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one queued frame. Returns false when the pump
// should terminate.
func (c *Client) writeQueuedMessage(message []byte) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a heartbeat ping. Returns false on write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// enqueue places a frame on the outbound queue without blocking. A closed
// or saturated connection drops the frame: delivery here is best-effort
// and a slow consumer must not stall the sender.
func (c *Client) enqueue(message []byte) error {
	select {
	case <-c.done:
		return fmt.Errorf("connection closed")
	default:
	}

	select {
	case c.send <- message:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Send queue full, dropping event")
		return fmt.Errorf("client send queue full")
	}
}
