// Package transport wraps a gorilla/websocket connection with the
// buffered-outbound-channel, readPump/writePump pattern the corpus's
// internal/server/connection.go uses, generalized to carry protocol.Message
// frames instead of the corpus's msgpack-encoded frames.
package transport

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ThomasDillard1/realtime-poker/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 16
	sendBufferSize = 32
)

// Connection is one duplex client link. ID is stable for the lifetime
// of the socket and is what the Room Controller binds a seat to.
type Connection struct {
	ID  string
	ws  *websocket.Conn
	log zerolog.Logger

	send    chan protocol.Message
	closeCh chan struct{}

	// OnMessage is invoked by readPump for every inbound frame. OnClose
	// is invoked once, when the connection terminates for any reason.
	OnMessage func(Connection *Connection, msg protocol.Message)
	OnClose   func(connID string)
}

// New wraps an already-upgraded websocket.Conn.
func New(id string, ws *websocket.Conn, log zerolog.Logger) *Connection {
	return &Connection{
		ID:      id,
		ws:      ws,
		log:     log.With().Str("conn", id).Logger(),
		send:    make(chan protocol.Message, sendBufferSize),
		closeCh: make(chan struct{}),
	}
}

// Send enqueues msg for delivery. It never blocks the caller beyond the
// buffer: a full buffer drops the oldest style of backpressure is not
// implemented here — instead a full channel means a transient delivery
// failure (spec §7c), so Send reports that to the caller rather than
// blocking the Room Controller's single-writer goroutine.
func (c *Connection) Send(msg protocol.Message) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.closeCh:
		return errClosed
	default:
		return errBackpressure
	}
}

// Run starts the read and write pumps and blocks until the connection
// closes. Call it in its own goroutine per accepted socket.
func (c *Connection) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Connection) readPump() {
	defer c.shutdown()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn().Err(err).Msg("unexpected close")
			}
			return
		}
		var msg protocol.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Debug().Err(err).Msg("malformed inbound frame")
			continue
		}
		if c.OnMessage != nil {
			c.OnMessage(c, msg)
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			raw, err := json.Marshal(msg)
			if err != nil {
				c.log.Error().Err(err).Msg("marshal outbound frame")
				continue
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closeCh:
			return
		}
	}
}

func (c *Connection) shutdown() {
	select {
	case <-c.closeCh:
		return
	default:
		close(c.closeCh)
	}
	if c.OnClose != nil {
		c.OnClose(c.ID)
	}
}

// Close terminates the connection's pumps.
func (c *Connection) Close() {
	c.shutdown()
	c.ws.Close()
}
