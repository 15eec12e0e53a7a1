package gateway

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/pongd/pongd/go/internal/arena"
)

var errSendBufferFull = errors.New("gateway: send buffer full")
var errConnClosed = errors.New("gateway: connection closed")

// conn implements arena.Conn over a gorilla websocket. Frames queued with
// Send are written by writePump; readPump feeds inbound frames to the hub
// and reports closure.
type conn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
	cfg  Config

	closeOnce sync.Once
	done      chan struct{}
}

func newConn(ws *websocket.Conn, cfg Config) *conn {
	return &conn{
		id:   uuid.New().String(),
		ws:   ws,
		send: make(chan []byte, cfg.SendBuffer),
		cfg:  cfg,
		done: make(chan struct{}),
	}
}

func (c *conn) ID() string { return c.id }

// Send queues a frame without ever blocking the hub. A full buffer drops
// the frame; the next tick's snapshot supersedes it.
func (c *conn) Send(data []byte) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

func (c *conn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return c.ws.Close()
}

// readPump decodes nothing itself: every text frame goes to the hub as-is,
// so a malformed payload never terminates the connection. When the read
// side fails the hub is told to unregister.
func (c *conn) readPump(hub *arena.Hub) {
	defer func() {
		hub.Leave(c)
		c.Close()
	}()

	c.ws.SetReadLimit(c.cfg.MaxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongTimeout))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("conn_id", c.id).Msg("unexpected websocket close")
			}
			return
		}
		hub.HandleFrame(c, data)
	}
}

// writePump owns all writes to the socket: queued frames plus keepalive
// pings.
func (c *conn) writePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("conn_id", c.id).Msg("websocket write failed")
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("conn_id", c.id).Msg("ping failed")
				return
			}
		}
	}
}
