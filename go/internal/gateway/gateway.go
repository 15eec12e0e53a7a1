package gateway

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/pongd/pongd/go/internal/arena"
)

// Config holds tunables for client websockets.
type Config struct {
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConfig returns default websocket configuration.
func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		PongTimeout:     60 * time.Second,
		PingInterval:    20 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBuffer:      256,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins in development - restrict in production
			return true
		},
	}
}

// Gateway upgrades HTTP requests to websockets and bridges frames between
// clients and the hub.
type Gateway struct {
	hub      *arena.Hub
	upgrader websocket.Upgrader
	config   Config
}

func New(hub *arena.Hub, config Config) *Gateway {
	return &Gateway{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config: config,
	}
}

// ServeWS upgrades the request, registers the connection with the hub, and
// starts its pumps.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := newConn(ws, g.config)
	g.hub.Join(c)

	go c.writePump()
	go c.readPump(g.hub)

	log.Info().
		Str("conn_id", c.id).
		Str("remote", r.RemoteAddr).
		Msg("websocket connection established")
}
