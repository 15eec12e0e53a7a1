package arena

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/pongd/pongd/go/internal/events"
	"github.com/pongd/pongd/go/internal/game"
	"github.com/pongd/pongd/go/internal/protocol"
)

// Hub owns the simulation state and the connection registry. Every mutation
// runs on the single goroutine inside Run, fed by the inbox channel, so the
// tick loop and the command handlers never race and no locks are needed.
type Hub struct {
	inbox     chan command
	registry  *Registry
	state     *game.State
	clock     clockwork.Clock
	publisher events.Publisher
	adminCode string
	lastTick  time.Time
}

// Config holds the hub's collaborators. Zero-value fields get production
// defaults.
type Config struct {
	// AdminCode is the shared secret for admin_auth. It is a plain string
	// compare with no throttling: an accepted limitation, not a security
	// control.
	AdminCode string
	Clock     clockwork.Clock
	Publisher events.Publisher
}

func NewHub(cfg Config) *Hub {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.NopPublisher{}
	}
	return &Hub{
		inbox:     make(chan command, 256),
		registry:  NewRegistry(),
		state:     game.NewState(),
		clock:     cfg.Clock,
		publisher: cfg.Publisher,
		adminCode: cfg.AdminCode,
	}
}

type command interface {
	command()
}

type joinCmd struct{ conn Conn }
type leaveCmd struct{ conn Conn }
type frameCmd struct {
	conn Conn
	data []byte
}

func (joinCmd) command()  {}
func (leaveCmd) command() {}
func (frameCmd) command() {}

// Join hands a new connection to the hub. The hub assigns its seat and
// replies with a role frame.
func (h *Hub) Join(c Conn) {
	h.inbox <- joinCmd{conn: c}
}

// Leave reports that the transport saw the connection close.
func (h *Hub) Leave(c Conn) {
	h.inbox <- leaveCmd{conn: c}
}

// HandleFrame hands an inbound text frame to the hub.
func (h *Hub) HandleFrame(c Conn, data []byte) {
	h.inbox <- frameCmd{conn: c, data: data}
}

// Run drives the hub until ctx is cancelled: commands as they arrive,
// physics and broadcast on every tick.
func (h *Hub) Run(ctx context.Context) {
	ticker := h.clock.NewTicker(time.Second / game.TickHz)
	defer ticker.Stop()

	h.lastTick = h.clock.Now()
	log.Info().Msg("hub started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("hub shutting down")
			return
		case cmd := <-h.inbox:
			h.handleCommand(ctx, cmd)
		case <-ticker.Chan():
			h.tick(ctx)
		}
	}
}

func (h *Hub) handleCommand(ctx context.Context, cmd command) {
	switch c := cmd.(type) {
	case joinCmd:
		role := h.registry.Register(c.conn)
		h.sendTo(c.conn, protocol.NewRole(role))
		log.Info().
			Str("conn_id", c.conn.ID()).
			Str("role", string(role)).
			Int("connections", h.registry.Len()).
			Msg("connection registered")
	case leaveCmd:
		h.registry.Unregister(c.conn)
		log.Info().
			Str("conn_id", c.conn.ID()).
			Int("connections", h.registry.Len()).
			Msg("connection unregistered")
	case frameCmd:
		h.handleFrame(ctx, c.conn, c.data)
	}
}

// tick advances physics by the elapsed wall-clock time (unless paused) and
// fans the resulting snapshot out to every connection.
func (h *Hub) tick(ctx context.Context) {
	now := h.clock.Now()
	dt := now.Sub(h.lastTick).Seconds()
	h.lastTick = now

	if !h.state.Paused {
		out := game.Step(h.state, h.registry.Inputs(), dt)
		if out.ScoredBy != "" {
			log.Info().
				Str("side", string(out.ScoredBy)).
				Int("score_l", h.state.ScoreLeft).
				Int("score_r", h.state.ScoreRight).
				Msg("point scored")
			h.publish(ctx, events.TypePointScored, events.PointPayload{
				Side:   string(out.ScoredBy),
				ScoreL: h.state.ScoreLeft,
				ScoreR: h.state.ScoreRight,
			})
		}
	}
	h.broadcast(protocol.NewState(h.state))
}

// broadcast encodes once and sends to a snapshot of the connections. A
// failed send costs only that recipient its frame; the next tick supersedes
// it anyway.
func (h *Hub) broadcast(msg any) {
	data, err := protocol.Encode(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode broadcast frame")
		return
	}
	for _, c := range h.registry.Conns() {
		if err := c.Send(data); err != nil {
			log.Debug().Err(err).Str("conn_id", c.ID()).Msg("dropping frame for connection")
		}
	}
}

func (h *Hub) sendTo(c Conn, msg any) {
	data, err := protocol.Encode(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode frame")
		return
	}
	if err := c.Send(data); err != nil {
		log.Debug().Err(err).Str("conn_id", c.ID()).Msg("send failed")
	}
}

func (h *Hub) publish(ctx context.Context, eventType string, payload any) {
	ev, err := events.NewMatchEvent(eventType, payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to build match event")
		return
	}
	if err := h.publisher.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish match event")
	}
}
