package arena

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/pongd/pongd/go/internal/events"
	"github.com/pongd/pongd/go/internal/game"
	"github.com/pongd/pongd/go/internal/protocol"
)

// maxBroadcastChars caps admin broadcast text.
const maxBroadcastChars = 200

// handleFrame interprets one inbound frame. Malformed payloads, unknown
// kinds, and unauthorized privileged actions are all dropped silently: the
// sender gets no error and the match is unaffected.
func (h *Hub) handleFrame(ctx context.Context, conn Conn, data []byte) {
	p, ok := h.registry.Player(conn)
	if !ok {
		return
	}

	msg, err := protocol.DecodeInbound(data)
	if err != nil {
		log.Debug().Err(err).Str("conn_id", conn.ID()).Msg("dropping inbound frame")
		return
	}

	switch m := msg.(type) {
	case protocol.Input:
		p.Up = m.Up
		p.Down = m.Down

	case protocol.Pause:
		if p.Role == game.SideLeft || p.Role == game.SideRight || p.IsAdmin {
			h.togglePause(ctx)
		}

	case protocol.AdminAuth:
		// An empty configured code disables admin entirely.
		granted := h.adminCode != "" && m.Code == h.adminCode
		if granted {
			// Idempotent: re-authenticating never revokes.
			p.IsAdmin = true
		}
		h.sendTo(conn, protocol.NewAdminResult(granted))
		log.Info().
			Str("conn_id", conn.ID()).
			Bool("granted", granted).
			Msg("admin authentication attempt")

	case protocol.Admin:
		if !p.IsAdmin {
			log.Debug().Str("conn_id", conn.ID()).Msg("ignoring admin command from non-admin")
			return
		}
		h.handleAdmin(ctx, m)
	}
}

func (h *Hub) handleAdmin(ctx context.Context, m protocol.Admin) {
	switch m.Action {
	case protocol.ActionBroadcast:
		text := truncate(m.Message, maxBroadcastChars)
		h.state.BroadcastMsg = text
		h.broadcast(protocol.NewBroadcast(text))
		h.publish(ctx, events.TypeBroadcast, events.BroadcastPayload{Message: text})

	case protocol.ActionEvent:
		label := m.Event
		if label == "clear" {
			label = ""
		}
		h.state.Event = label
		h.broadcast(protocol.NewEvent(label))
		h.publish(ctx, events.TypeEventChanged, events.EventChangedPayload{Event: label})

	case protocol.ActionResetScores:
		h.state.ScoreLeft = 0
		h.state.ScoreRight = 0
		h.publish(ctx, events.TypeScoresReset, nil)

	case protocol.ActionPauseToggle:
		h.togglePause(ctx)

	default:
		log.Debug().Str("action", m.Action).Msg("ignoring unknown admin action")
	}
}

func (h *Hub) togglePause(ctx context.Context) {
	h.state.Paused = !h.state.Paused
	log.Info().Bool("paused", h.state.Paused).Msg("pause toggled")
	h.publish(ctx, events.TypePauseToggled, events.PausePayload{Paused: h.state.Paused})
}

// truncate cuts text to at most n characters, not bytes, so a multi-byte
// rune is never split.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
