package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Match event types mirrored to external observers.
const (
	TypePointScored  = "point_scored"
	TypeScoresReset  = "scores_reset"
	TypeBroadcast    = "broadcast"
	TypeEventChanged = "event_changed"
	TypePauseToggled = "pause_toggled"
)

// MatchEvent is the envelope handed to a Publisher.
type MatchEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewMatchEvent wraps a payload in a fresh envelope.
func NewMatchEvent(eventType string, payload any) (MatchEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return MatchEvent{}, fmt.Errorf("marshal event payload: %w", err)
	}
	return MatchEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   data,
	}, nil
}

// PointPayload reports a scored point and the resulting tallies.
type PointPayload struct {
	Side   string `json:"side"`
	ScoreL int    `json:"score_l"`
	ScoreR int    `json:"score_r"`
}

type BroadcastPayload struct {
	Message string `json:"message"`
}

type EventChangedPayload struct {
	Event string `json:"event"`
}

type PausePayload struct {
	Paused bool `json:"paused"`
}

// Publisher mirrors match events to an external sink. Publishing is
// fire-and-forget from the hub's point of view: a failure is logged by the
// caller and never reaches clients.
type Publisher interface {
	Publish(ctx context.Context, ev MatchEvent) error
}

// NopPublisher is used when no sink is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, ev MatchEvent) error {
	log.Debug().
		Str("event_id", ev.ID.String()).
		Str("event_type", ev.Type).
		Msg("dropping match event, no sink configured")
	return nil
}

// NATSPublisher publishes match events to a NATS subject per event type:
// <prefix>.<type>.
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

// NewNATSPublisher connects to NATS and reconnects indefinitely on failure.
func NewNATSPublisher(url, subjectPrefix string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, prefix: subjectPrefix}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, ev MatchEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal match event: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", p.prefix, ev.Type)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish match event: %w", err)
	}
	return nil
}

// Close drains the connection so buffered events flush before shutdown.
func (p *NATSPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		log.Error().Err(err).Msg("NATS drain failed")
	}
}
