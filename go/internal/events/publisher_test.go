package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatchEventEnvelope(t *testing.T) {
	ev, err := NewMatchEvent(TypePointScored, PointPayload{Side: "left", ScoreL: 3, ScoreR: 1})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, TypePointScored, ev.Type)
	assert.False(t, ev.Timestamp.IsZero())

	var payload PointPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, PointPayload{Side: "left", ScoreL: 3, ScoreR: 1}, payload)
}

func TestNewMatchEventNilPayload(t *testing.T) {
	ev, err := NewMatchEvent(TypeScoresReset, nil)
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("null"), ev.Payload)
}

func TestNopPublisher(t *testing.T) {
	ev, err := NewMatchEvent(TypePauseToggled, PausePayload{Paused: true})
	require.NoError(t, err)
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), ev))
}
