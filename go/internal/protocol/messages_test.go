package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pongd/pongd/go/internal/game"
)

func TestDecodeInboundInput(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"input","up":true,"down":false}`))
	require.NoError(t, err)
	assert.Equal(t, Input{Up: true}, msg)
}

func TestDecodeInboundPause(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"pause"}`))
	require.NoError(t, err)
	assert.Equal(t, Pause{}, msg)
}

func TestDecodeInboundAdminAuth(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"admin_auth","code":"100"}`))
	require.NoError(t, err)
	assert.Equal(t, AdminAuth{Code: "100"}, msg)
}

func TestDecodeInboundAdmin(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"admin","action":"broadcast","message":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, Admin{Action: "broadcast", Message: "hi"}, msg)

	msg, err = DecodeInbound([]byte(`{"type":"admin","action":"event","event":"disco"}`))
	require.NoError(t, err)
	assert.Equal(t, Admin{Action: "event", Event: "disco"}, msg)
}

func TestDecodeInboundMalformedJSON(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestDecodeInboundUnknownKind(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":"teleport"}`))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDecodeInboundMistypedFieldsReadAsZero(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"input","up":"yes","down":true}`))
	require.NoError(t, err)
	assert.Equal(t, Input{Down: true}, msg, "mistyped up flag treated as false")

	msg, err = DecodeInbound([]byte(`{"type":"admin_auth","code":100}`))
	require.NoError(t, err)
	assert.Equal(t, AdminAuth{}, msg, "numeric code reads as empty string")
}

func TestStateFrameFieldNames(t *testing.T) {
	data, err := Encode(NewState(game.NewState()))
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))

	for _, key := range []string{
		"type", "left_y", "right_y", "ball_x", "ball_y",
		"score_l", "score_r", "paused", "event", "w", "h",
	} {
		assert.Contains(t, payload, key)
	}
	assert.Equal(t, "state", payload["type"])
	assert.Equal(t, float64(game.FieldWidth), payload["w"])
	assert.Equal(t, float64(game.FieldHeight), payload["h"])
	assert.Nil(t, payload["event"], "no active event serializes as null")
}

func TestEventFrameClearedIsNull(t *testing.T) {
	data, err := Encode(NewEvent(""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"event","event":null}`, string(data))

	data, err = Encode(NewEvent("disco"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"event","event":"disco"}`, string(data))
}

func TestRoleAndAdminResultFrames(t *testing.T) {
	data, err := Encode(NewRole(game.SideLeft))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"role","side":"left"}`, string(data))

	data, err = Encode(NewAdminResult(false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"admin_result","ok":false}`, string(data))
}
