package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pongd/pongd/go/internal/arena"
)

// startServer brings up a hub on a real clock behind an httptest server and
// returns a dialer helper.
func startServer(t *testing.T) func() *websocket.Conn {
	t.Helper()

	hub := arena.NewHub(arena.Config{AdminCode: "100"})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	gw := New(hub, DefaultConfig())
	srv := httptest.NewServer(http.HandlerFunc(gw.ServeWS))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	return func() *websocket.Conn {
		ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		t.Cleanup(func() { ws.Close() })
		return ws
	}
}

func readFrame(t *testing.T, ws *websocket.Conn, frameType string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := ws.ReadMessage()
		require.NoError(t, err)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(data, &payload))
		if payload["type"] == frameType {
			return payload
		}
	}
	t.Fatalf("timed out waiting for %q frame", frameType)
	return nil
}

func send(t *testing.T, ws *websocket.Conn, frame string) {
	t.Helper()
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(frame)))
}

func TestGatewayRolesAndMovement(t *testing.T) {
	dial := startServer(t)

	// Wait for each seat before dialing the next connection, so join order
	// is deterministic.
	left := dial()
	assert.Equal(t, "left", readFrame(t, left, "role")["side"])
	right := dial()
	assert.Equal(t, "right", readFrame(t, right, "role")["side"])

	send(t, left, `{"type":"input","up":true,"down":false}`)

	first := readFrame(t, left, "state")["left_y"].(float64)
	var last float64 = first
	for i := 0; i < 5; i++ {
		y := readFrame(t, left, "state")["left_y"].(float64)
		assert.LessOrEqual(t, y, last, "paddle must not move back down")
		last = y
	}
	assert.Less(t, last, first, "held up key moves the left paddle up across ticks")
}

func TestGatewayAdminAuthFlow(t *testing.T) {
	dial := startServer(t)

	first := dial()
	readFrame(t, first, "role")
	second := dial()
	readFrame(t, second, "role")

	admin := dial()
	assert.Equal(t, "spectator", readFrame(t, admin, "role")["side"])

	send(t, admin, `{"type":"admin_auth","code":"100"}`)
	assert.Equal(t, true, readFrame(t, admin, "admin_result")["ok"])

	imposter := dial()
	send(t, imposter, `{"type":"admin_auth","code":"x"}`)
	assert.Equal(t, false, readFrame(t, imposter, "admin_result")["ok"])

	// The imposter's admin commands are ignored; the real admin's apply.
	send(t, imposter, `{"type":"admin","action":"event","event":"disco"}`)
	send(t, admin, `{"type":"admin","action":"event","event":"stars"}`)
	assert.Equal(t, "stars", readFrame(t, admin, "event")["event"])
}

func TestGatewayMalformedFrameKeepsConnectionOpen(t *testing.T) {
	dial := startServer(t)

	ws := dial()
	readFrame(t, ws, "role")

	send(t, ws, `this is not json`)
	send(t, ws, `{"type":"nope"}`)

	// Still receiving ticks afterwards.
	state := readFrame(t, ws, "state")
	assert.Equal(t, false, state["paused"])
}
