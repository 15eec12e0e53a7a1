package protocol

import (
	"encoding/json"
	"errors"

	"github.com/pongd/pongd/go/internal/game"
)

// Inbound message kinds. The field names on the payload structs are the
// external contract shared with the client.
const (
	KindInput     = "input"
	KindPause     = "pause"
	KindAdminAuth = "admin_auth"
	KindAdmin     = "admin"
)

// Admin sub-actions.
const (
	ActionBroadcast   = "broadcast"
	ActionEvent       = "event"
	ActionResetScores = "reset_scores"
	ActionPauseToggle = "pause_toggle"
)

// ErrUnknownKind marks a frame whose kind tag is not recognized. Callers
// drop such frames without surfacing anything to the sender.
var ErrUnknownKind = errors.New("protocol: unknown message kind")

// Inbound is implemented by every decoded client message.
type Inbound interface {
	inbound()
}

// Input updates the sender's held movement keys.
type Input struct {
	Up   bool `json:"up"`
	Down bool `json:"down"`
}

// Pause asks to toggle the match pause flag.
type Pause struct{}

// AdminAuth presents a code for admin authentication.
type AdminAuth struct {
	Code string `json:"code"`
}

// Admin carries a privileged sub-action. Message and Event are only
// meaningful for the broadcast and event actions respectively.
type Admin struct {
	Action  string `json:"action"`
	Message string `json:"message"`
	Event   string `json:"event"`
}

func (Input) inbound()     {}
func (Pause) inbound()     {}
func (AdminAuth) inbound() {}
func (Admin) inbound()     {}

// DecodeInbound parses a client frame into its typed message. Unparseable
// JSON and unknown kinds are errors; a field of the wrong type merely keeps
// its zero value, so a mistyped flag reads as false rather than killing the
// frame.
func DecodeInbound(data []byte) (Inbound, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	switch env.Type {
	case KindInput:
		var m Input
		lenientUnmarshal(data, &m)
		return m, nil
	case KindPause:
		return Pause{}, nil
	case KindAdminAuth:
		var m AdminAuth
		lenientUnmarshal(data, &m)
		return m, nil
	case KindAdmin:
		var m Admin
		lenientUnmarshal(data, &m)
		return m, nil
	}
	return nil, ErrUnknownKind
}

// lenientUnmarshal fills what it can. The envelope already parsed, so the
// only possible failure here is a type mismatch on some field, which
// encoding/json reports while still decoding the rest.
func lenientUnmarshal(data []byte, v any) {
	_ = json.Unmarshal(data, v)
}

// Outbound frames. Constructors fix the type tag so callers cannot get it
// wrong.

type Role struct {
	Type string    `json:"type"`
	Side game.Side `json:"side"`
}

func NewRole(side game.Side) Role {
	return Role{Type: "role", Side: side}
}

type AdminResult struct {
	Type string `json:"type"`
	OK   bool   `json:"ok"`
}

func NewAdminResult(ok bool) AdminResult {
	return AdminResult{Type: "admin_result", OK: ok}
}

type Broadcast struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewBroadcast(message string) Broadcast {
	return Broadcast{Type: "broadcast", Message: message}
}

// Event announces the active visual event; a nil Event means cleared.
type Event struct {
	Type  string  `json:"type"`
	Event *string `json:"event"`
}

func NewEvent(label string) Event {
	return Event{Type: "event", Event: optional(label)}
}

// State is the full observable simulation snapshot sent every tick.
type State struct {
	Type   string  `json:"type"`
	LeftY  float64 `json:"left_y"`
	RightY float64 `json:"right_y"`
	BallX  float64 `json:"ball_x"`
	BallY  float64 `json:"ball_y"`
	ScoreL int     `json:"score_l"`
	ScoreR int     `json:"score_r"`
	Paused bool    `json:"paused"`
	Event  *string `json:"event"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
}

func NewState(s *game.State) State {
	return State{
		Type:   "state",
		LeftY:  s.LeftY,
		RightY: s.RightY,
		BallX:  s.BallX,
		BallY:  s.BallY,
		ScoreL: s.ScoreLeft,
		ScoreR: s.ScoreRight,
		Paused: s.Paused,
		Event:  optional(s.Event),
		W:      game.FieldWidth,
		H:      game.FieldHeight,
	}
}

// Encode marshals an outbound frame.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
