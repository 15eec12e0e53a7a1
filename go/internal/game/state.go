package game

import "math/rand/v2"

// Side identifies a connection's seat in the match.
type Side string

const (
	SideLeft      Side = "left"
	SideRight     Side = "right"
	SideSpectator Side = "spectator"
)

// State is the authoritative simulation record: paddle positions, ball
// position and velocity, scores, the pause flag, and the active visual
// event. It is owned by the hub and mutated only by Step and the command
// handlers.
type State struct {
	LeftY  float64
	RightY float64

	BallX float64
	BallY float64
	VX    float64
	VY    float64

	ScoreLeft  int
	ScoreRight int

	Paused bool

	// Event is the active visual event tag, empty when none.
	Event string
	// BroadcastMsg is the last admin broadcast text.
	BroadcastMsg string
}

// NewState returns a fresh match: paddles centered, scores zeroed, ball
// served from center in a random direction.
func NewState() *State {
	s := &State{
		LeftY:  FieldHeight/2 - PaddleHeight/2,
		RightY: FieldHeight/2 - PaddleHeight/2,
	}
	s.ResetBall("")
	return s
}

// ResetBall recenters the ball and serves it toward the given side at the
// starting speed, with a slight vertical bias so rounds do not repeat the
// same trajectory. An empty side picks a direction at random.
func (s *State) ResetBall(toward Side) {
	s.BallX = FieldWidth/2 - BallSize/2
	s.BallY = FieldHeight/2 - BallSize/2

	dir := 1.0
	switch toward {
	case SideLeft:
		dir = -1.0
	case SideRight:
		dir = 1.0
	default:
		if rand.IntN(2) == 0 {
			dir = -1.0
		}
	}
	s.VX = BallSpeedStart * dir
	s.VY = BallSpeedStart * ServeAngleFrac
}
