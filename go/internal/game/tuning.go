package game

// Field and physics constants. The renderer draws against the same numbers,
// so changing them here changes them for every client.
const (
	FieldWidth  = 900.0
	FieldHeight = 600.0

	PaddleWidth  = 14.0
	PaddleHeight = 110.0
	BallSize     = 14.0
	EdgePad      = 30.0 // gap between field edge and paddle face

	PaddleSpeed    = 480.0 // px/s
	BallSpeedStart = 360.0 // px/s
	BallSpeedInc   = 28.0  // added to ball speed on every paddle hit
	MaxBallAngle   = 0.35

	ServeAngleFrac = 0.1 // initial vertical speed as a fraction of serve speed

	TickHz    = 60
	MaxStepDt = 1.0 / 30.0 // single-step ceiling after scheduling stalls

	// Rebound shaping.
	hitOffsetGain  = 1.1
	maxReboundFrac = 2.2    // post-hit |vy| cap: speed * MaxBallAngle * this
	minVXSquared   = 6400.0 // keeps the ball from bouncing near-vertically forever
	minReboundVY   = 1.0    // dead-center hits still leave the ball drifting
)
