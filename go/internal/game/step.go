package game

import "math"

// PaddleInput is one player's held movement keys.
type PaddleInput struct {
	Up   bool
	Down bool
}

// Inputs carries the control flags for both seats, read once at the start
// of a step. Spectator flags never reach here.
type Inputs struct {
	Left  PaddleInput
	Right PaddleInput
}

// Outcome reports what a step did beyond moving things.
type Outcome struct {
	// ScoredBy is the side that won a point this step, empty otherwise.
	ScoredBy Side
}

// Step advances the simulation by dt seconds. It is deterministic given its
// inputs except for serve direction immediately after a point, which always
// heads toward the side that conceded. dt is clamped to MaxStepDt so a
// scheduling stall cannot teleport the ball through a paddle.
func Step(s *State, in Inputs, dt float64) Outcome {
	if dt < 0 {
		dt = 0
	}
	if dt > MaxStepDt {
		dt = MaxStepDt
	}

	s.LeftY = clamp(s.LeftY+paddleVelocity(in.Left)*dt, 0, FieldHeight-PaddleHeight)
	s.RightY = clamp(s.RightY+paddleVelocity(in.Right)*dt, 0, FieldHeight-PaddleHeight)

	s.BallX += s.VX * dt
	s.BallY += s.VY * dt

	// Top/bottom walls: clamp to the surface and reflect.
	if s.BallY <= 0 {
		s.BallY = 0
		s.VY = -s.VY
	} else if s.BallY+BallSize >= FieldHeight {
		s.BallY = FieldHeight - BallSize
		s.VY = -s.VY
	}

	// Paddle contact, only when the ball is moving toward that paddle.
	if s.VX < 0 && ballOverlapsPaddle(s, EdgePad, s.LeftY) {
		s.BallX = EdgePad + PaddleWidth
		reboundOffPaddle(s, s.LeftY, 1)
	}
	if s.VX > 0 && ballOverlapsPaddle(s, FieldWidth-EdgePad-PaddleWidth, s.RightY) {
		s.BallX = FieldWidth - EdgePad - PaddleWidth - BallSize
		reboundOffPaddle(s, s.RightY, -1)
	}

	var out Outcome
	if s.BallX <= 0 {
		s.ScoreRight++
		out.ScoredBy = SideRight
		s.ResetBall(SideLeft)
	} else if s.BallX+BallSize >= FieldWidth {
		s.ScoreLeft++
		out.ScoredBy = SideLeft
		s.ResetBall(SideRight)
	}
	return out
}

// reboundOffPaddle applies the collision response. dir is the outgoing
// horizontal direction: +1 off the left paddle, -1 off the right. The hit
// offset steers the rebound, the speed grows by a fixed increment, and the
// horizontal component is rebuilt from the new speed with a floor so the
// ball never ends up oscillating vertically.
func reboundOffPaddle(s *State, paddleY, dir float64) {
	center := paddleY + PaddleHeight/2
	offset := ((s.BallY + BallSize/2) - center) / (PaddleHeight / 2)

	s.VY = dir * math.Abs(s.VX) * MaxBallAngle * offset * hitOffsetGain
	s.VX = -s.VX

	speed := math.Hypot(s.VX, s.VY) + BallSpeedInc
	maxVY := speed * MaxBallAngle * maxReboundFrac
	s.VY = clamp(s.VY, -maxVY, maxVY)

	vxSq := speed*speed - s.VY*s.VY
	if vxSq < minVXSquared {
		vxSq = minVXSquared
	}
	s.VX = dir * math.Sqrt(vxSq)

	if s.VY == 0 {
		s.VY = dir * minReboundVY
	}
}

func ballOverlapsPaddle(s *State, paddleX, paddleY float64) bool {
	return s.BallX < paddleX+PaddleWidth && s.BallX+BallSize > paddleX &&
		s.BallY < paddleY+PaddleHeight && s.BallY+BallSize > paddleY
}

// paddleVelocity resolves held keys to a velocity: both or neither cancels.
func paddleVelocity(in PaddleInput) float64 {
	switch {
	case in.Up && !in.Down:
		return -PaddleSpeed
	case in.Down && !in.Up:
		return PaddleSpeed
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
