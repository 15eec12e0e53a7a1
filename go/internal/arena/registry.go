package arena

import "github.com/pongd/pongd/go/internal/game"

// Conn is the transport-side handle for one client: an opaque identity plus
// a best-effort send. The gateway provides the real implementation.
type Conn interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Player is the per-connection record: the assigned seat, the held movement
// keys, and whether the connection has authenticated as admin. Spectator
// flags are stored like everyone else's but physics never reads them.
type Player struct {
	Conn    Conn
	Role    game.Side
	Up      bool
	Down    bool
	IsAdmin bool
}

// Registry tracks the live connections and their player records. It is
// owned by the hub goroutine and is not safe for concurrent use.
type Registry struct {
	players map[string]*Player

	// Seats are first-come and never recycled: once taken, a seat stays
	// taken for the rest of the match even if its holder disconnects.
	leftTaken  bool
	rightTaken bool
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*Player)}
}

// Register adds the connection and assigns its seat: the first connection
// takes left, the second right, everyone after spectates.
func (r *Registry) Register(c Conn) game.Side {
	role := game.SideSpectator
	switch {
	case !r.leftTaken:
		role = game.SideLeft
		r.leftTaken = true
	case !r.rightTaken:
		role = game.SideRight
		r.rightTaken = true
	}
	r.players[c.ID()] = &Player{Conn: c, Role: role}
	return role
}

// Unregister removes the connection. The vacated seat is not handed to
// anyone else; a mid-game disconnect just leaves that paddle uncontrolled.
func (r *Registry) Unregister(c Conn) {
	delete(r.players, c.ID())
}

// Player looks up the record for a connection.
func (r *Registry) Player(c Conn) (*Player, bool) {
	p, ok := r.players[c.ID()]
	return p, ok
}

// ForEach visits every live player record.
func (r *Registry) ForEach(fn func(*Player)) {
	for _, p := range r.players {
		fn(p)
	}
}

// Conns returns a snapshot of the live connections for fan-out, so sends
// never iterate the mutable map directly.
func (r *Registry) Conns() []Conn {
	conns := make([]Conn, 0, len(r.players))
	for _, p := range r.players {
		conns = append(conns, p.Conn)
	}
	return conns
}

// Inputs collects the control flags physics consumes this tick.
func (r *Registry) Inputs() game.Inputs {
	var in game.Inputs
	for _, p := range r.players {
		switch p.Role {
		case game.SideLeft:
			in.Left = game.PaddleInput{Up: p.Up, Down: p.Down}
		case game.SideRight:
			in.Right = game.PaddleInput{Up: p.Up, Down: p.Down}
		}
	}
	return in
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	return len(r.players)
}
