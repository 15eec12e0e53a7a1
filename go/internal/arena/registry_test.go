package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pongd/pongd/go/internal/game"
)

func TestRegistryFirstComeRoles(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, game.SideLeft, r.Register(&fakeConn{id: "a"}))
	assert.Equal(t, game.SideRight, r.Register(&fakeConn{id: "b"}))
	assert.Equal(t, game.SideSpectator, r.Register(&fakeConn{id: "c"}))
	assert.Equal(t, game.SideSpectator, r.Register(&fakeConn{id: "d"}))
	assert.Equal(t, 4, r.Len())
}

func TestRegistryVacatedSeatNotRecycled(t *testing.T) {
	r := NewRegistry()

	left := &fakeConn{id: "a"}
	require.Equal(t, game.SideLeft, r.Register(left))
	require.Equal(t, game.SideRight, r.Register(&fakeConn{id: "b"}))

	r.Unregister(left)
	assert.Equal(t, 1, r.Len())

	assert.Equal(t, game.SideSpectator, r.Register(&fakeConn{id: "c"}),
		"a vacated seat must not be handed to a later connection")
}

func TestRegistryInputsReadOnlySeatedPlayers(t *testing.T) {
	r := NewRegistry()

	left := &fakeConn{id: "a"}
	right := &fakeConn{id: "b"}
	watcher := &fakeConn{id: "c"}
	r.Register(left)
	r.Register(right)
	r.Register(watcher)

	lp, ok := r.Player(left)
	require.True(t, ok)
	lp.Up = true

	rp, ok := r.Player(right)
	require.True(t, ok)
	rp.Down = true

	sp, ok := r.Player(watcher)
	require.True(t, ok)
	sp.Up = true
	sp.Down = true

	in := r.Inputs()
	assert.Equal(t, game.PaddleInput{Up: true}, in.Left)
	assert.Equal(t, game.PaddleInput{Down: true}, in.Right)
}

func TestRegistryConnsSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeConn{id: "a"})
	r.Register(&fakeConn{id: "b"})

	conns := r.Conns()
	assert.Len(t, conns, 2)

	r.Unregister(&fakeConn{id: "a"})
	assert.Len(t, conns, 2, "snapshot is unaffected by later membership changes")
	assert.Equal(t, 1, r.Len())

	var visited int
	r.ForEach(func(*Player) { visited++ })
	assert.Equal(t, 1, visited)
}
