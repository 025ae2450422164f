package ws

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(id string, buffer int) *Client {
	return &Client{ID: id, Message: make(chan *WSMessage, buffer), registered: make(chan struct{})}
}

func drain(cl *Client) []*WSMessage {
	var out []*WSMessage
	for {
		select {
		case msg, ok := <-cl.Message:
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestRoomManager_BroadcastReachesOnlyRoomMembers(t *testing.T) {
	rm := NewRoomManager(nil)
	a, b, c := testClient("a", 4), testClient("b", 4), testClient("c", 4)
	rm.AddClient(a)
	rm.AddClient(b)
	rm.AddClient(c)
	require.NoError(t, rm.Join("a", "room1"))
	require.NoError(t, rm.Join("b", "room1"))
	require.NoError(t, rm.Join("c", "room2"))

	require.NoError(t, rm.BroadcastToRoom("room1", NewYourTurn("room1", "A")))

	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
	assert.Empty(t, drain(c))
}

func TestRoomManager_SendToAndUnknown(t *testing.T) {
	rm := NewRoomManager(nil)
	a := testClient("a", 1)
	rm.AddClient(a)

	require.NoError(t, rm.SendTo("a", NewError("x")))
	assert.ErrorIs(t, rm.SendTo("ghost", NewError("x")), ErrClientNotFound)
	assert.ErrorIs(t, rm.BroadcastToRoom("nope", NewError("x")), ErrRoomNotFound)
	assert.ErrorIs(t, rm.Join("ghost", "r"), ErrClientNotFound)
	assert.Len(t, drain(a), 1)
}

func TestRoomManager_FullBufferDrops(t *testing.T) {
	var dropped atomic.Int32
	rm := NewRoomManager(func(string) { dropped.Add(1) })
	a := testClient("a", 1)
	rm.AddClient(a)

	require.NoError(t, rm.SendTo("a", NewError("1")))
	require.NoError(t, rm.SendTo("a", NewError("2")))

	assert.Equal(t, int32(1), dropped.Load())
	assert.Len(t, drain(a), 1)
}

func TestRoomManager_RemoveClientClosesQueueOnce(t *testing.T) {
	rm := NewRoomManager(nil)
	a := testClient("a", 1)
	rm.AddClient(a)
	require.NoError(t, rm.Join("a", "room1"))

	rm.RemoveClient(a)
	rm.RemoveClient(a)

	_, ok := <-a.Message
	assert.False(t, ok)
	assert.Empty(t, rm.Members("room1"))
	assert.Equal(t, 0, rm.ClientCount())
}

func TestRoomManager_Leave(t *testing.T) {
	rm := NewRoomManager(nil)
	a := testClient("a", 2)
	rm.AddClient(a)
	require.NoError(t, rm.Join("a", "room1"))

	rm.Leave("a", "room1")

	assert.ErrorIs(t, rm.BroadcastToRoom("room1", NewError("x")), ErrRoomNotFound)
}
