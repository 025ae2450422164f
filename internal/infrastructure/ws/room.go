package ws

import (
	"errors"
	"sync"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrClientNotFound = errors.New("client not found")
)

// RoomManager tracks connected clients and which room channel each one
// listens on. Sends never block; a full client buffer drops the message.
type RoomManager struct {
	clients map[string]*Client            // connectionID -> client
	rooms   map[string]map[string]*Client // roomCode -> connectionID -> client
	mu      sync.RWMutex

	onDrop func(connectionID string)
}

func NewRoomManager(onDrop func(connectionID string)) *RoomManager {
	if onDrop == nil {
		onDrop = func(string) {}
	}
	return &RoomManager{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		onDrop:  onDrop,
	}
}

func (rm *RoomManager) AddClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, exists := rm.clients[cl.ID]; !exists {
		rm.clients[cl.ID] = cl
	}
}

// RemoveClient drops the client from every room and closes its queue.
func (rm *RoomManager) RemoveClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, ok := rm.clients[cl.ID]; !ok {
		return
	}
	delete(rm.clients, cl.ID)

	for code, members := range rm.rooms {
		if _, ok := members[cl.ID]; ok {
			delete(members, cl.ID)
			if len(members) == 0 {
				delete(rm.rooms, code)
			}
		}
	}

	close(cl.Message)
}

func (rm *RoomManager) Join(connectionID, code string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	cl, ok := rm.clients[connectionID]
	if !ok {
		return ErrClientNotFound
	}

	members, ok := rm.rooms[code]
	if !ok {
		members = make(map[string]*Client)
		rm.rooms[code] = members
	}
	members[connectionID] = cl
	return nil
}

func (rm *RoomManager) Leave(connectionID, code string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	members, ok := rm.rooms[code]
	if !ok {
		return
	}
	delete(members, connectionID)
	if len(members) == 0 {
		delete(rm.rooms, code)
	}
}

func (rm *RoomManager) BroadcastToRoom(code string, msg *WSMessage) error {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	members, ok := rm.rooms[code]
	if !ok {
		return ErrRoomNotFound
	}

	for _, cl := range members {
		rm.deliver(cl, msg)
	}
	return nil
}

func (rm *RoomManager) SendTo(connectionID string, msg *WSMessage) error {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	cl, ok := rm.clients[connectionID]
	if !ok {
		return ErrClientNotFound
	}
	rm.deliver(cl, msg)
	return nil
}

// deliver must be called with rm.mu held so the queue cannot be closed
// underneath it.
func (rm *RoomManager) deliver(cl *Client, msg *WSMessage) {
	select {
	case cl.Message <- msg:
	default:
		rm.onDrop(cl.ID)
	}
}

func (rm *RoomManager) CloseAll() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for id, cl := range rm.clients {
		delete(rm.clients, id)
		close(cl.Message)
	}
	rm.rooms = make(map[string]map[string]*Client)
}

func (rm *RoomManager) ClientCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.clients)
}

func (rm *RoomManager) Members(code string) []string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	ids := make([]string, 0, len(rm.rooms[code]))
	for id := range rm.rooms[code] {
		ids = append(ids, id)
	}
	return ids
}
