package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a connected WebSocket user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager holds the process-wide registry of connected clients and the
// chat-room membership used for fan-out. A user that is offline at emit
// time misses the event; history is pulled over HTTP.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]*Client // chatID -> userID -> client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				log.Printf("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				for _, members := range m.rooms {
					delete(members, client.UserID)
				}
				m.mutex.Unlock()
				log.Printf("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// JoinRoom subscribes a connected user to a chat room.
func (m *Manager) JoinRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[userID]
	if !ok {
		return
	}

	if m.rooms[chatID] == nil {
		m.rooms[chatID] = make(map[string]*Client)
	}
	m.rooms[chatID][userID] = client
}

// LeaveRoom removes a user from a chat room.
func (m *Manager) LeaveRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if members, ok := m.rooms[chatID]; ok {
		delete(members, userID)
		if len(members) == 0 {
			delete(m.rooms, chatID)
		}
	}
}

// SendToUser delivers a message to a single connected user, if online.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		log.Printf("Dropping message for slow client: %s", userID)
	}
}

// SendToRoom fans a message out to every room subscriber except the sender.
func (m *Manager) SendToRoom(chatID, senderID string, message []byte) {
	m.mutex.RLock()
	members := make([]*Client, 0, len(m.rooms[chatID]))
	for userID, client := range m.rooms[chatID] {
		if userID != senderID {
			members = append(members, client)
		}
	}
	m.mutex.RUnlock()

	for _, client := range members {
		select {
		case client.Send <- message:
		default:
			log.Printf("Dropping room message for slow client: %s", client.UserID)
		}
	}
}

// IsOnline reports whether a user currently holds a connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}
