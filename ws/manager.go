package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Manager keeps track of active user websocket connections.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn // username -> conn
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]*websocket.Conn)}
}

// Register registers a user connection, replacing any existing one.
func (m *Manager) Register(username string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[username]; ok && old != conn {
		// close old connection to avoid leaks
		_ = old.Close()
	}
	m.connections[username] = conn
}

// Unregister removes a user connection.
func (m *Manager) Unregister(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.connections[username]; ok {
		_ = conn.Close()
		delete(m.connections, username)
	}
}

// SendToUser sends a text message to a user if connected.
func (m *Manager) SendToUser(username string, payload []byte) error {
	m.mu.RLock()
	conn, ok := m.connections[username]
	m.mu.RUnlock()
	if !ok || conn == nil {
		return errors.New("user not connected")
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// IsConnected returns whether a user is currently connected.
func (m *Manager) IsConnected(username string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[username]
	return ok
}

// List returns a copy of currently connected usernames.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	usernames := make([]string, 0, len(m.connections))
	for username := range m.connections {
		usernames = append(usernames, username)
	}
	return usernames
}
