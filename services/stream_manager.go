package services

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"ids-dashboard/models"
)

// StreamManager fans newly ingested log entries out to open dashboard
// connections. Delivery is fire-and-forget: a client with a full buffer
// misses the record and catches up on its next full fetch.
type StreamManager struct {
	connections map[string]*StreamConnection
	mu          sync.RWMutex
	broadcast   chan StreamMessage
}

// StreamConnection represents a single dashboard WebSocket connection
type StreamConnection struct {
	Conn   *websocket.Conn
	ConnID string
	UserID string
	Send   chan []byte
}

// StreamMessage is a message queued for broadcast
type StreamMessage struct {
	Type string
	Data interface{}
}

// StreamPayload is the wire shape pushed to clients
type StreamPayload struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

var streamManager *StreamManager
var once sync.Once

// GetStreamManager returns the singleton stream manager
func GetStreamManager() *StreamManager {
	once.Do(func() {
		streamManager = &StreamManager{
			connections: make(map[string]*StreamConnection),
			broadcast:   make(chan StreamMessage, 100),
		}
		go streamManager.handleBroadcast()
	})
	return streamManager
}

// RegisterConnection registers a new dashboard connection
func (m *StreamManager) RegisterConnection(conn *StreamConnection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connections[conn.ConnID] = conn

	slog.Info("Log stream connection registered",
		"connID", conn.ConnID,
		"userID", conn.UserID,
		"totalConnections", len(m.connections))
}

// UnregisterConnection removes a dashboard connection
func (m *StreamManager) UnregisterConnection(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conn, exists := m.connections[connID]; exists {
		close(conn.Send)
		delete(m.connections, connID)

		slog.Info("Log stream connection unregistered",
			"connID", connID,
			"remainingConnections", len(m.connections))
	}
}

// BroadcastLog queues a freshly ingested log entry for all connections.
func (m *StreamManager) BroadcastLog(entry *models.LogEntry) {
	m.broadcast <- StreamMessage{Type: "new_log", Data: entry}
}

// handleBroadcast processes broadcast messages
func (m *StreamManager) handleBroadcast() {
	for message := range m.broadcast {
		payload := StreamPayload{
			Type:      message.Type,
			Data:      message.Data,
			Timestamp: time.Now().Unix(),
		}

		jsonData, err := json.Marshal(payload)
		if err != nil {
			slog.Error("Failed to marshal stream message", "error", err)
			continue
		}

		m.mu.RLock()
		for _, conn := range m.connections {
			select {
			case conn.Send <- jsonData:
				// Message queued
			default:
				// Connection buffer full, skip
				slog.Warn("Log stream connection buffer full",
					"connID", conn.ConnID,
					"userID", conn.UserID)
			}
		}
		m.mu.RUnlock()
	}
}

// ConnectionCount returns the number of open stream connections
func (m *StreamManager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.connections)
}
