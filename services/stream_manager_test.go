package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ids-dashboard/models"
)

func newTestStreamManager() *StreamManager {
	m := &StreamManager{
		connections: make(map[string]*StreamConnection),
		broadcast:   make(chan StreamMessage, 100),
	}
	go m.handleBroadcast()
	return m
}

func TestStreamManager_BroadcastDeliversToAllConnections(t *testing.T) {
	m := newTestStreamManager()

	c1 := &StreamConnection{ConnID: "c1", Send: make(chan []byte, 8)}
	c2 := &StreamConnection{ConnID: "c2", Send: make(chan []byte, 8)}
	m.RegisterConnection(c1)
	m.RegisterConnection(c2)

	entry := &models.LogEntry{
		Type:        "Port Scan Detected",
		SourceIP:    "10.0.0.5",
		ActionTaken: models.DefaultAction,
	}
	m.BroadcastLog(entry)

	for _, conn := range []*StreamConnection{c1, c2} {
		select {
		case raw := <-conn.Send:
			var payload StreamPayload
			require.NoError(t, json.Unmarshal(raw, &payload))
			assert.Equal(t, "new_log", payload.Type)

			data, ok := payload.Data.(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, "Port Scan Detected", data["type"])
			assert.Equal(t, "10.0.0.5", data["source_ip"])
		case <-time.After(2 * time.Second):
			t.Fatalf("connection %s did not receive the broadcast", conn.ConnID)
		}
	}
}

func TestStreamManager_UnregisterClosesSendChannel(t *testing.T) {
	m := newTestStreamManager()

	conn := &StreamConnection{ConnID: "c1", Send: make(chan []byte, 1)}
	m.RegisterConnection(conn)
	assert.Equal(t, 1, m.ConnectionCount())

	m.UnregisterConnection("c1")
	assert.Equal(t, 0, m.ConnectionCount())

	_, open := <-conn.Send
	assert.False(t, open, "send channel should be closed after unregister")
}

func TestStreamManager_FullBufferDoesNotBlockBroadcast(t *testing.T) {
	m := newTestStreamManager()

	stuck := &StreamConnection{ConnID: "stuck", Send: make(chan []byte)}
	healthy := &StreamConnection{ConnID: "healthy", Send: make(chan []byte, 8)}
	m.RegisterConnection(stuck)
	m.RegisterConnection(healthy)

	m.BroadcastLog(&models.LogEntry{Type: "Brute Force", SourceIP: "10.0.0.9"})

	select {
	case <-healthy.Send:
		// The slow consumer was skipped, the healthy one still got the record
	case <-time.After(2 * time.Second):
		t.Fatal("healthy connection blocked behind a full buffer")
	}
}

func TestStreamManager_UnregisterUnknownConnIsNoop(t *testing.T) {
	m := newTestStreamManager()
	m.UnregisterConnection("never-registered")
	assert.Equal(t, 0, m.ConnectionCount())
}
