package handlers

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ids-dashboard/services"
)

// StreamUpgrade upgrades the HTTP connection to WebSocket
func StreamUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleLogStream serves one dashboard's live log feed. Each new log entry
// ingested while the connection is open is pushed as a new_log message.
func HandleLogStream(c *websocket.Conn) {
	userID, _ := c.Locals("user_id").(string)
	connID := uuid.New().String()

	conn := &services.StreamConnection{
		Conn:   c,
		ConnID: connID,
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	manager := services.GetStreamManager()
	manager.RegisterConnection(conn)
	defer manager.UnregisterConnection(connID)

	slog.Info("Log stream established", "connID", connID, "userID", userID)

	welcomeMsg := map[string]interface{}{
		"type":    "connected",
		"conn_id": connID,
	}
	if welcomeData, err := json.Marshal(welcomeMsg); err == nil {
		c.WriteMessage(websocket.TextMessage, welcomeData)
	}

	go handleStreamSend(conn)

	handleStreamReceive(conn)
}

// handleStreamSend pumps queued messages out to the client
func handleStreamSend(conn *services.StreamConnection) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		conn.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Channel closed
				conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				slog.Error("Failed to write stream message", "error", err)
				return
			}

		case <-ticker.C:
			// Ping to keep the connection alive
			conn.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleStreamReceive drains client messages; the feed is one-directional
// apart from ping handling.
func handleStreamReceive(conn *services.StreamConnection) {
	defer conn.Conn.Close()

	conn.Conn.SetReadLimit(4 * 1024)
	conn.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, messageBytes, err := conn.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("Log stream read error", "error", err)
			}
			break
		}

		conn.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			continue
		}

		if msg.Type == "ping" {
			pongMsg := map[string]string{"type": "pong"}
			if pongData, err := json.Marshal(pongMsg); err == nil {
				conn.Send <- pongData
			}
		}
	}
}
