package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a fresh client to the hub and runs its pumps. It blocks
// until the connection closes; the caller owns connect/disconnect
// semantics around it.
func ServeWs(hub *Hub, c *websocket.Conn, connectionID string, handler MessageHandler) {
	client := &Client{Hub: hub, Conn: c, ID: connectionID, Send: make(chan []byte, 256), handler: handler}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
