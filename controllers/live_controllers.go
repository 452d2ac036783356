package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/stall-pos/live"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // board viewers connect from anywhere on the stall LAN
	},
}

// LiveHandler -> websocket endpoint; every connected client receives
// board snapshots and row events as broadcasts
func LiveHandler(c *gin.Context) {
	role := "viewer"
	if r, exists := c.Get("role"); exists {
		role = r.(string)
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	live.RegisterClient(ws, role)

	// Drain incoming frames; viewers only listen, but reading is what
	// detects the disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	live.UnregisterClient(ws)
}
