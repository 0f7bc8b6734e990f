package handlers

import (
	"log"
	"net/http"

	"psytest/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type LiveHandler struct {
	hub      *services.Hub
	upgrader websocket.Upgrader
}

func NewLiveHandler(hub *services.Hub, origins []string) *LiveHandler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return &LiveHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Subscribe upgrades the connection and streams session_completed events of one test type.
func (h *LiveHandler) Subscribe(c *gin.Context) {
	testType := c.Param("test_type")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed for test %s: %v", testType, err)
		return
	}

	h.hub.RegisterClient(conn, testType)
}
