// internal/gateway/ws.go
package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gateway fronts a local assistant; origin policy is handled
	// by the CORS layer on the HTTP side.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type      string          `json:"type"` // "navigate" or "status"
	SessionID string          `json:"sessionId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type wsReply struct {
	Type  string      `json:"type"` // "result", "status", "error"
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// WebSocket handles GET /ws. Each connection is a conversation; the
// sessionId on the first message binds it to the Redis session context.
func (h *HTTPHandler) WebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "navigate":
			var req NavigateRequest
			if len(msg.Payload) > 0 {
				if err := json.Unmarshal(msg.Payload, &req); err != nil {
					_ = conn.WriteJSON(wsReply{Type: "error", Error: "invalid navigate payload"})
					continue
				}
			}
			if req.SessionID == "" {
				req.SessionID = msg.SessionID
			}
			if req.Text == "" && req.Audio == "" {
				_ = conn.WriteJSON(wsReply{Type: "error", Error: "either text or audio is required"})
				continue
			}

			resp, err := h.service.Navigate(c.Request.Context(), &req)
			if err != nil {
				_ = conn.WriteJSON(wsReply{Type: "error", Error: err.Error()})
				continue
			}
			_ = conn.WriteJSON(wsReply{Type: "result", Data: resp})

		case "status":
			status := h.service.Status(c.Request.Context())
			_ = conn.WriteJSON(wsReply{Type: "status", Data: status})

		default:
			_ = conn.WriteJSON(wsReply{Type: "error", Error: "unknown message type: " + msg.Type})
		}
	}
}
