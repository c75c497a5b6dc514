package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"feedback-server/entities"
	httpHandler "feedback-server/handlers/http"
	"feedback-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket message envelopes
type incomingMessage struct {
	Type string `json:"type"` // heartbeat
}

type feedbackEvent struct {
	Type      string             `json:"type"` // feedback_created | feedback_updated | feedback_deleted
	Feedback  *entities.Feedback `json:"feedback"`
	Timestamp string             `json:"timestamp"`
}

// WSHandler streams feedback change events to the owner's dashboard.
type WSHandler struct {
	mgr *ws.Manager
}

func NewWSHandler(mgr *ws.Manager) *WSHandler {
	return &WSHandler{mgr: mgr}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleUserWS upgrades to websocket and keeps the connection open until
// the client goes away. Runs behind the session middleware, so the
// identity is already in the request context.
// GET /ws
func (h *WSHandler) HandleUserWS(c *gin.Context) {
	username := httpHandler.CurrentUsername(c)
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	// Register connection
	h.mgr.Register(username, conn)
	log.Printf("user connected: %s", username)

	// Ensure cleanup on exit
	defer func() {
		h.mgr.Unregister(username)
		log.Printf("user disconnected: %s", username)
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("user %s closed connection", username)
			} else {
				log.Printf("read error from %s: %v", username, err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var base incomingMessage
		if err := json.Unmarshal(message, &base); err != nil {
			log.Printf("invalid json from %s: %v", username, err)
			continue
		}

		switch base.Type {
		case "heartbeat":
			// No-op, could update a last-seen cache
		default:
			log.Printf("unknown message type from %s: %s", username, base.Type)
		}
	}
}

// GetConnectedUsers GET /connected (debug)
func (h *WSHandler) GetConnectedUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.mgr.List(), "count": len(h.mgr.List())})
}

// FeedbackEvents adapts the connection manager to the publisher the
// feedback use case expects.
type FeedbackEvents struct {
	mgr *ws.Manager
}

func NewFeedbackEvents(mgr *ws.Manager) *FeedbackEvents {
	return &FeedbackEvents{mgr: mgr}
}

// Publish pushes an event to the owner's connection. Users without an
// open dashboard simply miss the event.
func (p *FeedbackEvents) Publish(username, event string, feedback *entities.Feedback) {
	payload := feedbackEvent{
		Type:      event,
		Feedback:  feedback,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(payload)
	if err := p.mgr.SendToUser(username, b); err != nil {
		return
	}
}
