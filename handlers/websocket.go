package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"greengarden/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait   = 10 * time.Second
	wsMaxFrame    = 8 << 10
	wsFrameError  = "error"
	wsFrameHello  = "connected"
	wsFrameAnswer = "response"
)

// SocketFrame is every frame the chat socket writes.
type SocketFrame struct {
	Type      string               `json:"type"`
	SessionID string               `json:"session_id"`
	Response  *models.ChatResponse `json:"response,omitempty"`
	Text      string               `json:"text,omitempty"`
}

// WSHandler streams a conversation over a websocket: one reply frame per inbound message.
type WSHandler struct {
	chat           *ChatHandler
	upgrader       websocket.Upgrader
	allowedOrigins map[string]bool
}

func NewWSHandler(chat *ChatHandler, allowedOrigins []string) *WSHandler {
	origins := make(map[string]bool)
	for _, o := range allowedOrigins {
		if o == "*" {
			origins = map[string]bool{}
			break
		}
		origins[o] = true
	}
	h := &WSHandler{chat: chat, allowedOrigins: origins}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *WSHandler) checkOrigin(r *http.Request) bool {
	if len(h.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return h.allowedOrigins[origin]
}

// ServeChat handles GET /ws/chat?session_id=.
func (h *WSHandler) ServeChat(c *gin.Context) {
	logger := getLogger(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsMaxFrame)

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	write := func(f SocketFrame) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(f)
	}

	if err := write(SocketFrame{Type: wsFrameHello, SessionID: sessionID}); err != nil {
		logger.Warn("Failed to send connected frame", zap.Error(err))
		return
	}

	ctx := c.Request.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket closed unexpectedly", zap.String("sessionID", sessionID), zap.Error(err))
			}
			return
		}

		var in models.ChatRequest
		if err := json.Unmarshal(data, &in); err != nil || strings.TrimSpace(in.Message) == "" {
			if err := write(SocketFrame{
				Type:      wsFrameError,
				SessionID: sessionID,
				Text:      "Invalid message format. Send JSON with a 'message' field.",
			}); err != nil {
				return
			}
			continue
		}

		reply := h.chat.process(ctx, sessionID, in.Message)
		if err := write(SocketFrame{Type: wsFrameAnswer, SessionID: reply.SessionID, Response: &reply.Response}); err != nil {
			logger.Warn("Failed to write to WebSocket", zap.String("sessionID", sessionID), zap.Error(err))
			return
		}
	}
}
