package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"greengarden/models"
	"greengarden/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatService is the conversation entry point the chat endpoints drive.
type ChatService interface {
	ProcessMessage(ctx context.Context, sessionID, text string) models.ChatReply
	EndSession(ctx context.Context, sessionID string) error
}

// SessionLocks serializes messages that belong to the same session.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sessionLock)}
}

// Lock blocks until the caller holds sessionID. The returned func releases it.
func (l *SessionLocks) Lock(sessionID string) (unlock func()) {
	l.mu.Lock()
	sl, ok := l.locks[sessionID]
	if !ok {
		sl = &sessionLock{}
		l.locks[sessionID] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}

func (l *SessionLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// ChatHandler serves the HTTP chat endpoints.
type ChatHandler struct {
	Chat  ChatService
	Locks *SessionLocks
}

func NewChatHandler(chat ChatService, locks *SessionLocks) *ChatHandler {
	if locks == nil {
		locks = NewSessionLocks()
	}
	return &ChatHandler{Chat: chat, Locks: locks}
}

// process runs one message, holding the session lock when the id is known.
func (h *ChatHandler) process(ctx context.Context, sessionID, text string) models.ChatReply {
	if sessionID != "" {
		unlock := h.Locks.Lock(sessionID)
		defer unlock()
	}
	return h.Chat.ProcessMessage(ctx, sessionID, text)
}

// ChatHandler handles POST /api/chat.
func (h *ChatHandler) ChatHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Message is required", "")
		return
	}

	reply := h.process(c.Request.Context(), req.SessionID, req.Message)
	if reply.Response.Error != "" {
		getLogger(c).Warn("Chat turn failed",
			zap.String("sessionID", reply.SessionID),
			zap.String("error", reply.Response.Error),
			zap.String("detail", reply.Response.Detail))
	}
	c.JSON(http.StatusOK, reply)
}

// EndSessionHandler handles DELETE /api/chat/:sessionID.
func (h *ChatHandler) EndSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	unlock := h.Locks.Lock(sessionID)
	defer unlock()

	if err := h.Chat.EndSession(c.Request.Context(), sessionID); err != nil {
		getLogger(c).Error("Failed to end session", zap.String("sessionID", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to end session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "ended": true})
}
