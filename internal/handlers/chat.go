package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"adspace-chat/internal/observability"
	"adspace-chat/internal/services"
	"adspace-chat/internal/telemetry"
)

// ChatHandler exposes the chat service over HTTP.
type ChatHandler struct {
	chats *services.ChatService
	audit *telemetry.AuditEmitter
}

// NewChatHandler builds a ChatHandler. audit may be nil.
func NewChatHandler(chats *services.ChatService, audit *telemetry.AuditEmitter) *ChatHandler {
	return &ChatHandler{chats: chats, audit: audit}
}

// RegisterRoutes mounts the chat endpoints on an authenticated group.
func (h *ChatHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/chats", h.ListChats)
	r.POST("/chats/start", h.StartChat)
	r.GET("/chats/:chat_id", h.GetChat)
	r.POST("/chats/:chat_id/messages", h.PostChatMessage)
	r.POST("/chats/:chat_id/read", h.MarkRead)
}

// ListChats returns the caller's chats, most recent first.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chats.List(c.Request.Context(), callerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// GetChat returns one chat with its full history.
func (h *ChatHandler) GetChat(c *gin.Context) {
	chatID, ok := pathID(c, "chat_id")
	if !ok {
		return
	}

	detail, err := h.chats.GetByID(c.Request.Context(), callerFromContext(c), chatID)
	if err != nil {
		h.auditDenied(c, err, chatID)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PostChatMessage stores a message from the caller.
func (h *ChatHandler) PostChatMessage(c *gin.Context) {
	chatID, ok := pathID(c, "chat_id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgValidation})
		return
	}

	msg, err := h.chats.SendMessage(c.Request.Context(), callerFromContext(c), chatID, req.Content)
	if err != nil {
		h.auditDenied(c, err, chatID)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// StartChat returns the chat with a business owner, creating it when needed.
func (h *ChatHandler) StartChat(c *gin.Context) {
	var req struct {
		BusinessID int `json:"business_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgValidation})
		return
	}

	ref, err := h.chats.GetOrCreate(c.Request.Context(), callerFromContext(c), req.BusinessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

// MarkRead marks the other participant's messages as read.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	chatID, ok := pathID(c, "chat_id")
	if !ok {
		return
	}

	updated, err := h.chats.MarkAsRead(c.Request.Context(), callerFromContext(c), chatID)
	if err != nil {
		h.auditDenied(c, err, chatID)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *ChatHandler) auditDenied(c *gin.Context, err error, chatID int) {
	if h.audit == nil || !errors.Is(err, services.ErrForbidden) {
		return
	}
	text := fmt.Sprintf("chat access denied: chat_id=%d path=%s ip=%s", chatID, c.FullPath(), observability.IPFromRequest(c.Request))
	h.audit.Emit(c.Request.Context(), "WARN", text, requestIDFromContext(c), callerFromContext(c).ID)
}
