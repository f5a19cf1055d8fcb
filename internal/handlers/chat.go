package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/middleware"
	"github.com/udaan-app/udaan-backend/internal/services"
)

type ChatHandler struct {
	log     *logger.Logger
	chatSvc services.ChatService
}

func NewChatHandler(log *logger.Logger, chatSvc services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:     log.With("handler", "ChatHandler"),
		chatSvc: chatSvc,
	}
}

// POST /api/chat
func (h *ChatHandler) Send(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.chatSvc.Respond(c.Request.Context(), middleware.CurrentUser(c), req.Message)
	if err != nil {
		h.log.Error("Chat reply failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate reply"})
		return
	}
	c.JSON(http.StatusOK, reply)
}
