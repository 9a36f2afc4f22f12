package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepwise/interview-coach/internal/chat"
)

type Handler struct {
	Sessions *chat.SessionService
	Chat     *chat.Service
	History  *chat.HistoryService
}

func NewHandler(sessions *chat.SessionService, chatSvc *chat.Service, history *chat.HistoryService) *Handler {
	return &Handler{Sessions: sessions, Chat: chatSvc, History: history}
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
