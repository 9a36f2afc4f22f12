package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepwise/interview-coach/internal/common"
	"github.com/prepwise/interview-coach/internal/logger"
)

type sendMessageReq struct {
	SessionID   string `json:"sessionId" binding:"required"`
	Message     string `json:"message" binding:"required"`
	Model       string `json:"model"`
	MessageType string `json:"messageType" binding:"omitempty,oneof=text audio image"`
	ImageData   string `json:"imageData"`
	AudioData   string `json:"audioData"`
}

// SendMessage runs one chat exchange and returns the assistant's message.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "sessionId and message are required")
		return
	}

	msg, err := h.Chat.SendMessage(c.Request.Context(),
		req.SessionID, req.Message, req.Model, req.MessageType, req.ImageData, req.AudioData)
	if err != nil {
		logger.Log.WithError(err).WithField("session_id", req.SessionID).Error("chat exchange failed")
		common.Fail(c, http.StatusInternalServerError, "Failed to process message: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, msg)
}

func (h *Handler) GetMessages(c *gin.Context) {
	sessionID := c.Param("session_id")

	msgs, err := h.Chat.GetMessages(c.Request.Context(), sessionID)
	if err != nil {
		logger.Log.WithError(err).WithField("session_id", sessionID).Error("failed to fetch messages")
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch messages: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *Handler) DeleteMessages(c *gin.Context) {
	sessionID := c.Param("session_id")

	deleted, err := h.Chat.DeleteMessages(c.Request.Context(), sessionID)
	if err != nil {
		logger.Log.WithError(err).WithField("session_id", sessionID).Error("failed to delete messages")
		common.Fail(c, http.StatusInternalServerError, "Failed to delete messages: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": deleted})
}
