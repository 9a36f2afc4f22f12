package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepwise/interview-coach/internal/common"
	"github.com/prepwise/interview-coach/internal/logger"
)

type saveInputReq struct {
	SessionID string `json:"sessionId" binding:"required"`
	Input     string `json:"input" binding:"required"`
}

func (h *Handler) SaveInput(c *gin.Context) {
	var req saveInputReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "sessionId and input are required")
		return
	}

	if err := h.History.Record(c.Request.Context(), req.SessionID, req.Input); err != nil {
		logger.Log.WithError(err).Error("failed to save input history")
		common.Fail(c, http.StatusInternalServerError, "Failed to save input: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ListRecentInputs(c *gin.Context) {
	inputs, err := h.History.ListRecent(c.Request.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to fetch input history")
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch history: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, inputs)
}

func (h *Handler) SessionInputHistory(c *gin.Context) {
	sessionID := c.Param("session_id")

	entries, err := h.History.ListForSession(c.Request.Context(), sessionID)
	if err != nil {
		logger.Log.WithError(err).WithField("session_id", sessionID).Error("failed to fetch session input history")
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch history: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, entries)
}
