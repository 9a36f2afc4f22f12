package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prepwise/interview-coach/internal/chat"
	"github.com/prepwise/interview-coach/internal/common"
	"github.com/prepwise/interview-coach/internal/logger"
)

type createSessionReq struct {
	Title string `json:"title" binding:"required"`
	Model string `json:"model"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "title is required")
		return
	}

	session, err := h.Sessions.Create(c.Request.Context(), req.Title, req.Model)
	if err != nil {
		logger.Log.WithError(err).Error("failed to create session")
		common.Fail(c, http.StatusInternalServerError, "Failed to create session: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.Sessions.List(c.Request.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list sessions")
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch sessions: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			common.Fail(c, http.StatusNotFound, "Session not found")
			return
		}
		logger.Log.WithError(err).Error("failed to fetch session")
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch session: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.Sessions.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			common.Fail(c, http.StatusNotFound, "Session not found")
			return
		}
		logger.Log.WithError(err).WithField("session_id", id).Error("failed to delete session")
		common.Fail(c, http.StatusInternalServerError, "Failed to delete session: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type updateStatsReq struct {
	QuestionsAsked *int    `json:"questionsAsked"`
	Duration       *string `json:"duration"`
}

// UpdateSessionStats reads query params and falls back to a JSON body.
func (h *Handler) UpdateSessionStats(c *gin.Context) {
	var questionsAsked int
	var duration string

	if q := c.Query("questionsAsked"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			common.Fail(c, http.StatusBadRequest, "questionsAsked must be an integer")
			return
		}
		questionsAsked = n
		duration = c.Query("duration")
	} else {
		var req updateStatsReq
		if err := c.ShouldBindJSON(&req); err != nil || req.QuestionsAsked == nil || req.Duration == nil {
			common.Fail(c, http.StatusBadRequest, "questionsAsked and duration are required")
			return
		}
		questionsAsked = *req.QuestionsAsked
		duration = *req.Duration
	}

	if err := h.Sessions.UpdateStats(c.Request.Context(), c.Param("id"), questionsAsked, duration); err != nil {
		logger.Log.WithError(err).Error("failed to update session stats")
		common.Fail(c, http.StatusInternalServerError, "Failed to update session: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
