package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prepwise/interview-coach/internal/common"
	"github.com/prepwise/interview-coach/internal/config"
	"github.com/prepwise/interview-coach/internal/httpapi/handlers"
	"github.com/prepwise/interview-coach/internal/httpapi/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	corsCfg := cors.DefaultConfig()
	if cfg.CORSOrigins == "" || cfg.CORSOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.GET("/ping", h.Ping)

	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions", h.ListSessions)
	r.GET("/sessions/:id", h.GetSession)
	r.DELETE("/sessions/:id", h.DeleteSession)
	r.PATCH("/sessions/:id/update-stats", h.UpdateSessionStats)

	r.POST("/chat", h.SendMessage)
	r.GET("/chat/:session_id", h.GetMessages)
	r.DELETE("/chat/:session_id", h.DeleteMessages)

	r.POST("/input-history", h.SaveInput)
	r.GET("/input-history", h.ListRecentInputs)
	r.GET("/input-history/:session_id", h.SessionInputHistory)

	return r
}
