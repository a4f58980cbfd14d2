package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db        *gorm.DB
	startedAt time.Time
	version   string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB, version string) *SystemHandler {
	return &SystemHandler{db: db, startedAt: time.Now(), version: version}
}

// RegisterRoutes registers system routes on the engine root
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health reports liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready reports readiness, including database connectivity
func (h *SystemHandler) Ready(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	h.Success(c, gin.H{
		"status":   status,
		"database": dbStatus,
	})
}
