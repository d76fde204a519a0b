package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/verkoop/backend/internal/interfaces/http/dto"
)

// HealthPinger verifies the database connection
type HealthPinger interface {
	Ping() error
}

// SystemHandler handles health and system endpoints
type SystemHandler struct {
	BaseHandler
	db        HealthPinger
	appName   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db HealthPinger, appName string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		appName:   appName,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Name      string `json:"name"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status:    "ok",
		Name:      h.appName,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// DBHealth reports database connectivity
func (h *SystemHandler) DBHealth(c *gin.Context) {
	if h.db == nil {
		h.InternalError(c, "Database is not configured")
		return
	}
	if err := h.db.Ping(); err != nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "Database is unreachable")
		return
	}
	h.Success(c, gin.H{"status": "ok"})
}

// RegisterSystemRoutes registers health endpoints on the engine root
func (h *SystemHandler) RegisterSystemRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/health/db", h.DBHealth)
}
