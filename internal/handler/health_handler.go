package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trailhuf/experiences-api/pkg/database"
	"github.com/trailhuf/experiences-api/pkg/redis"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db      *database.PostgresDB
	redis   *redis.Client
	name    string
	version string
	env     string
}

// HealthHandlerConfig contains service identity for the status endpoint
type HealthHandlerConfig struct {
	Name        string
	Version     string
	Environment string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client, cfg *HealthHandlerConfig) *HealthHandler {
	h := &HealthHandler{db: db, redis: redisClient}
	if cfg != nil {
		h.name = cfg.Name
		h.version = cfg.Version
		h.env = cfg.Environment
	}
	return h
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadyResponse represents readiness check response
type ReadyResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Components map[string]string `json:"components"`
}

// StatusResponse identifies the running service
type StatusResponse struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

// Health returns a simple health check (liveness probe)
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready returns a readiness check (readiness probe)
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]string)
	allHealthy := true

	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			components["database"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			components["database"] = "healthy"
		}
	} else {
		components["database"] = "not configured"
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(ctx); err != nil {
			components["redis"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			components["redis"] = "healthy"
		}
	} else {
		components["redis"] = "not configured"
	}

	response := ReadyResponse{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	}

	if allHealthy {
		response.Status = "ready"
		c.JSON(http.StatusOK, response)
	} else {
		response.Status = "not ready"
		c.JSON(http.StatusServiceUnavailable, response)
	}
}

// Status returns service identity for API consumers
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Service:     h.name,
		Version:     h.version,
		Environment: h.env,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
