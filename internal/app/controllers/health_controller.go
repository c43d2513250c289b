package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/gin-gonic/gin"
)

// Pinger checks a dependency is reachable
type Pinger func(ctx context.Context) error

// HealthController reports whether the service and its storage are usable
type HealthController struct {
	storage string
	relay   string
	ping    Pinger
}

// NewHealthController creates a new HealthController. ping may be nil when
// the storage has nothing to reach.
func NewHealthController(storage, relay string, ping Pinger) *HealthController {
	return &HealthController{storage: storage, relay: relay, ping: ping}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Storage: c.storage, Relay: c.relay}

	if c.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.ping(pingCtx); err != nil {
			resp.Status = "degraded"
			ctx.JSON(http.StatusServiceUnavailable, dto.APIResponse{
				Success:   false,
				Message:   err.Error(),
				Data:      resp,
				Timestamp: time.Now(),
			})
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
