package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"schoolpay/internal/infra"
	"schoolpay/pkg/utils"
)

type HealthController struct {
	pinger infra.Pinger
	log    *zap.Logger
}

func NewHealthController(pinger infra.Pinger, log *zap.Logger) *HealthController {
	return &HealthController{pinger: pinger, log: log}
}

// Health godoc
// @Summary Liveness and store connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /health [get]
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hc.pinger.Ping(ctx); err != nil {
		hc.log.Warn("store ping failed", zap.Error(err))
		utils.RespondError(c, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	utils.RespondSuccess(c, gin.H{"store": "up"}, "OK")
}
