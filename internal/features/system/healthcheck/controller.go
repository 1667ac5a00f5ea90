package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/healthcheck", c.GetHealth)
}

// GetHealth
// @Summary Service health
// @Description Report service, database and disk health
// @Tags system
// @Produce json
// @Success 200 {object} system_healthcheck.HealthStatus
// @Router /system/healthcheck [get]
func (c *HealthcheckController) GetHealth(ctx *gin.Context) {
	status := c.healthcheckService.GetHealth()

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, status)
}
