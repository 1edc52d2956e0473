package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"aliquotas/internal/service"
)

type StatsHandler struct {
	Service *service.StatsService
}

func (h *StatsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/stats", h.overview)
}

// @Summary Dashboard overview statistics
// @Tags stats
// @Success 200 {object} apiResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) overview(c *gin.Context) {
	stats, err := h.Service.Overview(c.Request.Context(), time.Now().UTC())
	if err != nil {
		domainError(c, err)
		return
	}
	Ok(c, stats, nil)
}
