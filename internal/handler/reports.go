package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aliquotas/internal/report"
	"aliquotas/internal/service"
)

type ReportHandler struct {
	Service *service.ReportService
	Logger  *zap.Logger
}

func (h *ReportHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/reports", h.generate)
}

type reportRequest struct {
	AdjustmentIDs []string          `json:"adjustment_ids"`
	Client        report.ClientInfo `json:"client"`
}

// @Summary Generate the compliance PDF report
// @Tags reports
// @Accept json
// @Produce application/pdf
// @Param request body reportRequest true "record selection and client letterhead"
// @Success 200 {file} binary
// @Failure 400 {object} apiResponse
// @Router /api/v1/reports [post]
func (h *ReportHandler) generate(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if strings.TrimSpace(req.Client.Name) == "" {
		Error(c, http.StatusBadRequest, "client.name is required", nil)
		return
	}

	out, err := h.Service.Generate(c.Request.Context(), req.AdjustmentIDs, req.Client)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("report generation failed", zap.Error(err))
		}
		domainError(c, err)
		return
	}

	filename := fmt.Sprintf("reajustes-%s.pdf", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Record-Count", fmt.Sprintf("%d", out.RecordCount))
	c.Data(http.StatusOK, "application/pdf", out.PDF)
}
