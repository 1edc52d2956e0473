package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"aliquotas/internal/engine"
	"aliquotas/internal/models"
	"aliquotas/internal/repository"
	"aliquotas/internal/service"
)

const dateLayout = "2006-01-02"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(dateLayout, fl.Field().String())
			return err == nil
		})
	}
}

type AdjustmentHandler struct {
	Service   *service.AdjustmentService
	Lifecycle *service.LifecycleService
	Repo      repository.Repository
	Logger    *zap.Logger
}

func (h *AdjustmentHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/adjustments")
	group.POST("/calculate", h.calculate)
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.GET("/:id/history", h.history)
	group.POST("/:id/submit", h.submit)
	group.POST("/:id/approve", h.approve)
	group.POST("/:id/send", h.send)
}

type calculateRequest struct {
	CurrentRent          float64 `json:"current_rent" binding:"required,gt=0"`
	IndexType            string  `json:"index_type" binding:"required"`
	AdjustmentPercentage float64 `json:"adjustment_percentage" binding:"min=0,max=100"`
	ContractDate         string  `json:"contract_date" binding:"required"`
	LastAdjustmentDate   string  `json:"last_adjustment_date" binding:"omitempty,dateonly"`
	IPTUValue            float64 `json:"iptu_value" binding:"min=0"`
	CondominiumValue     float64 `json:"condominium_value" binding:"min=0"`
	OtherCharges         float64 `json:"other_charges" binding:"min=0"`
}

func (r *calculateRequest) toInput() (engine.CalculationInput, error) {
	contractDate, err := time.Parse(dateLayout, r.ContractDate)
	if err != nil {
		return engine.CalculationInput{}, &engine.ValidationError{Field: "contract_date", Reason: "must be YYYY-MM-DD"}
	}
	in := engine.CalculationInput{
		CurrentRent:          decimal.NewFromFloat(r.CurrentRent),
		IndexType:            models.IndexType(strings.ToLower(strings.TrimSpace(r.IndexType))),
		AdjustmentPercentage: decimal.NewFromFloat(r.AdjustmentPercentage),
		ContractDate:         contractDate,
		IPTUValue:            decimal.NewFromFloat(r.IPTUValue),
		CondominiumValue:     decimal.NewFromFloat(r.CondominiumValue),
		OtherCharges:         decimal.NewFromFloat(r.OtherCharges),
	}
	if r.LastAdjustmentDate != "" {
		last, err := time.Parse(dateLayout, r.LastAdjustmentDate)
		if err != nil {
			return engine.CalculationInput{}, &engine.ValidationError{Field: "last_adjustment_date", Reason: "must be YYYY-MM-DD"}
		}
		in.LastAdjustmentDate = &last
	}
	return in, nil
}

type createRequest struct {
	calculateRequest

	TenantName      string `json:"tenant_name" binding:"required"`
	PropertyAddress string `json:"property_address" binding:"required"`
	Submit          bool   `json:"submit"`
	Actor           string `json:"actor"`
}

type calculationResponse struct {
	CurrentRent         decimal.Decimal `json:"current_rent"`
	IncreaseAmount      decimal.Decimal `json:"increase_amount"`
	NewRent             decimal.Decimal `json:"new_rent"`
	TotalCharges        decimal.Decimal `json:"total_charges"`
	TotalMonthlyPayment decimal.Decimal `json:"total_monthly_payment"`
	EffectiveDate       string          `json:"effective_date"`
}

func toCalculationResponse(res engine.CalculationResult) calculationResponse {
	return calculationResponse{
		CurrentRent:         res.Input.CurrentRent,
		IncreaseAmount:      res.IncreaseAmount,
		NewRent:             res.NewRent,
		TotalCharges:        res.TotalCharges,
		TotalMonthlyPayment: res.TotalMonthlyPayment,
		EffectiveDate:       res.EffectiveDate.Format(dateLayout),
	}
}

// @Summary Preview an adjustment calculation
// @Tags adjustments
// @Accept json
// @Param request body calculateRequest true "calculation input"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/adjustments/calculate [post]
func (h *AdjustmentHandler) calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	in, err := req.toInput()
	if err != nil {
		domainError(c, err)
		return
	}
	result, err := h.Service.Preview(c.Request.Context(), in)
	if err != nil {
		domainError(c, err)
		return
	}
	Ok(c, toCalculationResponse(result), nil)
}

// @Summary Create an adjustment record
// @Tags adjustments
// @Accept json
// @Param request body createRequest true "adjustment"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/adjustments [post]
func (h *AdjustmentHandler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	in, err := req.toInput()
	if err != nil {
		domainError(c, err)
		return
	}
	item, err := h.Service.Create(c.Request.Context(), service.CreateParams{
		CalculationInput: in,
		TenantName:       strings.TrimSpace(req.TenantName),
		PropertyAddress:  strings.TrimSpace(req.PropertyAddress),
		Submit:           req.Submit,
		Actor:            strings.TrimSpace(req.Actor),
	})
	if err != nil {
		domainError(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary List adjustment records
// @Tags adjustments
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Param status query string false "draft|pending|approved|sent"
// @Param index_type query string false "igpm|ipca|incc|custom"
// @Param generated query bool false "filter by generated flag"
// @Param search query string false "tenant name or address substring"
// @Param order_by query string false "created_at|effective_date|updated_at"
// @Param asc query bool false "ascending order"
// @Success 200 {object} apiResponse
// @Router /api/v1/adjustments [get]
func (h *AdjustmentHandler) list(c *gin.Context) {
	params := repository.ListAdjustmentsParams{
		Limit:       intQuery(c, "limit", 20),
		Offset:      intQuery(c, "offset", 0),
		IsGenerated: boolQueryPtr(c, "generated"),
		Search:      strQueryPtr(c, "search"),
		OrderBy:     strings.TrimSpace(c.Query("order_by")),
		Asc:         boolQueryPtr(c, "asc"),
	}
	if status := models.AdjustmentStatus(strings.TrimSpace(c.Query("status"))); status != "" {
		if !status.Valid() {
			Error(c, http.StatusBadRequest, "unknown status", nil)
			return
		}
		params.Status = &status
	}
	if idx := models.IndexType(strings.ToLower(strings.TrimSpace(c.Query("index_type")))); idx != "" {
		if !idx.Valid() {
			Error(c, http.StatusBadRequest, "unknown index type", nil)
			return
		}
		params.IndexType = &idx
	}

	items, err := h.Repo.ListAdjustments(c.Request.Context(), params)
	if err != nil {
		domainError(c, err)
		return
	}
	total, err := h.Repo.CountAdjustments(c.Request.Context(), params)
	if err != nil {
		domainError(c, err)
		return
	}
	if items == nil {
		items = []models.RentAdjustment{}
	}
	Ok(c, items, paginationMeta(params.Limit, params.Offset, total))
}

// @Summary Get one adjustment record
// @Tags adjustments
// @Param id path string true "adjustment id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/adjustments/{id} [get]
func (h *AdjustmentHandler) get(c *gin.Context) {
	item, err := h.Repo.GetAdjustmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainError(c, err)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "adjustment not found", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary List the status history of an adjustment
// @Tags adjustments
// @Param id path string true "adjustment id"
// @Success 200 {object} apiResponse
// @Router /api/v1/adjustments/{id}/history [get]
func (h *AdjustmentHandler) history(c *gin.Context) {
	items, err := h.Repo.ListHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainError(c, err)
		return
	}
	if items == nil {
		items = []models.AdjustmentHistory{}
	}
	Ok(c, items, nil)
}

// @Summary Submit a draft for approval
// @Tags adjustments
// @Param id path string true "adjustment id"
// @Success 200 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Failure 422 {object} apiResponse
// @Router /api/v1/adjustments/{id}/submit [post]
func (h *AdjustmentHandler) submit(c *gin.Context) {
	h.transition(c, h.Lifecycle.Submit)
}

// @Summary Approve a pending adjustment
// @Tags adjustments
// @Param id path string true "adjustment id"
// @Success 200 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Failure 422 {object} apiResponse
// @Router /api/v1/adjustments/{id}/approve [post]
func (h *AdjustmentHandler) approve(c *gin.Context) {
	h.transition(c, h.Lifecycle.Approve)
}

// @Summary Mark an approved adjustment as sent
// @Tags adjustments
// @Param id path string true "adjustment id"
// @Success 200 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Failure 422 {object} apiResponse
// @Router /api/v1/adjustments/{id}/send [post]
func (h *AdjustmentHandler) send(c *gin.Context) {
	h.transition(c, h.Lifecycle.Send)
}

type actorRequest struct {
	Actor string `json:"actor"`
}

func (h *AdjustmentHandler) transition(c *gin.Context, fn func(ctx context.Context, id, actor string) (*models.RentAdjustment, error)) {
	var req actorRequest
	_ = c.ShouldBindJSON(&req)

	item, err := fn(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Actor))
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("transition rejected", zap.String("id", c.Param("id")), zap.Error(err))
		}
		domainError(c, err)
		return
	}
	Ok(c, item, nil)
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQueryPtr(c *gin.Context, key string) *bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
	}
	return nil
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}
