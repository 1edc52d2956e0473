package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aliquotas/internal/engine"
	"aliquotas/internal/repository"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// domainError maps engine and repository errors onto HTTP statuses. Unknown
// errors fall through to 500 without leaking internals.
func domainError(c *gin.Context, err error) {
	var elig *engine.EligibilityError
	if errors.As(err, &elig) {
		Error(c, http.StatusBadRequest, elig.Reason, map[string]any{
			"months_remaining": elig.MonthsRemaining,
		})
		return
	}
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		Error(c, http.StatusBadRequest, verr.Error(), map[string]any{"field": verr.Field})
		return
	}
	var cerr *engine.CalculationError
	if errors.As(err, &cerr) {
		Error(c, http.StatusInternalServerError, cerr.Error(), nil)
		return
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		Error(c, http.StatusNotFound, "adjustment not found", nil)
	case errors.Is(err, repository.ErrInvalidTransition):
		Error(c, http.StatusUnprocessableEntity, "invalid status transition", nil)
	case errors.Is(err, repository.ErrConflict):
		Error(c, http.StatusConflict, "record changed concurrently, reload and retry", nil)
	default:
		Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
