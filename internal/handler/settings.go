package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aliquotas/internal/repository"
	"aliquotas/internal/service"
)

type SettingsHandler struct {
	Service *service.SettingsService
	Repo    repository.Repository
}

func (h *SettingsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/settings", h.getSettings)
	r.PUT("/api/v1/settings", h.updateSettings)
	r.GET("/api/v1/templates/default", h.getTemplate)
	r.PUT("/api/v1/templates/default", h.updateTemplate)
}

// @Summary Get the active calculation settings
// @Tags settings
// @Success 200 {object} apiResponse
// @Router /api/v1/settings [get]
func (h *SettingsHandler) getSettings(c *gin.Context) {
	settings, err := h.Repo.GetDefaultCalculationSettings(c.Request.Context())
	if err != nil {
		domainError(c, err)
		return
	}
	if settings == nil {
		Error(c, http.StatusNotFound, "no default settings", nil)
		return
	}
	Ok(c, settings, nil)
}

type updateSettingsRequest struct {
	MinimumIntervalMonths *int `json:"minimum_interval_months" binding:"omitempty,min=1,max=60"`
	RoundingPlaces        *int `json:"rounding_places" binding:"omitempty,min=0,max=6"`
}

// @Summary Update the active calculation settings
// @Tags settings
// @Accept json
// @Param request body updateSettingsRequest true "fields to change"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/settings [put]
func (h *SettingsHandler) updateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	settings, err := h.Service.UpdateDefaultSettings(c.Request.Context(), req.MinimumIntervalMonths, req.RoundingPlaces)
	if err != nil {
		domainError(c, err)
		return
	}
	Ok(c, settings, nil)
}

// @Summary Get the active report template
// @Tags settings
// @Success 200 {object} apiResponse
// @Router /api/v1/templates/default [get]
func (h *SettingsHandler) getTemplate(c *gin.Context) {
	tpl, err := h.Repo.GetDefaultPDFTemplate(c.Request.Context())
	if err != nil {
		domainError(c, err)
		return
	}
	if tpl == nil {
		Error(c, http.StatusNotFound, "no default template", nil)
		return
	}
	Ok(c, tpl, nil)
}

type updateTemplateRequest struct {
	LetterheadTitle    string `json:"letterhead_title"`
	LetterheadSubtitle string `json:"letterhead_subtitle"`
	FooterText         string `json:"footer_text"`
}

// @Summary Update the active report template
// @Tags settings
// @Accept json
// @Param request body updateTemplateRequest true "letterhead fields"
// @Success 200 {object} apiResponse
// @Router /api/v1/templates/default [put]
func (h *SettingsHandler) updateTemplate(c *gin.Context) {
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	tpl, err := h.Service.UpdateDefaultTemplate(c.Request.Context(),
		strings.TrimSpace(req.LetterheadTitle),
		strings.TrimSpace(req.LetterheadSubtitle),
		strings.TrimSpace(req.FooterText),
	)
	if err != nil {
		domainError(c, err)
		return
	}
	Ok(c, tpl, nil)
}
