package service

import (
	"context"

	"go.uber.org/zap"

	"aliquotas/internal/config"
	"aliquotas/internal/engine"
	"aliquotas/internal/models"
	"aliquotas/internal/repository"
)

const (
	defaultSettingsName = "default"
	defaultTemplateName = "default"
)

// SettingsService manages the singleton-default CalculationSettings and
// PDFTemplate rows. Seeding runs once at startup so every operation can rely
// on a default row existing.
type SettingsService struct {
	Repo   repository.Repository
	Engine config.EngineConfig
	Report config.ReportConfig
	Logger *zap.Logger
}

// EnsureDefaults creates the default settings and template rows when missing.
// Existing rows are left untouched: operators own them after first boot.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}

	settings, err := s.Repo.GetDefaultCalculationSettings(ctx)
	if err != nil {
		return err
	}
	if settings == nil {
		item := &models.CalculationSettings{
			Name:                  defaultSettingsName,
			MinimumIntervalMonths: s.Engine.MinimumIntervalMonths,
			RoundingPlaces:        int32(s.Engine.RoundingPlaces),
			IsDefault:             true,
		}
		if item.MinimumIntervalMonths <= 0 {
			item.MinimumIntervalMonths = 12
		}
		if item.RoundingPlaces <= 0 {
			item.RoundingPlaces = 2
		}
		if err := s.Repo.SaveCalculationSettings(ctx, item); err != nil {
			return err
		}
		if err := s.Repo.SetDefaultCalculationSettings(ctx, item.ID); err != nil {
			return err
		}
		if s.Logger != nil {
			s.Logger.Info("seeded default calculation settings",
				zap.Int("minimum_interval_months", item.MinimumIntervalMonths))
		}
	}

	tpl, err := s.Repo.GetDefaultPDFTemplate(ctx)
	if err != nil {
		return err
	}
	if tpl == nil {
		item := &models.PDFTemplate{
			Name:               defaultTemplateName,
			LetterheadTitle:    s.Report.LetterheadTitle,
			LetterheadSubtitle: s.Report.LetterheadSubtitle,
			FooterText:         s.Report.FooterText,
			IsDefault:          true,
		}
		if item.LetterheadTitle == "" {
			item.LetterheadTitle = "Relatório de Reajuste de Aluguel"
		}
		if err := s.Repo.SavePDFTemplate(ctx, item); err != nil {
			return err
		}
		if err := s.Repo.SetDefaultPDFTemplate(ctx, item.ID); err != nil {
			return err
		}
		if s.Logger != nil {
			s.Logger.Info("seeded default pdf template", zap.String("title", item.LetterheadTitle))
		}
	}

	return nil
}

// UpdateDefaultSettings mutates the active settings row in place. Nil means
// "leave unchanged", so zero rounding places (whole currency units) is a
// settable value. Both fields are validated here because they gate every
// later calculation.
func (s *SettingsService) UpdateDefaultSettings(ctx context.Context, intervalMonths, roundingPlaces *int) (*models.CalculationSettings, error) {
	settings, err := s.Repo.GetDefaultCalculationSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, repository.ErrNotFound
	}
	if intervalMonths != nil {
		if *intervalMonths <= 0 {
			return nil, &engine.ValidationError{Field: "minimum_interval_months", Reason: "must be greater than zero"}
		}
		settings.MinimumIntervalMonths = *intervalMonths
	}
	if roundingPlaces != nil {
		if *roundingPlaces < 0 {
			return nil, &engine.ValidationError{Field: "rounding_places", Reason: "must not be negative"}
		}
		settings.RoundingPlaces = int32(*roundingPlaces)
	}
	if err := s.Repo.SaveCalculationSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateDefaultTemplate mutates the active template row in place.
func (s *SettingsService) UpdateDefaultTemplate(ctx context.Context, title, subtitle, footer string) (*models.PDFTemplate, error) {
	tpl, err := s.Repo.GetDefaultPDFTemplate(ctx)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, repository.ErrNotFound
	}
	if title != "" {
		tpl.LetterheadTitle = title
	}
	tpl.LetterheadSubtitle = subtitle
	if footer != "" {
		tpl.FooterText = footer
	}
	if err := s.Repo.SavePDFTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}
