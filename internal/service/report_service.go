package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"aliquotas/internal/models"
	"aliquotas/internal/report"
	"aliquotas/internal/repository"
)

// ReportService renders the compliance PDF over a set of adjustments and
// flips their is_generated flag afterwards. The render itself is pure; only
// the flag write touches the store.
type ReportService struct {
	Repo      repository.Repository
	Generator *report.Generator
	Logger    *zap.Logger

	// MaxRecords bounds the "all approved" selection when no ids are given.
	MaxRecords int
}

// ReportOutput is the rendered document plus the records it covered.
type ReportOutput struct {
	PDF         []byte
	RecordCount int
	RecordIDs   []string
}

// Generate renders the report for the given ids, or for all approved records
// when ids is empty. An empty selection still produces a valid zero-totals
// document.
func (s *ReportService) Generate(ctx context.Context, ids []string, client report.ClientInfo) (ReportOutput, error) {
	var out ReportOutput

	records, err := s.selectRecords(ctx, ids)
	if err != nil {
		return out, err
	}

	tpl, err := s.Repo.GetDefaultPDFTemplate(ctx)
	if err != nil {
		return out, err
	}
	if tpl == nil {
		tpl = &models.PDFTemplate{LetterheadTitle: "Relatório de Reajuste de Aluguel"}
	}

	pdf, err := s.Generator.Render(records, client, *tpl, time.Now().UTC())
	if err != nil {
		return out, err
	}

	recordIDs := make([]string, 0, len(records))
	for _, r := range records {
		recordIDs = append(recordIDs, r.ID)
	}
	if err := s.Repo.MarkGenerated(ctx, recordIDs); err != nil {
		return out, err
	}

	if s.Logger != nil {
		s.Logger.Info("report generated", zap.Int("records", len(records)))
	}
	return ReportOutput{PDF: pdf, RecordCount: len(records), RecordIDs: recordIDs}, nil
}

func (s *ReportService) selectRecords(ctx context.Context, ids []string) ([]models.RentAdjustment, error) {
	if len(ids) > 0 {
		return s.Repo.ListAdjustmentsByIDs(ctx, ids)
	}
	limit := s.MaxRecords
	if limit <= 0 {
		limit = 500
	}
	status := models.StatusApproved
	asc := true
	return s.Repo.ListAdjustments(ctx, repository.ListAdjustmentsParams{
		Limit:   limit,
		Status:  &status,
		OrderBy: "effective_date",
		Asc:     &asc,
	})
}
