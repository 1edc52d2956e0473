package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"aliquotas/internal/engine"
	"aliquotas/internal/models"
	"aliquotas/internal/repository"
)

// OverviewCounts is the dashboard census block.
type OverviewCounts struct {
	Total     int64   `json:"total"`
	Draft     int64   `json:"draft"`
	Pending   int64   `json:"pending"`
	Approved  int64   `json:"approved"`
	Sent      int64   `json:"sent"`
	Generated int64   `json:"generated"`
	Trend     float64 `json:"trend"`
}

// MonthlyCounts compares record creation across the current and previous
// calendar months.
type MonthlyCounts struct {
	ThisMonth int64 `json:"this_month"`
	LastMonth int64 `json:"last_month"`
}

// OverviewStats is the full stats payload consumed by the dashboard.
type OverviewStats struct {
	Overview        OverviewCounts          `json:"overview"`
	Recent          []models.RentAdjustment `json:"recent"`
	PendingApproval []models.RentAdjustment `json:"pending_approval"`
	Monthly         MonthlyCounts           `json:"monthly"`
}

// StatsService summarizes the adjustment population. Read-only; the numbers
// may be stale by the time they render, which is acceptable for a dashboard.
type StatsService struct {
	Repo repository.Repository

	RecentLimit  int
	PendingLimit int
}

// Overview aggregates counts, bounded lists, and the month-over-month trend
// as of the supplied instant. An empty table yields all zeros and empty
// lists, never an error.
func (s *StatsService) Overview(ctx context.Context, now time.Time) (OverviewStats, error) {
	var stats OverviewStats

	counts, err := s.Repo.CountByStatus(ctx)
	if err != nil {
		return stats, err
	}
	generated, err := s.Repo.CountGenerated(ctx)
	if err != nil {
		return stats, err
	}

	recentLimit := s.RecentLimit
	if recentLimit <= 0 {
		recentLimit = 5
	}
	pendingLimit := s.PendingLimit
	if pendingLimit <= 0 {
		pendingLimit = 5
	}

	recent, err := s.Repo.ListRecentAdjustments(ctx, recentLimit)
	if err != nil {
		return stats, err
	}
	pending, err := s.Repo.ListPendingOldestFirst(ctx, pendingLimit)
	if err != nil {
		return stats, err
	}

	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := engine.AddMonths(thisMonthStart, -1)
	nextMonthStart := engine.AddMonths(thisMonthStart, 1)

	thisMonth, err := s.Repo.CountCreatedBetween(ctx, thisMonthStart, nextMonthStart)
	if err != nil {
		return stats, err
	}
	lastMonth, err := s.Repo.CountCreatedBetween(ctx, lastMonthStart, thisMonthStart)
	if err != nil {
		return stats, err
	}

	if recent == nil {
		recent = []models.RentAdjustment{}
	}
	if pending == nil {
		pending = []models.RentAdjustment{}
	}

	stats.Overview = OverviewCounts{
		Total:     counts.Total(),
		Draft:     counts.Draft,
		Pending:   counts.Pending,
		Approved:  counts.Approved,
		Sent:      counts.Sent,
		Generated: generated,
		Trend:     trendPercent(thisMonth, lastMonth),
	}
	stats.Recent = recent
	stats.PendingApproval = pending
	stats.Monthly = MonthlyCounts{ThisMonth: thisMonth, LastMonth: lastMonth}
	return stats, nil
}

// trendPercent computes the month-over-month growth percentage rounded to one
// decimal place. A zero baseline yields 0, never a division by zero.
func trendPercent(thisMonth, lastMonth int64) float64 {
	if lastMonth == 0 {
		return 0
	}
	trend := decimal.NewFromInt(thisMonth - lastMonth).
		Div(decimal.NewFromInt(lastMonth)).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	f, _ := trend.Float64()
	return f
}
