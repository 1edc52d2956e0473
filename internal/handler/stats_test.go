package handler

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aliquotas/internal/models"
	"aliquotas/internal/repository"
	"aliquotas/internal/service"
)

func (s *stubRepo) CountByStatus(ctx context.Context) (repository.StatusCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var counts repository.StatusCounts
	for _, a := range s.items {
		switch a.Status {
		case models.StatusDraft:
			counts.Draft++
		case models.StatusPending:
			counts.Pending++
		case models.StatusApproved:
			counts.Approved++
		case models.StatusSent:
			counts.Sent++
		}
	}
	return counts, nil
}

func (s *stubRepo) CountGenerated(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.items {
		if a.IsGenerated {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) ListRecentAdjustments(ctx context.Context, limit int) ([]models.RentAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.RentAdjustment
	for _, a := range s.items {
		items = append(items, *a)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *stubRepo) ListPendingOldestFirst(ctx context.Context, limit int) ([]models.RentAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.RentAdjustment
	for _, a := range s.items {
		if a.Status == models.StatusPending {
			items = append(items, *a)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *stubRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.items {
		if !a.CreatedAt.Before(from) && a.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func newStatsRouter(repo *stubRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &StatsHandler{Service: &service.StatsService{Repo: repo}}
	h.Register(r)
	return r
}

func TestStats_PayloadShape(t *testing.T) {
	repo := newStubRepo()
	for _, status := range []models.AdjustmentStatus{models.StatusDraft, models.StatusPending, models.StatusApproved} {
		item := &models.RentAdjustment{
			TenantName:      "t",
			PropertyAddress: "p",
			IndexType:       models.IndexIGPM,
			Status:          status,
		}
		require.NoError(t, repo.InsertAdjustment(context.Background(), item))
	}

	r := newStatsRouter(repo)
	w := doJSON(t, r, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decode(t, w).Data.(map[string]any)
	for _, key := range []string{"overview", "recent", "pending_approval", "monthly"} {
		assert.Contains(t, data, key)
	}

	overview := data["overview"].(map[string]any)
	assert.Equal(t, float64(3), overview["total"])
	assert.Equal(t, float64(1), overview["draft"])
	assert.Equal(t, float64(1), overview["pending"])

	assert.Len(t, data["recent"].([]any), 3)
	assert.Len(t, data["pending_approval"].([]any), 1)

	monthly := data["monthly"].(map[string]any)
	assert.Equal(t, float64(3), monthly["this_month"])
	assert.Equal(t, float64(0), monthly["last_month"])
}

func TestStats_EmptyTable(t *testing.T) {
	r := newStatsRouter(newStubRepo())
	w := doJSON(t, r, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w).Data.(map[string]any)
	assert.Empty(t, data["recent"])
	assert.Empty(t, data["pending_approval"])
	assert.Equal(t, float64(0), data["overview"].(map[string]any)["total"])
}
