// Package analytics wraps the read-only analytics endpoints and assembles
// the dashboard overview by fanning the reads out concurrently. Each source
// fails independently: a dead endpoint blanks its own section instead of
// taking the whole view down.
package analytics

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/anudeepmamidala/Banking-System/internal/client/api"
	"github.com/anudeepmamidala/Banking-System/internal/shared/models"
)

type Service struct {
	api *api.Client
}

func NewService(apiClient *api.Client) *Service {
	return &Service{api: apiClient}
}

func (s *Service) DashboardSummary(ctx context.Context) (models.DashboardSummary, error) {
	var out models.DashboardSummary
	if err := s.api.Get(ctx, "/analytics/dashboard-summary", nil, &out); err != nil {
		return models.DashboardSummary{}, err
	}
	return out, nil
}

func (s *Service) SpendingByCategory(ctx context.Context) ([]models.CategorySpending, error) {
	var out []models.CategorySpending
	if err := s.api.Get(ctx, "/analytics/spending-by-category", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MonthlyTrends returns per-month income/expense rows covering the last
// months months; months <= 0 asks for the service default of a year.
func (s *Service) MonthlyTrends(ctx context.Context, months int) ([]models.MonthlySummary, error) {
	if months <= 0 {
		months = 12
	}
	q := url.Values{}
	q.Set("months", strconv.Itoa(months))
	var out []models.MonthlySummary
	if err := s.api.Get(ctx, "/analytics/monthly-summary", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) AccountSummary(ctx context.Context) ([]models.AccountSummary, error) {
	var out []models.AccountSummary
	if err := s.api.Get(ctx, "/analytics/account-summary", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Overview is the aggregated dashboard view. A nil Totals or empty slice
// paired with a non-nil entry in Errs means that section degraded.
type Overview struct {
	Totals    *models.DashboardSummary
	Breakdown []models.CategorySpending
	Trends    []models.MonthlySummary
	Summaries []models.AccountSummary

	// Errs holds the per-section failures keyed by section name
	// (totals, breakdown, trends, summaries).
	Errs map[string]error `json:"-"`
}

// Overview fans out the four analytics reads, waits for all of them to
// settle and aggregates whatever succeeded. It never returns an error;
// partial failure shows up in Errs.
func (s *Service) Overview(ctx context.Context, months int) Overview {
	ov := Overview{Errs: map[string]error{}}
	var mu sync.Mutex
	var wg sync.WaitGroup

	section := func(name string, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				mu.Lock()
				ov.Errs[name] = err
				mu.Unlock()
			}
		}()
	}

	section("totals", func() error {
		totals, err := s.DashboardSummary(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		ov.Totals = &totals
		mu.Unlock()
		return nil
	})
	section("breakdown", func() error {
		rows, err := s.SpendingByCategory(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		ov.Breakdown = rows
		mu.Unlock()
		return nil
	})
	section("trends", func() error {
		rows, err := s.MonthlyTrends(ctx, months)
		if err != nil {
			return err
		}
		mu.Lock()
		ov.Trends = rows
		mu.Unlock()
		return nil
	})
	section("summaries", func() error {
		rows, err := s.AccountSummary(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		ov.Summaries = rows
		mu.Unlock()
		return nil
	})

	wg.Wait()
	return ov
}
