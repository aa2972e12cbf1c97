package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"rugstore/internal/core"
	"rugstore/internal/storage"
)

// ReportService owns the read side: the jobs table view, customer search
// and the per-due-date income/volume trend.
type ReportService struct {
	storage *storage.SQLiteRepository
}

func NewReportService(storage *storage.SQLiteRepository) *ReportService {
	return &ReportService{storage: storage}
}

// ListJobs returns every job with its customer joined, in ascending job-id
// order, ready for table display.
func (s *ReportService) ListJobs(ctx context.Context) ([]core.Job, error) {
	return s.storage.ListJobs(ctx)
}

// SearchByCustomerName returns the jobs of every customer whose name
// contains the substring, case-insensitively, in ascending job-id order.
// The empty substring matches all customers; no matching customer yields an
// empty result.
func (s *ReportService) SearchByCustomerName(ctx context.Context, substring string) ([]core.Job, error) {
	customers, err := s.storage.SearchCustomersByName(ctx, strings.TrimSpace(substring))
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	if len(customers) == 0 {
		return []core.Job{}, nil
	}

	ids := make([]int64, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}

	jobs, err := s.storage.ListJobsForCustomers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list jobs for matched customers: %w", err)
	}
	return jobs, nil
}

// AggregateByDueDate groups all jobs by their exact due date and computes
// total income and job count per distinct date. Dates without jobs do not
// appear.
func (s *ReportService) AggregateByDueDate(ctx context.Context) (core.DueDateTrend, error) {
	jobs, err := s.storage.ListJobs(ctx)
	if err != nil {
		return core.DueDateTrend{}, fmt.Errorf("list jobs for trend: %w", err)
	}

	trend := core.DueDateTrend{ByDate: make(map[core.Date]core.DateTotals)}
	for _, job := range jobs {
		totals := trend.ByDate[job.DueDate]
		totals.Income.Cents += job.Price.Cents
		totals.Count++
		trend.ByDate[job.DueDate] = totals
	}

	for date := range trend.ByDate {
		trend.Dates = append(trend.Dates, date)
	}
	sort.Slice(trend.Dates, func(i, j int) bool {
		return trend.Dates[i].Before(trend.Dates[j])
	})

	trend.Incomes = make([]core.Money, len(trend.Dates))
	trend.Counts = make([]int, len(trend.Dates))
	for i, date := range trend.Dates {
		totals := trend.ByDate[date]
		trend.Incomes[i] = totals.Income
		trend.Counts[i] = totals.Count
	}

	return trend, nil
}
