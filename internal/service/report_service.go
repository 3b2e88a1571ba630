package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
)

// ReportService derives the read-side views from the transaction log. Every
// report recomputes from raw transactions on each call; nothing derived is
// cached or persisted.
type ReportService struct {
	transactionService *TransactionService
}

// NewReportService creates a new ReportService with the provided service dependencies.
func NewReportService(transactionService *TransactionService) *ReportService {
	return &ReportService{
		transactionService: transactionService,
	}
}

// Holdings computes current open positions for the request's scope.
func (s *ReportService) Holdings(req engine.AggregationRequest) (engine.HoldingsView, error) {
	transactions, err := s.transactionService.loadForAggregation(req.Scope)
	if err != nil {
		return engine.HoldingsView{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return engine.ComputeHoldings(transactions, req.Scope)
}

// RealizedPnL computes realized profit/loss for the request's scope, with
// optional symbol, calendar-year, and ordering filters.
func (s *ReportService) RealizedPnL(req engine.AggregationRequest) (engine.PnLView, error) {
	transactions, err := s.transactionService.loadForAggregation(req.Scope)
	if err != nil {
		return engine.PnLView{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return engine.ComputeRealizedPnL(transactions, req)
}

// SummaryBook computes flat per-(symbol, account) buy/sell totals, with
// optional symbol and date-range filters.
func (s *ReportService) SummaryBook(req engine.AggregationRequest) (engine.SummaryBookView, error) {
	transactions, err := s.transactionService.loadForAggregation(req.Scope)
	if err != nil {
		return engine.SummaryBookView{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return engine.ComputeSummaryBook(transactions, req)
}

// OverviewReport bundles the three derived views for a single scope, for
// dashboard rendering in one round trip.
type OverviewReport struct {
	Holdings    engine.HoldingsView    `json:"holdings"`
	RealizedPnL engine.PnLView         `json:"realizedPnl"`
	SummaryBook engine.SummaryBookView `json:"summaryBook"`
}

// Overview computes all three views concurrently over one shared transaction
// load. The engine never mutates its input, so the goroutines can share the
// slice.
func (s *ReportService) Overview(ctx context.Context, req engine.AggregationRequest) (OverviewReport, error) {
	transactions, err := s.transactionService.loadForAggregation(req.Scope)
	if err != nil {
		return OverviewReport{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	var report OverviewReport
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		view, err := engine.ComputeHoldings(transactions, req.Scope)
		if err != nil {
			return err
		}
		report.Holdings = view
		return nil
	})
	g.Go(func() error {
		view, err := engine.ComputeRealizedPnL(transactions, req)
		if err != nil {
			return err
		}
		report.RealizedPnL = view
		return nil
	})
	g.Go(func() error {
		view, err := engine.ComputeSummaryBook(transactions, req)
		if err != nil {
			return err
		}
		report.SummaryBook = view
		return nil
	})

	if err := g.Wait(); err != nil {
		return OverviewReport{}, err
	}
	return report, nil
}
