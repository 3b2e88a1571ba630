package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
	"github.com/aayushs-edu/stockapp-sub000/internal/repository"
)

// SnapshotService records daily per-account portfolio totals. Snapshots are
// a historical record only; live views never read them.
type SnapshotService struct {
	snapshotRepo       *repository.SnapshotRepository
	accountRepo        *repository.AccountRepository
	transactionService *TransactionService
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	accountRepo *repository.AccountRepository,
	transactionService *TransactionService,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:       snapshotRepo,
		accountRepo:        accountRepo,
		transactionService: transactionService,
	}
}

// GetSnapshots retrieves an account's snapshot history ordered by date.
func (s *SnapshotService) GetSnapshots(accountID string) ([]model.PortfolioSnapshot, error) {
	if _, err := s.accountRepo.GetAccountOnID(accountID); err != nil {
		return nil, err
	}
	return s.snapshotRepo.GetSnapshots(accountID)
}

// SnapshotAll computes and stores today's snapshot for every active account.
// Re-running on the same day replaces that day's snapshots.
func (s *SnapshotService) SnapshotAll(ctx context.Context) error {
	accounts, err := s.accountRepo.GetAccounts(model.AccountFilter{ActiveOnly: true})
	if err != nil {
		return fmt.Errorf("failed to load accounts for snapshot: %w", err)
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for _, account := range accounts {
		if err := s.snapshotAccount(ctx, account.ID, today, now); err != nil {
			return fmt.Errorf("failed to snapshot account %s: %w", account.ID, err)
		}
	}
	return nil
}

// RunScheduled is the cron entry point. Errors are logged, not returned;
// a failed nightly run must not stop the scheduler.
func (s *SnapshotService) RunScheduled() {
	if err := s.SnapshotAll(context.Background()); err != nil {
		log.Printf("scheduled snapshot failed: %v", err)
		return
	}
	log.Println("scheduled snapshot completed")
}

func (s *SnapshotService) snapshotAccount(ctx context.Context, accountID string, date, calculatedAt time.Time) error {
	scope := engine.ScopeAccounts(accountID)
	transactions, err := s.transactionService.loadForAggregation(scope)
	if err != nil {
		return err
	}

	holdings, err := engine.ComputeHoldings(transactions, scope)
	if err != nil {
		return err
	}
	pnl, err := engine.ComputeRealizedPnL(transactions, engine.AggregationRequest{Scope: scope})
	if err != nil {
		return err
	}
	summary, err := engine.ComputeSummaryBook(transactions, engine.AggregationRequest{Scope: scope})
	if err != nil {
		return err
	}

	snapshot := &model.PortfolioSnapshot{
		ID:             uuid.New().String(),
		AccountID:      accountID,
		Date:           date,
		Investment:     holdings.TotalInvestment,
		RealizedPnL:    pnl.Totals.ProfitLoss,
		TotalBrokerage: summary.TotalBrokerage,
		CalculatedAt:   calculatedAt,
	}
	return s.snapshotRepo.UpsertSnapshot(ctx, snapshot)
}
