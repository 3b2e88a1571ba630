package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// SnapshotRepository provides data access methods for the portfolio_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot stores a snapshot for an account and date, replacing any
// earlier snapshot taken the same day.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot *model.PortfolioSnapshot) error {
	query := `
		INSERT INTO portfolio_snapshot
			(id, account_id, date, investment, realized_pnl, total_brokerage, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, date) DO UPDATE SET
			investment = excluded.investment,
			realized_pnl = excluded.realized_pnl,
			total_brokerage = excluded.total_brokerage,
			calculated_at = excluded.calculated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.AccountID,
		snapshot.Date.Format("2006-01-02"),
		snapshot.Investment,
		snapshot.RealizedPnL,
		snapshot.TotalBrokerage,
		snapshot.CalculatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

// GetSnapshots retrieves an account's snapshots ordered by date ascending.
func (r *SnapshotRepository) GetSnapshots(accountID string) ([]model.PortfolioSnapshot, error) {
	query := `
		SELECT id, account_id, date, investment, realized_pnl, total_brokerage, calculated_at
		FROM portfolio_snapshot
		WHERE account_id = ?
		ORDER BY date ASC
	`
	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.PortfolioSnapshot{}
	for rows.Next() {
		var s model.PortfolioSnapshot
		var dateStr, calculatedAtStr string

		err := rows.Scan(&s.ID, &s.AccountID, &dateStr, &s.Investment, &s.RealizedPnL, &s.TotalBrokerage, &calculatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_snapshot table results: %w", err)
		}

		s.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		s.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		snapshots = append(snapshots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_snapshot table: %w", err)
	}

	return snapshots, nil
}
