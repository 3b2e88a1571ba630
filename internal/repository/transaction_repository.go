package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aayushs-edu/stockapp-sub000/internal/apperrors"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// TransactionRepository provides data access methods for the stock_transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves transactions matching the filter, joined with the
// owning account's name, ordered by date then id ascending.
func (r *TransactionRepository) GetTransactions(filter model.TransactionFilter) ([]model.TransactionResponse, error) {
	query := `
		SELECT t.id, t.account_id, a.name, t.date, t.symbol, t.side,
		       t.quantity, t.price, t.trade_value, t.brokerage,
		       t.source, t.order_ref, t.remarks
		FROM stock_transaction t
		JOIN account a ON a.id = t.account_id
	`
	conditions := []string{}
	args := []any{}

	if len(filter.AccountIDs) > 0 {
		placeholders := make([]string, len(filter.AccountIDs))
		for i, id := range filter.AccountIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		conditions = append(conditions, fmt.Sprintf("t.account_id IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Symbol != "" {
		conditions = append(conditions, "t.symbol = ?")
		args = append(args, filter.Symbol)
	}
	if filter.Side != "" {
		conditions = append(conditions, "t.side = ?")
		args = append(args, filter.Side)
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, "t.date >= ?")
		args = append(args, filter.StartDate.Format("2006-01-02"))
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, "t.date <= ?")
		args = append(args, filter.EndDate.Format("2006-01-02"))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.date ASC, t.id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.TransactionResponse{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
func (r *TransactionRepository) GetTransaction(id int64) (model.TransactionResponse, error) {
	query := `
		SELECT t.id, t.account_id, a.name, t.date, t.symbol, t.side,
		       t.quantity, t.price, t.trade_value, t.brokerage,
		       t.source, t.order_ref, t.remarks
		FROM stock_transaction t
		JOIN account a ON a.id = t.account_id
		WHERE t.id = ?
	`
	row := r.db.QueryRow(query, id)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.TransactionResponse{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.TransactionResponse{}, err
	}
	return tx, nil
}

// InsertTransaction stores a new transaction and fills in its generated ID.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO stock_transaction
			(account_id, date, symbol, side, quantity, price, trade_value,
			 brokerage, source, order_ref, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		tx.AccountID,
		tx.Date.Format("2006-01-02"),
		tx.Symbol,
		tx.Side,
		tx.Quantity,
		tx.Price,
		tx.TradeValue,
		tx.Brokerage,
		tx.Source,
		tx.OrderRef,
		tx.Remarks,
		tx.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	tx.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated transaction id: %w", err)
	}
	return nil
}

// InsertTransactions stores a batch of transactions atomically. Either all
// rows land or none do. Generated IDs are filled in on success.
func (r *TransactionRepository) InsertTransactions(ctx context.Context, txs []*model.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO stock_transaction
			(account_id, date, symbol, side, quantity, price, trade_value,
			 brokerage, source, order_ref, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		result, err := stmt.ExecContext(ctx,
			tx.AccountID,
			tx.Date.Format("2006-01-02"),
			tx.Symbol,
			tx.Side,
			tx.Quantity,
			tx.Price,
			tx.TradeValue,
			tx.Brokerage,
			tx.Source,
			tx.OrderRef,
			tx.Remarks,
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction batch row: %w", err)
		}
		tx.ID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read generated transaction id: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction batch: %w", err)
	}
	return nil
}

// UpdateTransaction updates a transaction's mutable fields.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		UPDATE stock_transaction
		SET account_id = ?, date = ?, symbol = ?, side = ?, quantity = ?,
		    price = ?, trade_value = ?, brokerage = ?, source = ?,
		    order_ref = ?, remarks = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		tx.AccountID,
		tx.Date.Format("2006-01-02"),
		tx.Symbol,
		tx.Side,
		tx.Quantity,
		tx.Price,
		tx.TradeValue,
		tx.Brokerage,
		tx.Source,
		tx.OrderRef,
		tx.Remarks,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction by its ID.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock_transaction WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row rowScanner) (model.TransactionResponse, error) {
	var tx model.TransactionResponse
	var dateStr string
	var source, orderRef, remarks sql.NullString

	err := row.Scan(
		&tx.ID,
		&tx.AccountID,
		&tx.AccountName,
		&dateStr,
		&tx.Symbol,
		&tx.Side,
		&tx.Quantity,
		&tx.Price,
		&tx.TradeValue,
		&tx.Brokerage,
		&source,
		&orderRef,
		&remarks,
	)
	if err == sql.ErrNoRows {
		return model.TransactionResponse{}, err
	}
	if err != nil {
		return model.TransactionResponse{}, fmt.Errorf("failed to scan stock_transaction table results: %w", err)
	}

	if source.Valid {
		tx.Source = source.String
	}
	if orderRef.Valid {
		tx.OrderRef = orderRef.String
	}
	if remarks.Valid {
		tx.Remarks = remarks.String
	}
	tx.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.TransactionResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return tx, nil
}
