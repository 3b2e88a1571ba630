package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aayushs-edu/stockapp-sub000/internal/apperrors"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccounts retrieves accounts ordered by name. When filter.ActiveOnly is
// set, inactive accounts are excluded.
func (r *AccountRepository) GetAccounts(filter model.AccountFilter) ([]model.Account, error) {
	query := `
		SELECT id, name, broker, is_active, created_at
		FROM account
	`
	if filter.ActiveOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetAccountOnID retrieves a single account by its ID.
func (r *AccountRepository) GetAccountOnID(accountID string) (model.Account, error) {
	query := `
		SELECT id, name, broker, is_active, created_at
		FROM account
		WHERE id = ?
	`
	row := r.db.QueryRow(query, accountID)
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, err
	}
	return account, nil
}

// InsertAccount stores a new account.
func (r *AccountRepository) InsertAccount(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO account (id, name, broker, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Broker,
		account.IsActive,
		account.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// UpdateAccount updates an existing account's name, broker, and active flag.
func (r *AccountRepository) UpdateAccount(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE account
		SET name = ?, broker = ?, is_active = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, account.Name, account.Broker, account.IsActive, account.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// DeleteAccount removes an account. Accounts with transactions cannot be
// deleted; the transaction log is the source of truth for all derived views.
func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stock_transaction WHERE account_id = ?`, accountID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count account transactions: %w", err)
	}
	if count > 0 {
		return apperrors.ErrAccountInUse
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM account WHERE id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (model.Account, error) {
	var account model.Account
	var broker sql.NullString
	var createdAtStr string

	err := row.Scan(&account.ID, &account.Name, &broker, &account.IsActive, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.Account{}, err
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to scan account table results: %w", err)
	}

	if broker.Valid {
		account.Broker = broker.String
	}
	account.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return account, nil
}
