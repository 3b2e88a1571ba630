package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults
//	account := testutil.NewAccount().Build(t, db)
//
//	// Customized account
//	account := testutil.NewAccount().
//	    WithName("Zerodha Main").
//	    WithBroker("Zerodha").
//	    Inactive().
//	    Build(t, db)
type AccountBuilder struct {
	ID       string
	Name     string
	Broker   string
	IsActive bool
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:       MakeID(),
		Name:     MakeAccountName("Test Account"),
		Broker:   "Test Broker",
		IsActive: true,
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithBroker sets a custom broker.
func (b *AccountBuilder) WithBroker(broker string) *AccountBuilder {
	b.Broker = broker
	return b
}

// Inactive marks the account as inactive.
func (b *AccountBuilder) Inactive() *AccountBuilder {
	b.IsActive = false
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	query := `
		INSERT INTO account (id, name, broker, is_active)
		VALUES (?, ?, ?, ?)
	`
	_, err := db.Exec(query, b.ID, b.Name, b.Broker, b.IsActive)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:       b.ID,
		Name:     b.Name,
		Broker:   b.Broker,
		IsActive: b.IsActive,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	buy := testutil.NewTransaction(account.ID).
//	    WithSymbol("INFY").
//	    OnDate("2024-03-01").
//	    Buy(10, 101.0).
//	    Build(t, db)
type TransactionBuilder struct {
	AccountID string
	Date      string
	Symbol    string
	Side      string
	Quantity  float64
	Price     float64
	Brokerage float64
	Source    string
	OrderRef  string
	Remarks   string
}

// NewTransaction creates a TransactionBuilder with sensible defaults for the
// given account.
func NewTransaction(accountID string) *TransactionBuilder {
	return &TransactionBuilder{
		AccountID: accountID,
		Date:      "2024-01-15",
		Symbol:    "TEST",
		Side:      model.SideBuy,
		Quantity:  10,
		Price:     100,
	}
}

// WithSymbol sets a custom symbol.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// OnDate sets the trade date (YYYY-MM-DD).
func (b *TransactionBuilder) OnDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// Buy makes the transaction a buy of the given quantity and price.
func (b *TransactionBuilder) Buy(quantity, price float64) *TransactionBuilder {
	b.Side = model.SideBuy
	b.Quantity = quantity
	b.Price = price
	return b
}

// Sell makes the transaction a sell of the given quantity and price.
func (b *TransactionBuilder) Sell(quantity, price float64) *TransactionBuilder {
	b.Side = model.SideSell
	b.Quantity = quantity
	b.Price = price
	return b
}

// WithBrokerage sets the brokerage charge.
func (b *TransactionBuilder) WithBrokerage(brokerage float64) *TransactionBuilder {
	b.Brokerage = brokerage
	return b
}

// WithSource sets the import source tag.
func (b *TransactionBuilder) WithSource(source string) *TransactionBuilder {
	b.Source = source
	return b
}

// WithRemarks sets free-form remarks.
func (b *TransactionBuilder) WithRemarks(remarks string) *TransactionBuilder {
	b.Remarks = remarks
	return b
}

// Build creates the transaction in the database and returns it with the
// generated ID filled in.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test transaction date %q: %v", b.Date, err)
	}
	tradeValue := engine.Mul(b.Quantity, b.Price)

	query := `
		INSERT INTO stock_transaction
			(account_id, date, symbol, side, quantity, price, trade_value,
			 brokerage, source, order_ref, remarks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := db.Exec(query,
		b.AccountID, b.Date, b.Symbol, b.Side, b.Quantity, b.Price,
		tradeValue, b.Brokerage, b.Source, b.OrderRef, b.Remarks,
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read test transaction id: %v", err)
	}

	return model.Transaction{
		ID:         id,
		AccountID:  b.AccountID,
		Date:       date,
		Symbol:     b.Symbol,
		Side:       b.Side,
		Quantity:   b.Quantity,
		Price:      b.Price,
		TradeValue: tradeValue,
		Brokerage:  b.Brokerage,
		Source:     b.Source,
		OrderRef:   b.OrderRef,
		Remarks:    b.Remarks,
	}
}

// Convenience functions

// CreateAccount creates an account with the given name and default values.
func CreateAccount(t *testing.T, db *sql.DB, name string) model.Account {
	t.Helper()
	return NewAccount().WithName(name).Build(t, db)
}
