package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aayushs-edu/stockapp-sub000/internal/api/request"
	"github.com/aayushs-edu/stockapp-sub000/internal/apperrors"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
	"github.com/aayushs-edu/stockapp-sub000/internal/testutil"
)

// TestTransactionService_CreateTransaction tests transaction creation.
//
// WHY: Every derived view is computed from stored transactions, so creation
// must normalize symbols and derive the trade value itself rather than trust
// the caller.
func TestTransactionService_CreateTransaction(t *testing.T) {
	t.Run("normalizes symbol and derives trade value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		account := testutil.CreateAccount(t, db, "Main")

		tx, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			AccountID: account.ID,
			Date:      "2024-03-01",
			Symbol:    " infy ",
			Side:      "BUY",
			Quantity:  10,
			Price:     101.5,
			Brokerage: 12.34,
		})
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		if tx.ID == 0 {
			t.Error("Expected generated transaction ID, got 0")
		}
		if tx.Symbol != "INFY" {
			t.Errorf("Expected symbol INFY, got %q", tx.Symbol)
		}
		if tx.Side != model.SideBuy {
			t.Errorf("Expected side buy, got %q", tx.Side)
		}
		if tx.TradeValue != 1015.0 {
			t.Errorf("Expected trade value 1015.0, got %v", tx.TradeValue)
		}

		testutil.AssertRowCount(t, db, "stock_transaction", 1)
	})

	t.Run("rejects unknown account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			AccountID: testutil.MakeID(),
			Date:      "2024-03-01",
			Symbol:    "INFY",
			Side:      "buy",
			Quantity:  10,
			Price:     100,
		})
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("Expected ErrAccountNotFound, got %v", err)
		}

		testutil.AssertRowCount(t, db, "stock_transaction", 0)
	})
}

// TestTransactionService_UpdateTransaction tests partial updates.
//
// WHY: Updates must rederive the trade value when quantity or price change;
// a stale stored trade value would poison the summary book.
func TestTransactionService_UpdateTransaction(t *testing.T) {
	t.Run("rederives trade value on quantity change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		account := testutil.CreateAccount(t, db, "Main")
		created := testutil.NewTransaction(account.ID).Buy(10, 100).Build(t, db)

		newQty := 25.0
		updated, err := svc.UpdateTransaction(context.Background(), created.ID, request.UpdateTransactionRequest{
			Quantity: &newQty,
		})
		if err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}

		if updated.Quantity != 25 {
			t.Errorf("Expected quantity 25, got %v", updated.Quantity)
		}
		if updated.TradeValue != 2500.0 {
			t.Errorf("Expected trade value 2500.0, got %v", updated.TradeValue)
		}

		stored, err := svc.GetTransaction(created.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if stored.TradeValue != 2500.0 {
			t.Errorf("Expected stored trade value 2500.0, got %v", stored.TradeValue)
		}
	})

	t.Run("returns not found for missing transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		newQty := 5.0
		_, err := svc.UpdateTransaction(context.Background(), 9999, request.UpdateTransactionRequest{
			Quantity: &newQty,
		})
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

// TestTransactionService_GetTransactions tests filtered retrieval.
func TestTransactionService_GetTransactions(t *testing.T) {
	t.Run("filters by account and symbol and orders by date then id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		a1 := testutil.CreateAccount(t, db, "One")
		a2 := testutil.CreateAccount(t, db, "Two")

		testutil.NewTransaction(a1.ID).WithSymbol("INFY").OnDate("2024-02-01").Buy(5, 100).Build(t, db)
		testutil.NewTransaction(a1.ID).WithSymbol("TCS").OnDate("2024-01-01").Buy(5, 100).Build(t, db)
		testutil.NewTransaction(a2.ID).WithSymbol("INFY").OnDate("2024-01-15").Buy(5, 100).Build(t, db)

		got, err := svc.GetTransactions(model.TransactionFilter{
			AccountIDs: []string{a1.ID},
		})
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(got))
		}
		if got[0].Symbol != "TCS" || got[1].Symbol != "INFY" {
			t.Errorf("Expected date-ascending order [TCS INFY], got [%s %s]", got[0].Symbol, got[1].Symbol)
		}
		if got[0].AccountName != a1.Name {
			t.Errorf("Expected account name %q, got %q", a1.Name, got[0].AccountName)
		}

		infy, err := svc.GetTransactions(model.TransactionFilter{Symbol: "INFY"})
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(infy) != 2 {
			t.Errorf("Expected 2 INFY transactions across accounts, got %d", len(infy))
		}
	})
}

// TestTransactionService_DeleteTransaction tests removal.
func TestTransactionService_DeleteTransaction(t *testing.T) {
	t.Run("deletes existing transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		account := testutil.CreateAccount(t, db, "Main")
		created := testutil.NewTransaction(account.ID).Build(t, db)

		if err := svc.DeleteTransaction(context.Background(), created.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "stock_transaction", 0)
	})

	t.Run("returns not found for missing transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		err := svc.DeleteTransaction(context.Background(), 42)
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}
