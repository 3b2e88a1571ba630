package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aayushs-edu/stockapp-sub000/internal/apperrors"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
	"github.com/aayushs-edu/stockapp-sub000/internal/testutil"
)

const validCSV = `date,symbol,side,quantity,price,brokerage,source,order_ref,remarks
2024-01-10,infy,buy,10,101,12,broker-a,ORD1,first lot
2024-02-15,INFY,sell,4,120,,broker-a,ORD2,
2024-02-20,tcs,buy,2,3000,20,,,bulk entry
`

// TestImpExpService_ImportCSV tests CSV bulk import.
//
// WHY: Import is all-or-nothing; one bad row must leave the database
// untouched so a re-upload of the fixed file cannot double-import.
func TestImpExpService_ImportCSV(t *testing.T) {
	t.Run("imports valid file and normalizes symbols", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImpExpService(t, db)
		account := testutil.CreateAccount(t, db, "Main")

		count, err := svc.ImportCSV(context.Background(), account.ID, strings.NewReader(validCSV))
		if err != nil {
			t.Fatalf("ImportCSV() returned unexpected error: %v", err)
		}
		if count != 3 {
			t.Errorf("Expected 3 imported rows, got %d", count)
		}
		testutil.AssertRowCount(t, db, "stock_transaction", 3)

		txSvc := testutil.NewTestTransactionService(t, db)
		rows, err := txSvc.GetTransactions(model.TransactionFilter{Symbol: "INFY"})
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 INFY rows after normalization, got %d", len(rows))
		}
		if rows[0].TradeValue != 1010.0 {
			t.Errorf("Expected derived trade value 1010.0, got %v", rows[0].TradeValue)
		}
	})

	t.Run("rejects wrong headers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImpExpService(t, db)
		account := testutil.CreateAccount(t, db, "Main")

		csv := "date,ticker,side,quantity,price,brokerage,source,order_ref,remarks\n"
		_, err := svc.ImportCSV(context.Background(), account.ID, strings.NewReader(csv))
		if !errors.Is(err, apperrors.ErrInvalidCSVHeaders) {
			t.Errorf("Expected ErrInvalidCSVHeaders, got %v", err)
		}
	})

	t.Run("one bad row rejects the whole file", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImpExpService(t, db)
		account := testutil.CreateAccount(t, db, "Main")

		csv := `date,symbol,side,quantity,price,brokerage,source,order_ref,remarks
2024-01-10,INFY,buy,10,101,12,,,
2024-02-15,INFY,hold,4,120,0,,,
`
		_, err := svc.ImportCSV(context.Background(), account.ID, strings.NewReader(csv))
		if err == nil {
			t.Fatal("Expected error for invalid side, got nil")
		}
		if !strings.Contains(err.Error(), "line 3") {
			t.Errorf("Expected error to name line 3, got %v", err)
		}
		testutil.AssertRowCount(t, db, "stock_transaction", 0)
	})

	t.Run("rejects unknown account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImpExpService(t, db)

		_, err := svc.ImportCSV(context.Background(), testutil.MakeID(), strings.NewReader(validCSV))
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("Expected ErrAccountNotFound, got %v", err)
		}
	})
}

// TestImpExpService_ExportCSV tests CSV export.
func TestImpExpService_ExportCSV(t *testing.T) {
	t.Run("writes header and filtered rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImpExpService(t, db)
		account := testutil.CreateAccount(t, db, "Main")

		testutil.NewTransaction(account.ID).WithSymbol("INFY").OnDate("2024-01-10").Buy(10, 101).Build(t, db)
		testutil.NewTransaction(account.ID).WithSymbol("TCS").OnDate("2024-02-01").Buy(2, 3000).Build(t, db)

		var out strings.Builder
		err := svc.ExportCSV(&out, model.TransactionFilter{Symbol: "INFY"})
		if err != nil {
			t.Fatalf("ExportCSV() returned unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("Expected header plus 1 row, got %d lines", len(lines))
		}
		if !strings.HasPrefix(lines[0], "id,account_id,account_name,date,symbol") {
			t.Errorf("Unexpected header: %s", lines[0])
		}
		if !strings.Contains(lines[1], "INFY") || strings.Contains(lines[1], "TCS") {
			t.Errorf("Expected only INFY row, got %s", lines[1])
		}
	})
}
