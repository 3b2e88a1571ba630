package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/aayushs-edu/stockapp-sub000/internal/model"
	"github.com/aayushs-edu/stockapp-sub000/internal/testutil"
)

func setupTransactionHandler(t *testing.T) (*TransactionHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewTransactionHandler(
		testutil.NewTestTransactionService(t, db),
		testutil.NewTestImpExpService(t, db),
	), db
}

func newRequestWithBodyAndID(method, path string, id int64, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", fmt.Sprintf("%d", id))
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestTransactionHandler_Transactions(t *testing.T) {
	t.Run("filters by symbol", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		account := testutil.CreateAccount(t, db, "Main")
		testutil.NewTransaction(account.ID).WithSymbol("INFY").Build(t, db)
		testutil.NewTransaction(account.ID).WithSymbol("TCS").Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"symbol": "infy"})
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var rows []model.TransactionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&rows)

		if len(rows) != 1 || rows[0].Symbol != "INFY" {
			t.Errorf("Expected 1 INFY row, got %+v", rows)
		}
	})

	t.Run("rejects invalid date filter", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"start_date": "March 1st"})
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"start_date": "2024-06-01", "end_date": "2024-01-01"})
		w := httptest.NewRecorder()

		handler.Transactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("creates transaction from valid request", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		account := testutil.CreateAccount(t, db, "Main")

		body := fmt.Sprintf(`{
			"accountId": %q,
			"date": "2024-03-01",
			"symbol": "infy",
			"side": "buy",
			"quantity": 10,
			"price": 101,
			"brokerage": 12
		}`, account.ID)
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var tx model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&tx)

		if tx.Symbol != "INFY" {
			t.Errorf("Expected uppercased symbol, got %q", tx.Symbol)
		}
		if tx.TradeValue != 1010.0 {
			t.Errorf("Expected derived trade value 1010.0, got %v", tx.TradeValue)
		}
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		account := testutil.CreateAccount(t, db, "Main")

		body := fmt.Sprintf(`{
			"accountId": %q,
			"date": "2024-03-01",
			"symbol": "INFY",
			"side": "buy",
			"quantity": -5,
			"price": 101
		}`, account.ID)
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "stock_transaction", 0)
	})

	t.Run("returns 404 for unknown account", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		body := fmt.Sprintf(`{
			"accountId": %q,
			"date": "2024-03-01",
			"symbol": "INFY",
			"side": "buy",
			"quantity": 10,
			"price": 101
		}`, testutil.MakeID())
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("updates a single field", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		account := testutil.CreateAccount(t, db, "Main")
		created := testutil.NewTransaction(account.ID).Buy(10, 100).Build(t, db)

		req := newRequestWithBodyAndID(http.MethodPut, "/api/transaction/1", created.ID,
			strings.NewReader(`{"price": 110}`))
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var tx model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&tx)

		if tx.Price != 110 {
			t.Errorf("Expected price 110, got %v", tx.Price)
		}
		if tx.TradeValue != 1100.0 {
			t.Errorf("Expected rederived trade value 1100.0, got %v", tx.TradeValue)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := newRequestWithBodyAndID(http.MethodPut, "/api/transaction/999", 999,
			strings.NewReader(`{"price": 110}`))
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	handler, db := setupTransactionHandler(t)
	account := testutil.CreateAccount(t, db, "Main")
	created := testutil.NewTransaction(account.ID).Build(t, db)

	req := newRequestWithBodyAndID(http.MethodDelete, "/api/transaction/1", created.ID, nil)
	w := httptest.NewRecorder()

	handler.DeleteTransaction(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
	}
	testutil.AssertRowCount(t, db, "stock_transaction", 0)
}

func TestTransactionHandler_ImportCSV(t *testing.T) {
	t.Run("imports file into account", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		account := testutil.CreateAccount(t, db, "Main")

		csv := "date,symbol,side,quantity,price,brokerage,source,order_ref,remarks\n" +
			"2024-01-10,INFY,buy,10,101,12,,,\n"
		req := newRequestWithBodyAndUUID(http.MethodPost, "/api/transaction/import/"+account.ID,
			account.ID, strings.NewReader(csv))
		w := httptest.NewRecorder()

		handler.ImportCSV(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var result map[string]int
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if result["imported"] != 1 {
			t.Errorf("Expected 1 imported row, got %d", result["imported"])
		}
		testutil.AssertRowCount(t, db, "stock_transaction", 1)
	})

	t.Run("returns 400 for malformed CSV", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		account := testutil.CreateAccount(t, db, "Main")

		req := newRequestWithBodyAndUUID(http.MethodPost, "/api/transaction/import/"+account.ID,
			account.ID, strings.NewReader("bogus,headers\n1,2\n"))
		w := httptest.NewRecorder()

		handler.ImportCSV(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "stock_transaction", 0)
	})
}

func TestTransactionHandler_ExportCSV(t *testing.T) {
	handler, db := setupTransactionHandler(t)
	account := testutil.CreateAccount(t, db, "Main")
	testutil.NewTransaction(account.ID).WithSymbol("INFY").Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/transaction/export", nil)
	w := httptest.NewRecorder()

	handler.ExportCSV(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected text/csv content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "INFY") {
		t.Errorf("Expected exported CSV to contain INFY, got %s", w.Body.String())
	}
}
