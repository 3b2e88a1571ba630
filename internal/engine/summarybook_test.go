package engine_test

import (
	"testing"

	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// TestComputeSummaryBook_Totals verifies the flat per-row running totals
// and the Holding/Closed status flag.
func TestComputeSummaryBook_Totals(t *testing.T) {
	txs := []model.Transaction{
		tx(t, 1, "A1", "XYZ", model.SideBuy, "2024-01-01", 10, 100, 5),
		tx(t, 2, "A1", "XYZ", model.SideBuy, "2024-02-01", 5, 110, 3),
		tx(t, 3, "A1", "XYZ", model.SideSell, "2024-03-01", 8, 120, 4),
		tx(t, 4, "A1", "ABC", model.SideBuy, "2024-01-10", 4, 50, 2),
		tx(t, 5, "A1", "ABC", model.SideSell, "2024-02-10", 4, 60, 2),
	}

	view, err := engine.ComputeSummaryBook(txs, engine.AggregationRequest{Scope: engine.ScopeAll()})
	if err != nil {
		t.Fatalf("ComputeSummaryBook() returned unexpected error: %v", err)
	}
	if len(view.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(view.Rows))
	}

	// Rows sorted by symbol: ABC then XYZ.
	abc, xyz := view.Rows[0], view.Rows[1]

	if abc.Symbol != "ABC" || abc.Status != engine.StatusClosed || abc.NetQuantity != 0 {
		t.Errorf("Expected ABC closed with net 0, got %+v", abc)
	}
	if xyz.Status != engine.StatusHolding || xyz.NetQuantity != 7 {
		t.Errorf("Expected XYZ holding with net 7, got status %s net %v", xyz.Status, xyz.NetQuantity)
	}
	if xyz.BuyQuantity != 15 || xyz.BuyValue != 1550 {
		t.Errorf("Expected XYZ buys 15/1550, got %v/%v", xyz.BuyQuantity, xyz.BuyValue)
	}
	if xyz.SellQuantity != 8 || xyz.SellValue != 960 {
		t.Errorf("Expected XYZ sells 8/960, got %v/%v", xyz.SellQuantity, xyz.SellValue)
	}
	if xyz.Brokerage != 12 {
		t.Errorf("Expected XYZ brokerage 12, got %v", xyz.Brokerage)
	}

	if view.TotalBuyValue != engine.AddRound(abc.BuyValue, xyz.BuyValue) {
		t.Errorf("Total buy value mismatch: %v", view.TotalBuyValue)
	}
}

// TestComputeSummaryBook_OpenBuysFIFO verifies the remaining-transaction
// rows come from the FIFO-only variant: partially consumed oldest buy
// first, no intraday override.
func TestComputeSummaryBook_OpenBuysFIFO(t *testing.T) {
	txs := []model.Transaction{
		tx(t, 1, "A1", "XYZ", model.SideBuy, "2024-01-01", 10, 100, 0),
		tx(t, 2, "A1", "XYZ", model.SideBuy, "2024-01-03", 10, 105, 0),
		tx(t, 3, "A1", "XYZ", model.SideSell, "2024-01-03", 12, 110, 0),
	}

	view, err := engine.ComputeSummaryBook(txs, engine.AggregationRequest{Scope: engine.ScopeAll()})
	if err != nil {
		t.Fatalf("ComputeSummaryBook() returned unexpected error: %v", err)
	}

	open := view.Rows[0].OpenBuys
	if len(open) != 1 {
		t.Fatalf("Expected 1 open buy row, got %d", len(open))
	}
	// Pure FIFO consumes all of buy 1 and 2 units of buy 2, regardless of
	// the sell sharing a day with buy 2.
	if open[0].BuyID != 2 || open[0].RemainingQuantity != 8 {
		t.Errorf("Expected buy 2 open with 8 remaining, got buy %d remaining %v",
			open[0].BuyID, open[0].RemainingQuantity)
	}
}

// TestComputeSummaryBook_DateRange verifies the optional date-range
// pre-filter drops transactions before grouping.
func TestComputeSummaryBook_DateRange(t *testing.T) {
	txs := []model.Transaction{
		tx(t, 1, "A1", "XYZ", model.SideBuy, "2024-01-01", 10, 100, 0),
		tx(t, 2, "A1", "XYZ", model.SideBuy, "2024-06-01", 5, 110, 0),
		tx(t, 3, "A1", "XYZ", model.SideSell, "2024-12-01", 5, 120, 0),
	}

	view, err := engine.ComputeSummaryBook(txs, engine.AggregationRequest{
		Scope:     engine.ScopeAll(),
		StartDate: date(t, "2024-05-01"),
		EndDate:   date(t, "2024-07-01"),
	})
	if err != nil {
		t.Fatalf("ComputeSummaryBook() returned unexpected error: %v", err)
	}

	if len(view.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(view.Rows))
	}
	row := view.Rows[0]
	if row.BuyQuantity != 5 || row.SellQuantity != 0 {
		t.Errorf("Expected only the June buy in range, got buys %v sells %v", row.BuyQuantity, row.SellQuantity)
	}
}

// TestComputeSummaryBook_EmptyScope verifies an empty scope produces an
// empty book.
func TestComputeSummaryBook_EmptyScope(t *testing.T) {
	txs := []model.Transaction{
		tx(t, 1, "A1", "XYZ", model.SideBuy, "2024-01-01", 10, 100, 0),
	}

	view, err := engine.ComputeSummaryBook(txs, engine.AggregationRequest{Scope: engine.ScopeAccounts("A9")})
	if err != nil {
		t.Fatalf("ComputeSummaryBook() returned unexpected error: %v", err)
	}
	if len(view.Rows) != 0 {
		t.Errorf("Expected empty book, got %+v", view.Rows)
	}
}
