package engine

import (
	"sort"

	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// Net status values for summary book rows.
const (
	StatusHolding = "Holding"
	StatusClosed  = "Closed"
)

// SummaryRow is one (symbol, account) line of the overview book: flat buy
// and sell running totals with no profit/loss matching, plus the FIFO
// remaining buy rows for display.
type SummaryRow struct {
	Symbol       string       `json:"symbol"`
	AccountID    string       `json:"accountId"`
	BuyQuantity  float64      `json:"buyQuantity"`
	BuyValue     float64      `json:"buyValue"`
	SellQuantity float64      `json:"sellQuantity"`
	SellValue    float64      `json:"sellValue"`
	Brokerage    float64      `json:"brokerage"`
	NetQuantity  float64      `json:"netQuantity"`
	Status       string       `json:"status"`
	OpenBuys     []HoldingLot `json:"openBuys,omitempty"`
}

// SummaryBookView is the overview book for a scope.
type SummaryBookView struct {
	Rows           []SummaryRow `json:"rows"`
	TotalBuyValue  float64      `json:"totalBuyValue"`
	TotalSellValue float64      `json:"totalSellValue"`
	TotalBrokerage float64      `json:"totalBrokerage"`
}

// ComputeSummaryBook derives flat per-(symbol, account) buy/sell totals.
// The request's date range, when set, pre-filters transactions before
// grouping. Unlike the holdings view, closed rows are kept and flagged.
func ComputeSummaryBook(transactions []model.Transaction, req AggregationRequest) (SummaryBookView, error) {
	filtered := filterDateRange(filterScope(transactions, req.Scope, req.Symbol), req.StartDate, req.EndDate)
	grouped := groupBySymbolAccount(filtered)

	var view SummaryBookView
	for _, symbol := range sortedKeys(grouped) {
		for _, accountID := range sortedKeys(grouped[symbol]) {
			row, err := summaryRow(symbol, accountID, grouped[symbol][accountID])
			if err != nil {
				return SummaryBookView{}, err
			}
			view.TotalBuyValue = AddRound(view.TotalBuyValue, row.BuyValue)
			view.TotalSellValue = AddRound(view.TotalSellValue, row.SellValue)
			view.TotalBrokerage = AddRound(view.TotalBrokerage, row.Brokerage)
			view.Rows = append(view.Rows, row)
		}
	}
	return view, nil
}

func summaryRow(symbol, accountID string, transactions []model.Transaction) (SummaryRow, error) {
	row := SummaryRow{Symbol: symbol, AccountID: accountID}
	for _, t := range transactions {
		row.Brokerage = AddRound(row.Brokerage, t.Brokerage)
		switch t.Side {
		case model.SideBuy:
			row.BuyQuantity = AddRound(row.BuyQuantity, t.Quantity)
			row.BuyValue = AddRound(row.BuyValue, Mul(t.Quantity, t.Price))
		case model.SideSell:
			row.SellQuantity = AddRound(row.SellQuantity, t.Quantity)
			row.SellValue = AddRound(row.SellValue, Mul(t.Quantity, t.Price))
		}
	}
	row.NetQuantity = Round(row.BuyQuantity - row.SellQuantity)
	row.Status = StatusClosed
	if row.NetQuantity > 0 {
		row.Status = StatusHolding
	}

	lots, err := FIFORemaining(transactions)
	if err != nil {
		return SummaryRow{}, err
	}
	for _, lot := range lots {
		if lot.Remaining <= 0 {
			continue
		}
		row.OpenBuys = append(row.OpenBuys, HoldingLot{
			BuyID:             lot.BuyID,
			Date:              lot.Date,
			Price:             lot.Price,
			OriginalQuantity:  lot.Quantity,
			RemainingQuantity: Round(lot.Remaining),
		})
	}
	sort.Slice(row.OpenBuys, func(i, j int) bool {
		if !row.OpenBuys[i].Date.Equal(row.OpenBuys[j].Date) {
			return row.OpenBuys[i].Date.Before(row.OpenBuys[j].Date)
		}
		return row.OpenBuys[i].BuyID < row.OpenBuys[j].BuyID
	})

	return row, nil
}
