package engine

import (
	"sort"
	"time"

	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// HoldingLot is one open (possibly partially consumed) buy shown in the
// holdings view.
type HoldingLot struct {
	BuyID             int64     `json:"buyId"`
	Date              time.Time `json:"date"`
	Price             float64   `json:"price"`
	OriginalQuantity  float64   `json:"originalQuantity"`
	RemainingQuantity float64   `json:"remainingQuantity"`
}

// AccountHolding is one account's open position in a symbol.
type AccountHolding struct {
	AccountID  string       `json:"accountId"`
	Quantity   float64      `json:"quantity"`
	AvgCost    float64      `json:"avgCost"`
	Investment float64      `json:"investment"` // Quantity * AvgCost
	BuyValue   float64      `json:"buyValue"`   // original value of all buys
	Brokerage  float64      `json:"brokerage"`  // buys + sells
	Lots       []HoldingLot `json:"lots"`
}

// StockHolding rolls an instrument's open position up across accounts.
// Every numeric total equals the sum of its account rows.
type StockHolding struct {
	Symbol     string           `json:"symbol"`
	Quantity   float64          `json:"quantity"`
	AvgCost    float64          `json:"avgCost"`
	Investment float64          `json:"investment"`
	BuyValue   float64          `json:"buyValue"`
	Brokerage  float64          `json:"brokerage"`
	Accounts   []AccountHolding `json:"accounts"`
}

// HoldingsView lists open positions only; fully closed instruments are
// absent. Symbol rows are alphabetical, open lots newest-first.
type HoldingsView struct {
	Stocks          []StockHolding `json:"stocks"`
	TotalInvestment float64        `json:"totalInvestment"`
}

// ComputeHoldings derives open positions for the given scope. Buy and sell
// quantities, prices, and brokerage are recomputed from the raw transaction
// fields; persisted trade values are not trusted.
func ComputeHoldings(transactions []model.Transaction, scope AccountScope) (HoldingsView, error) {
	grouped := groupBySymbolAccount(filterScope(transactions, scope, ""))

	var view HoldingsView
	symbols := sortedKeys(grouped)
	for _, symbol := range symbols {
		stock := StockHolding{Symbol: symbol}

		accountIDs := sortedKeys(grouped[symbol])
		for _, accountID := range accountIDs {
			holding, err := accountHolding(accountID, grouped[symbol][accountID])
			if err != nil {
				return HoldingsView{}, err
			}
			if holding.Quantity <= 0 {
				continue // fully closed position
			}
			stock.Quantity = AddRound(stock.Quantity, holding.Quantity)
			stock.Investment = AddRound(stock.Investment, holding.Investment)
			stock.BuyValue = AddRound(stock.BuyValue, holding.BuyValue)
			stock.Brokerage = AddRound(stock.Brokerage, holding.Brokerage)
			stock.Accounts = append(stock.Accounts, holding)
		}

		if len(stock.Accounts) == 0 {
			continue
		}
		stock.AvgCost = SafeDiv(stock.Investment, stock.Quantity)
		view.TotalInvestment = AddRound(view.TotalInvestment, stock.Investment)
		view.Stocks = append(view.Stocks, stock)
	}

	return view, nil
}

// accountHolding computes one (symbol, account) group's open position from
// the lot matcher's remaining quantities.
func accountHolding(accountID string, transactions []model.Transaction) (AccountHolding, error) {
	result, err := MatchLots(transactions)
	if err != nil {
		return AccountHolding{}, err
	}

	holding := AccountHolding{AccountID: accountID}
	var costOfRemaining float64
	for _, lot := range result.Lots {
		if lot.Remaining <= 0 {
			continue
		}
		holding.Quantity = AddRound(holding.Quantity, lot.Remaining)
		costOfRemaining = AddRound(costOfRemaining, Mul(lot.Remaining, lot.Price))
		holding.Lots = append(holding.Lots, HoldingLot{
			BuyID:             lot.BuyID,
			Date:              lot.Date,
			Price:             lot.Price,
			OriginalQuantity:  lot.Quantity,
			RemainingQuantity: Round(lot.Remaining),
		})
	}

	holding.AvgCost = SafeDiv(costOfRemaining, holding.Quantity)
	holding.Investment = Mul(holding.Quantity, holding.AvgCost)

	for _, t := range transactions {
		holding.Brokerage = AddRound(holding.Brokerage, t.Brokerage)
		if t.Side == model.SideBuy {
			holding.BuyValue = AddRound(holding.BuyValue, Mul(t.Quantity, t.Price))
		}
	}

	// Newest lots first for display.
	sort.Slice(holding.Lots, func(i, j int) bool {
		if !holding.Lots[i].Date.Equal(holding.Lots[j].Date) {
			return holding.Lots[i].Date.After(holding.Lots[j].Date)
		}
		return holding.Lots[i].BuyID > holding.Lots[j].BuyID
	})

	return holding, nil
}

func groupBySymbolAccount(transactions []model.Transaction) map[string]map[string][]model.Transaction {
	grouped := make(map[string]map[string][]model.Transaction)
	for _, t := range transactions {
		if grouped[t.Symbol] == nil {
			grouped[t.Symbol] = make(map[string][]model.Transaction)
		}
		grouped[t.Symbol][t.AccountID] = append(grouped[t.Symbol][t.AccountID], t)
	}
	return grouped
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
