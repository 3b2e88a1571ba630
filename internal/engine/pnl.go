package engine

import (
	"sort"
	"time"

	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// SellPnL aggregates all matches of a single sell transaction. A sell that
// consumed several buy lots appears once, with its matches attached.
// UnmatchedQuantity is non-zero when buy history was insufficient.
type SellPnL struct {
	SellID            int64     `json:"sellId"`
	Date              time.Time `json:"date"`
	Quantity          float64   `json:"quantity"` // matched quantity
	SellValue         float64   `json:"sellValue"`
	CostBasis         float64   `json:"costBasis"`
	ProfitLoss        float64   `json:"profitLoss"`
	ProfitLossPercent float64   `json:"profitLossPercent"`
	UnmatchedQuantity float64   `json:"unmatchedQuantity,omitempty"`
	Matches           []Match   `json:"matches"`
}

// AccountPnL rolls sell rows up per account for one symbol.
type AccountPnL struct {
	AccountID         string    `json:"accountId"`
	SellValue         float64   `json:"sellValue"`
	CostBasis         float64   `json:"costBasis"`
	ProfitLoss        float64   `json:"profitLoss"`
	ProfitLossPercent float64   `json:"profitLossPercent"`
	Sells             []SellPnL `json:"sells"`
}

// StockPnL rolls account rows up per symbol. Every numeric total equals
// the sum of its account rows; the percent is recomputed from the rolled-up
// totals, not averaged from children.
type StockPnL struct {
	Symbol            string       `json:"symbol"`
	SellValue         float64      `json:"sellValue"`
	CostBasis         float64      `json:"costBasis"`
	ProfitLoss        float64      `json:"profitLoss"`
	ProfitLossPercent float64      `json:"profitLossPercent"`
	Accounts          []AccountPnL `json:"accounts"`
}

// PnLBucket is a portfolio-level total, also used for the long-term,
// short-term, and intraday classification splits.
type PnLBucket struct {
	SellValue         float64 `json:"sellValue"`
	CostBasis         float64 `json:"costBasis"`
	ProfitLoss        float64 `json:"profitLoss"`
	ProfitLossPercent float64 `json:"profitLossPercent"`
}

// UnmatchedSellRow surfaces a sell shortfall with its grouping keys.
type UnmatchedSellRow struct {
	AccountID string    `json:"accountId"`
	Symbol    string    `json:"symbol"`
	SellID    int64     `json:"sellId"`
	Date      time.Time `json:"date"`
	Quantity  float64   `json:"quantity"`
}

// PnLView is the realized profit/loss report for a scope.
type PnLView struct {
	Stocks    []StockPnL         `json:"stocks"`
	Totals    PnLBucket          `json:"totals"`
	LongTerm  PnLBucket          `json:"longTerm"`
	ShortTerm PnLBucket          `json:"shortTerm"`
	Intraday  PnLBucket          `json:"intraday"`
	Unmatched []UnmatchedSellRow `json:"unmatched,omitempty"`
}

// ComputeRealizedPnL derives realized profit/loss for the request's scope,
// optionally restricted to one symbol and to sells in one calendar year.
//
// The year filter is applied to matches after lot matching, so buy history
// from earlier years still feeds the matcher; filtering the transactions
// first would fabricate shortfalls.
func ComputeRealizedPnL(transactions []model.Transaction, req AggregationRequest) (PnLView, error) {
	grouped := groupByAccountSymbol(filterScope(transactions, req.Scope, req.Symbol))

	var view PnLView
	stocks := make(map[string]*StockPnL)

	for _, accountID := range sortedKeys(grouped) {
		for _, symbol := range sortedKeys(grouped[accountID]) {
			result, err := MatchLots(grouped[accountID][symbol])
			if err != nil {
				return PnLView{}, err
			}

			account := accountPnL(accountID, result, req.Year)
			for _, u := range result.Unmatched {
				if req.Year != 0 && u.Date.Year() != req.Year {
					continue
				}
				view.Unmatched = append(view.Unmatched, UnmatchedSellRow{
					AccountID: accountID,
					Symbol:    symbol,
					SellID:    u.SellID,
					Date:      u.Date,
					Quantity:  u.Quantity,
				})
			}
			if len(account.Sells) == 0 {
				continue
			}

			stock := stocks[symbol]
			if stock == nil {
				stock = &StockPnL{Symbol: symbol}
				stocks[symbol] = stock
			}
			stock.SellValue = AddRound(stock.SellValue, account.SellValue)
			stock.CostBasis = AddRound(stock.CostBasis, account.CostBasis)
			stock.ProfitLoss = AddRound(stock.ProfitLoss, account.ProfitLoss)
			stock.Accounts = append(stock.Accounts, account)

			for _, sell := range account.Sells {
				for _, m := range sell.Matches {
					bucket := &view.ShortTerm
					switch {
					case m.IsIntraday:
						bucket = &view.Intraday
					case m.IsLongTerm:
						bucket = &view.LongTerm
					}
					addToBucket(bucket, m.Proceeds, m.CostBasis, m.ProfitLoss)
				}
			}
		}
	}

	for _, symbol := range sortedKeys(stocks) {
		stock := stocks[symbol]
		stock.ProfitLossPercent = Percent(stock.ProfitLoss, stock.CostBasis)
		addToBucket(&view.Totals, stock.SellValue, stock.CostBasis, stock.ProfitLoss)
		view.Stocks = append(view.Stocks, *stock)
	}
	finishBucket(&view.Totals)
	finishBucket(&view.LongTerm)
	finishBucket(&view.ShortTerm)
	finishBucket(&view.Intraday)

	sortStocks(view.Stocks, req.Sort)
	sort.Slice(view.Unmatched, func(i, j int) bool {
		if !view.Unmatched[i].Date.Equal(view.Unmatched[j].Date) {
			return view.Unmatched[i].Date.Before(view.Unmatched[j].Date)
		}
		return view.Unmatched[i].SellID < view.Unmatched[j].SellID
	})

	return view, nil
}

// accountPnL folds one (account, symbol) group's matches into per-sell rows
// and the account rollup. Sells are listed newest-first.
func accountPnL(accountID string, result MatchResult, year int) AccountPnL {
	account := AccountPnL{AccountID: accountID}

	bySell := make(map[int64]*SellPnL)
	var order []int64
	for _, m := range result.Matches {
		if year != 0 && m.SellDate.Year() != year {
			continue
		}
		sell := bySell[m.SellID]
		if sell == nil {
			sell = &SellPnL{SellID: m.SellID, Date: m.SellDate}
			bySell[m.SellID] = sell
			order = append(order, m.SellID)
		}
		sell.Quantity = AddRound(sell.Quantity, m.Quantity)
		sell.SellValue = AddRound(sell.SellValue, m.Proceeds)
		sell.CostBasis = AddRound(sell.CostBasis, m.CostBasis)
		sell.ProfitLoss = AddRound(sell.ProfitLoss, m.ProfitLoss)
		sell.Matches = append(sell.Matches, m)
	}
	for _, u := range result.Unmatched {
		if sell := bySell[u.SellID]; sell != nil {
			sell.UnmatchedQuantity = u.Quantity
		}
	}

	for _, sellID := range order {
		sell := bySell[sellID]
		sell.ProfitLossPercent = Percent(sell.ProfitLoss, sell.CostBasis)
		account.SellValue = AddRound(account.SellValue, sell.SellValue)
		account.CostBasis = AddRound(account.CostBasis, sell.CostBasis)
		account.ProfitLoss = AddRound(account.ProfitLoss, sell.ProfitLoss)
		account.Sells = append(account.Sells, *sell)
	}
	account.ProfitLossPercent = Percent(account.ProfitLoss, account.CostBasis)

	sort.Slice(account.Sells, func(i, j int) bool {
		if !account.Sells[i].Date.Equal(account.Sells[j].Date) {
			return account.Sells[i].Date.After(account.Sells[j].Date)
		}
		return account.Sells[i].SellID > account.Sells[j].SellID
	})

	return account
}

func addToBucket(b *PnLBucket, sellValue, costBasis, profitLoss float64) {
	b.SellValue = AddRound(b.SellValue, sellValue)
	b.CostBasis = AddRound(b.CostBasis, costBasis)
	b.ProfitLoss = AddRound(b.ProfitLoss, profitLoss)
}

func finishBucket(b *PnLBucket) {
	b.ProfitLossPercent = Percent(b.ProfitLoss, b.CostBasis)
}

func sortStocks(stocks []StockPnL, order PnLSortOrder) {
	sort.Slice(stocks, func(i, j int) bool {
		if stocks[i].ProfitLoss != stocks[j].ProfitLoss {
			if order == SortProfitAsc {
				return stocks[i].ProfitLoss < stocks[j].ProfitLoss
			}
			return stocks[i].ProfitLoss > stocks[j].ProfitLoss
		}
		return stocks[i].Symbol < stocks[j].Symbol
	})
}

func groupByAccountSymbol(transactions []model.Transaction) map[string]map[string][]model.Transaction {
	grouped := make(map[string]map[string][]model.Transaction)
	for _, t := range transactions {
		if grouped[t.AccountID] == nil {
			grouped[t.AccountID] = make(map[string][]model.Transaction)
		}
		grouped[t.AccountID][t.Symbol] = append(grouped[t.AccountID][t.Symbol], t)
	}
	return grouped
}
