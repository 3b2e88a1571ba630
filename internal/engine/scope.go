package engine

import (
	"slices"
	"time"

	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// AccountScope selects which accounts participate in an aggregation:
// a single account, an explicit set (e.g. all active accounts), or all.
type AccountScope struct {
	All        bool
	AccountIDs []string
}

// ScopeAll returns a scope covering every account.
func ScopeAll() AccountScope {
	return AccountScope{All: true}
}

// ScopeAccounts returns a scope covering exactly the given account ids.
func ScopeAccounts(ids ...string) AccountScope {
	return AccountScope{AccountIDs: ids}
}

func (s AccountScope) includes(accountID string) bool {
	return s.All || slices.Contains(s.AccountIDs, accountID)
}

// PnLSortOrder selects the ordering of symbol-level P&L rows.
type PnLSortOrder int

const (
	// SortProfitDesc orders best-performing symbols first. Default.
	SortProfitDesc PnLSortOrder = iota
	// SortProfitAsc orders worst-performing symbols first.
	SortProfitAsc
)

// AggregationRequest carries every filter an aggregation honors. Filters
// live in this value, not in any shared state; recomputing with different
// filters means a fresh call. Zero-valued fields mean "no filter".
type AggregationRequest struct {
	Scope     AccountScope
	Symbol    string       // restrict to one instrument
	Year      int          // P&L: restrict to sells in this calendar year
	StartDate time.Time    // summary book: date-range pre-filter, inclusive
	EndDate   time.Time    // summary book: date-range pre-filter, inclusive
	Sort      PnLSortOrder // P&L: symbol row ordering
}

// filterScope keeps only transactions whose account is in scope, and, when
// symbol is non-empty, only that instrument's transactions.
func filterScope(transactions []model.Transaction, scope AccountScope, symbol string) []model.Transaction {
	filtered := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !scope.includes(t.AccountID) {
			continue
		}
		if symbol != "" && t.Symbol != symbol {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// filterDateRange keeps transactions dated within [start, end], inclusive.
// Zero-valued bounds are open.
func filterDateRange(transactions []model.Transaction, start, end time.Time) []model.Transaction {
	if start.IsZero() && end.IsZero() {
		return transactions
	}
	filtered := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		d := day(t.Date)
		if !start.IsZero() && d.Before(day(start)) {
			continue
		}
		if !end.IsZero() && d.After(day(end)) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}
