package request

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
)

// ParseReportRequest extracts and validates report parameters from query
// parameters. All parameters are optional.
//
// Validation rules:
//   - accounts: Comma-separated account IDs; empty means all accounts
//   - symbol: Uppercased verbatim
//   - year: Must be a four-digit year
//   - startDate/endDate: Must be YYYY-MM-DD; startDate must not follow endDate
//   - sort: Must be "profit_asc" or "profit_desc" (defaults to "profit_desc")
//
// Returns an error if any parameter fails validation.
func ParseReportRequest(
	accountsParam, symbolParam, yearParam, startDateParam, endDateParam, sortParam string,
) (engine.AggregationRequest, error) {
	req := engine.AggregationRequest{Scope: engine.ScopeAll()}

	if accountsParam != "" {
		ids := []string{}
		for _, id := range strings.Split(accountsParam, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			req.Scope = engine.ScopeAccounts(ids...)
		}
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(symbolParam))

	if yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil || year < 1000 || year > 9999 {
			return engine.AggregationRequest{}, fmt.Errorf("invalid year: %s", yearParam)
		}
		req.Year = year
	}

	if startDateParam != "" {
		start, err := time.Parse("2006-01-02", startDateParam)
		if err != nil {
			return engine.AggregationRequest{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		req.StartDate = start
	}
	if endDateParam != "" {
		end, err := time.Parse("2006-01-02", endDateParam)
		if err != nil {
			return engine.AggregationRequest{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		req.EndDate = end
	}
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.StartDate.After(req.EndDate) {
		return engine.AggregationRequest{}, fmt.Errorf("start_date must not be after end_date")
	}

	switch strings.ToLower(sortParam) {
	case "", "profit_desc":
		req.Sort = engine.SortProfitDesc
	case "profit_asc":
		req.Sort = engine.SortProfitAsc
	default:
		return engine.AggregationRequest{}, fmt.Errorf("invalid sort: must be 'profit_asc' or 'profit_desc'")
	}

	return req, nil
}
