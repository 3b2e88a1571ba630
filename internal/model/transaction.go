package model

import "time"

// Transaction sides. Symbols are stored uppercase; sides lowercase.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Transaction represents a single buy or sell of an instrument in an account.
// It is an immutable fact: derived views (holdings, P&L, summary book) are
// recomputed from the transaction log on every request, never stored back.
type Transaction struct {
	ID         int64     `json:"id"`
	AccountID  string    `json:"accountId"`
	Date       time.Time `json:"date"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	TradeValue float64   `json:"tradeValue"`
	Brokerage  float64   `json:"brokerage"`
	Source     string    `json:"source,omitempty"`
	OrderRef   string    `json:"orderRef,omitempty"`
	Remarks    string    `json:"remarks,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction with enriched data for API responses.
// Includes the account display name for table rendering.
type TransactionResponse struct {
	ID          int64     `json:"id"`
	AccountID   string    `json:"accountId"`
	AccountName string    `json:"accountName"`
	Date        time.Time `json:"date"`
	Symbol      string    `json:"symbol"`
	Side        string    `json:"side"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	TradeValue  float64   `json:"tradeValue"`
	Brokerage   float64   `json:"brokerage"`
	Source      string    `json:"source,omitempty"`
	OrderRef    string    `json:"orderRef,omitempty"`
	Remarks     string    `json:"remarks,omitempty"`
}

// Transaction strips the enrichment fields, leaving the raw fact the
// aggregation engine consumes.
func (t TransactionResponse) Transaction() Transaction {
	return Transaction{
		ID:         t.ID,
		AccountID:  t.AccountID,
		Date:       t.Date,
		Symbol:     t.Symbol,
		Side:       t.Side,
		Quantity:   t.Quantity,
		Price:      t.Price,
		TradeValue: t.TradeValue,
		Brokerage:  t.Brokerage,
		Source:     t.Source,
		OrderRef:   t.OrderRef,
		Remarks:    t.Remarks,
	}
}

// TransactionFilter narrows transaction queries before aggregation.
// Zero values mean "no filter" for the corresponding field.
type TransactionFilter struct {
	AccountIDs []string
	Symbol     string
	Side       string
	StartDate  time.Time
	EndDate    time.Time
}
