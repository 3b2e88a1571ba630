package request

type CreateTransactionRequest struct {
	AccountID string  `json:"accountId"`
	Date      string  `json:"date"`
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Brokerage float64 `json:"brokerage"`
	Source    string  `json:"source,omitempty"`
	OrderRef  string  `json:"orderRef,omitempty"`
	Remarks   string  `json:"remarks,omitempty"`
}

type UpdateTransactionRequest struct {
	AccountID *string  `json:"accountId,omitempty"`
	Date      *string  `json:"date,omitempty"`
	Symbol    *string  `json:"symbol,omitempty"`
	Side      *string  `json:"side,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Brokerage *float64 `json:"brokerage,omitempty"`
	Source    *string  `json:"source,omitempty"`
	OrderRef  *string  `json:"orderRef,omitempty"`
	Remarks   *string  `json:"remarks,omitempty"`
}
