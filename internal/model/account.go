package model

import "time"

// Account represents a broking account owning transactions.
// The account id is the grouping key used by all aggregations; the name
// and broker fields exist only for display.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Broker    string    `json:"broker,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// AccountFilter for querying accounts.
type AccountFilter struct {
	ActiveOnly bool
}
