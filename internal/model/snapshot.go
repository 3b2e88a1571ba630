package model

import "time"

// PortfolioSnapshot is a dated, per-account record of derived totals,
// written by the scheduled snapshot job. It is caller-side persistence of
// engine output; the engine itself never reads these rows.
type PortfolioSnapshot struct {
	ID             string    `json:"id"`
	AccountID      string    `json:"accountId"`
	Date           time.Time `json:"date"`
	Investment     float64   `json:"investment"`     // Cost-basis value of open lots
	RealizedPnL    float64   `json:"realizedPnl"`    // Cumulative realized profit/loss
	TotalBrokerage float64   `json:"totalBrokerage"` // Brokerage paid to date
	CalculatedAt   time.Time `json:"calculatedAt"`
}
