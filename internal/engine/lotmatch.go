package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aayushs-edu/stockapp-sub000/internal/model"
)

// ErrMalformedTransaction indicates a transaction with a non-positive
// quantity or price, a negative brokerage, or an unknown side reached the
// matcher. The call is aborted with no partial result; corrupted input
// invalidates all downstream arithmetic for the group.
var ErrMalformedTransaction = errors.New("malformed transaction")

// LongTermHoldingDays is the holding period, in calendar days, at or
// beyond which a realized gain is classified as long-term.
const LongTermHoldingDays = 365

// Lot is a slice of a buy transaction's quantity not yet consumed by a
// later sell. Lots are recomputed on every call and never persisted.
type Lot struct {
	BuyID     int64     `json:"buyId"`
	Date      time.Time `json:"date"`
	Price     float64   `json:"price"`
	Quantity  float64   `json:"quantity"` // original buy quantity
	Remaining float64   `json:"remaining"`
	Brokerage float64   `json:"brokerage"`
}

// Match pairs part of a sell with part of a buy lot. Cost basis carries the
// buy's brokerage pro-rata to the matched slice; proceeds deduct the sell's
// brokerage the same way.
type Match struct {
	SellID            int64     `json:"sellId"`
	BuyID             int64     `json:"buyId"`
	BuyDate           time.Time `json:"buyDate"`
	SellDate          time.Time `json:"sellDate"`
	Quantity          float64   `json:"quantity"`
	CostBasis         float64   `json:"costBasis"`
	Proceeds          float64   `json:"proceeds"`
	ProfitLoss        float64   `json:"profitLoss"`
	ProfitLossPercent float64   `json:"profitLossPercent"`
	HoldingDays       int       `json:"holdingDays"`
	IsLongTerm        bool      `json:"isLongTerm"`
	IsIntraday        bool      `json:"isIntraday"`
}

// UnmatchedSell records sell quantity for which no buy history survived.
// This is a data-quality signal (e.g. an import gap), surfaced to the
// caller rather than silently dropped or matched against a zero-cost lot.
type UnmatchedSell struct {
	SellID   int64     `json:"sellId"`
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// MatchResult is the matcher's full output: sell-to-buy matches for P&L,
// every buy lot with its final remaining quantity for holdings, and any
// unmatched sell remainders.
type MatchResult struct {
	Matches   []Match
	Lots      []Lot
	Unmatched []UnmatchedSell
}

// MatchLots partitions the buys of one (account, instrument) pair into
// consumed and remaining quantity by replaying its sells in date order.
//
// Each sell first consumes same-day buys, most recently entered first
// (highest transaction id first), then older buys oldest-first. Order
// within a day is decided by transaction id since trade timestamps are not
// modeled. Input order does not matter; ties sort by id ascending.
func MatchLots(transactions []model.Transaction) (MatchResult, error) {
	for _, t := range transactions {
		if err := checkTransaction(t); err != nil {
			return MatchResult{}, err
		}
	}

	txs := make([]model.Transaction, len(transactions))
	copy(txs, transactions)
	sort.Slice(txs, func(i, j int) bool {
		di, dj := day(txs[i].Date), day(txs[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return txs[i].ID < txs[j].ID
	})

	// All buys become open lots before any sell is replayed, so a sell can
	// see a same-day buy regardless of which was entered first.
	var lots []Lot // date asc, id asc
	var sells []model.Transaction
	for _, t := range txs {
		if t.Side == model.SideBuy {
			lots = append(lots, Lot{
				BuyID:     t.ID,
				Date:      day(t.Date),
				Price:     t.Price,
				Quantity:  t.Quantity,
				Remaining: t.Quantity,
				Brokerage: t.Brokerage,
			})
		} else {
			sells = append(sells, t)
		}
	}

	var result MatchResult
	for _, t := range sells {
		sellDay := day(t.Date)
		outstanding := t.Quantity

		// Intraday pass: same-day buys, last registered first.
		for i := len(lots) - 1; i >= 0 && outstanding > 0; i-- {
			if lots[i].Remaining <= 0 || !lots[i].Date.Equal(sellDay) {
				continue
			}
			outstanding = consume(&result, &lots[i], t, outstanding)
		}

		// Historical pass: strictly older buys, oldest first.
		for i := 0; i < len(lots) && outstanding > 0; i++ {
			if lots[i].Remaining <= 0 || !lots[i].Date.Before(sellDay) {
				continue
			}
			outstanding = consume(&result, &lots[i], t, outstanding)
		}

		if outstanding > 0 {
			result.Unmatched = append(result.Unmatched, UnmatchedSell{
				SellID:   t.ID,
				Date:     sellDay,
				Quantity: Round(outstanding),
			})
		}
	}

	result.Lots = lots
	return result, nil
}

// FIFORemaining replays sells against buys strictly oldest-first, with no
// intraday override. The summary book uses it for its open-buy rows.
// Returns every buy lot with its final remaining quantity.
func FIFORemaining(transactions []model.Transaction) ([]Lot, error) {
	for _, t := range transactions {
		if err := checkTransaction(t); err != nil {
			return nil, err
		}
	}

	txs := make([]model.Transaction, len(transactions))
	copy(txs, transactions)
	sort.Slice(txs, func(i, j int) bool {
		di, dj := day(txs[i].Date), day(txs[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return txs[i].ID < txs[j].ID
	})

	var lots []Lot
	for _, t := range txs {
		if t.Side == model.SideBuy {
			lots = append(lots, Lot{
				BuyID:     t.ID,
				Date:      day(t.Date),
				Price:     t.Price,
				Quantity:  t.Quantity,
				Remaining: t.Quantity,
				Brokerage: t.Brokerage,
			})
			continue
		}
		outstanding := t.Quantity
		for i := 0; i < len(lots) && outstanding > 0; i++ {
			if lots[i].Remaining <= 0 {
				continue
			}
			matched := math.Min(outstanding, lots[i].Remaining)
			lots[i].Remaining -= matched
			outstanding -= matched
		}
	}
	return lots, nil
}

// consume matches as much of the sell's outstanding quantity as the lot can
// supply, records the match, and returns the quantity still outstanding.
func consume(result *MatchResult, lot *Lot, sell model.Transaction, outstanding float64) float64 {
	matched := math.Min(outstanding, lot.Remaining)
	lot.Remaining -= matched
	result.Matches = append(result.Matches, newMatch(*lot, sell, matched))
	return outstanding - matched
}

func newMatch(lot Lot, sell model.Transaction, matched float64) Match {
	sellDay := day(sell.Date)
	costBasis := legValue(matched, lot.Price, lot.Brokerage, lot.Quantity, true)
	proceeds := legValue(matched, sell.Price, sell.Brokerage, sell.Quantity, false)
	profitLoss := Round(proceeds - costBasis)
	days := holdingDays(lot.Date, sellDay)

	return Match{
		SellID:            sell.ID,
		BuyID:             lot.BuyID,
		BuyDate:           lot.Date,
		SellDate:          sellDay,
		Quantity:          matched,
		CostBasis:         costBasis,
		Proceeds:          proceeds,
		ProfitLoss:        profitLoss,
		ProfitLossPercent: Percent(profitLoss, costBasis),
		HoldingDays:       days,
		IsLongTerm:        days >= LongTermHoldingDays,
		IsIntraday:        lot.Date.Equal(sellDay),
	}
}

// legValue computes matched*price with the leg's brokerage apportioned
// pro-rata to the matched slice. Buy legs add their brokerage share (cost
// basis); sell legs deduct it (net proceeds).
func legValue(matched, price, brokerage, originalQty float64, buyLeg bool) float64 {
	q := decimal.NewFromFloat(matched)
	v := q.Mul(decimal.NewFromFloat(price))
	if brokerage != 0 && originalQty > 0 {
		share := decimal.NewFromFloat(brokerage).Mul(q).Div(decimal.NewFromFloat(originalQty))
		if buyLeg {
			v = v.Add(share)
		} else {
			v = v.Sub(share)
		}
	}
	f, _ := v.Round(2).Float64()
	return f
}

// holdingDays is the calendar-day distance between two day-granular dates.
func holdingDays(buy, sell time.Time) int {
	return int(math.Ceil(math.Abs(sell.Sub(buy).Hours()) / 24))
}

func checkTransaction(t model.Transaction) error {
	switch t.Side {
	case model.SideBuy, model.SideSell:
	default:
		return fmt.Errorf("%w: transaction %d has unknown side %q", ErrMalformedTransaction, t.ID, t.Side)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("%w: transaction %d has non-positive quantity %v", ErrMalformedTransaction, t.ID, t.Quantity)
	}
	if t.Price <= 0 {
		return fmt.Errorf("%w: transaction %d has non-positive price %v", ErrMalformedTransaction, t.ID, t.Price)
	}
	if t.Brokerage < 0 {
		return fmt.Errorf("%w: transaction %d has negative brokerage %v", ErrMalformedTransaction, t.ID, t.Brokerage)
	}
	return nil
}

// day truncates a timestamp to UTC midnight. The engine works at day
// granularity throughout.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
