package engine

import "github.com/shopspring/decimal"

// Round rounds a value to two decimal places (round half away from zero).
// Aggregators apply it at every running-total update site; repeated float64
// summation would otherwise drift between recomputation paths.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// AddRound returns Round(total + v). Running totals are kept rounded at
// every step so that sums agree across aggregation levels.
func AddRound(total, v float64) float64 {
	return Round(total + v)
}

// Mul returns a*b rounded to two decimal places.
func Mul(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// SafeDiv returns num/den rounded to two decimal places, and 0 when den is
// zero. Division never produces NaN or Inf.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(num).Div(decimal.NewFromFloat(den)).Round(2).Float64()
	return f
}

// Percent returns part/whole*100 rounded to two decimal places, and 0 when
// whole is zero.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(part).
		Div(decimal.NewFromFloat(whole)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return f
}
