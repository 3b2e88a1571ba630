package engine_test

import (
	"math"
	"testing"

	"github.com/aayushs-edu/stockapp-sub000/internal/engine"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{123.456789, 123.46},
		{0.005, 0.01},
		{1.994, 1.99},
		{-2.675, -2.68},
		{0, 0},
	}
	for _, tt := range tests {
		if got := engine.Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestAddRound_NoDrift verifies repeated summation of awkward binary
// fractions stays exact at two decimals.
//
// WHY: the aggregators keep running totals rounded at every step; if the
// helper drifted, parent and child totals would slowly disagree.
func TestAddRound_NoDrift(t *testing.T) {
	var total float64
	for i := 0; i < 1000; i++ {
		total = engine.AddRound(total, 0.1)
	}
	if total != 100 {
		t.Errorf("1000 additions of 0.1 = %v, want exactly 100", total)
	}

	total = 0
	for i := 0; i < 300; i++ {
		total = engine.AddRound(total, 1.01)
	}
	if total != 303 {
		t.Errorf("300 additions of 1.01 = %v, want exactly 303", total)
	}
}

// TestPercent_ZeroDenominator verifies division guards resolve to 0, never
// NaN or Inf, so downstream sums stay numeric.
func TestPercent_ZeroDenominator(t *testing.T) {
	if got := engine.Percent(178, 0); got != 0 {
		t.Errorf("Percent(178, 0) = %v, want 0", got)
	}
	if got := engine.SafeDiv(10, 0); got != 0 {
		t.Errorf("SafeDiv(10, 0) = %v, want 0", got)
	}
	for _, v := range []float64{engine.Percent(5, 0), engine.SafeDiv(1, 0)} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("Division guard produced non-finite value %v", v)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := engine.Percent(178, 1010); got != 17.62 {
		t.Errorf("Percent(178, 1010) = %v, want 17.62", got)
	}
	if got := engine.Percent(-50, 200); got != -25 {
		t.Errorf("Percent(-50, 200) = %v, want -25", got)
	}
}
