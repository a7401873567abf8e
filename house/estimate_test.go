package house

import (
	"math"
	"testing"
)

func TestEstimateSymmetricBounds(t *testing.T) {
	for _, price := range []float64{0, 12000, 187500.5, 950000} {
		estimate := NewEstimate(price, DefaultBand)
		if estimate.Lower != price-DefaultBand {
			t.Fatalf("lower bound: expected %v, got %v", price-DefaultBand, estimate.Lower)
		}
		if estimate.Upper != price+DefaultBand {
			t.Fatalf("upper bound: expected %v, got %v", price+DefaultBand, estimate.Upper)
		}
		if estimate.Upper-estimate.Price != estimate.Price-estimate.Lower {
			t.Fatalf("bounds not symmetric around %v", price)
		}
	}
}

func TestDollars(t *testing.T) {
	if got := Dollars(187500); got != "$187,500" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := Dollars(950.4); got != "$950" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestRankImportancesDescendingStable(t *testing.T) {
	names := []string{"TotalArea", "OverallQual", "GarageCars", "HouseAge"}
	importances := []float64{0.2, 0.4, 0.2, 0.2}

	ranked, err := RankImportances(names, importances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != len(names) {
		t.Fatalf("expected %d entries, got %d", len(names), len(ranked))
	}

	// Highest first; the three ties keep their input order.
	wantOrder := []string{"OverallQual", "TotalArea", "GarageCars", "HouseAge"}
	for i, want := range wantOrder {
		if ranked[i].Feature != want {
			t.Fatalf("rank %d: expected %s, got %s", i+1, want, ranked[i].Feature)
		}
		if ranked[i].Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, ranked[i].Rank)
		}
	}

	sum := 0.0
	for _, entry := range ranked {
		sum += entry.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("expected percentages to sum to 100, got %v", sum)
	}
}

func TestRankImportancesLengthMismatch(t *testing.T) {
	if _, err := RankImportances([]string{"TotalArea"}, []float64{0.5, 0.5}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
